package models

// User is an account that can log in and author blogs.
// ID is internal only; clients only ever see PublicID.
type User struct {
	ID           int    `json:"-"`
	PublicID     string `json:"public_id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Admin        bool   `json:"admin"`
}
