package models

// Blog is a post. Author is a copy of the creating user's name, not a foreign key.
type Blog struct {
	ID      int    `json:"id"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}
