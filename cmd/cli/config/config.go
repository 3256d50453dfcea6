package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL      = "http://localhost:8080"
	defaultTokenHeader = "x-access-token"
	tokenFileName      = ".blogctl_token"
)

// APIURL returns the base URL for the Blog API.
// It can be overridden with the BLOG_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("BLOG_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

// TokenHeader returns the header the API reads the access token from (BLOG_TOKEN_HEADER).
func TokenHeader() string {
	if v := os.Getenv("BLOG_TOKEN_HEADER"); v != "" {
		return v
	}
	return defaultTokenHeader
}

// SaveToken stores token in the user's home directory, readable only by the user.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken returns the stored token.
func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// RemoveToken deletes the stored token. It reports false when none was stored.
func RemoveToken() (bool, error) {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
