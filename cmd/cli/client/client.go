// Package client is the small HTTP helper shared by blogctl commands.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/crucial707/blog-api/cmd/cli/config"
)

// ErrNotLoggedIn is returned when a command needs a token and none is stored.
var ErrNotLoggedIn = errors.New("not logged in: run `blogctl login` first")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}

// Do sends a request with the stored token. payload, when non-nil, is sent as JSON;
// out, when non-nil, receives the decoded response.
func Do(method, path string, payload, out interface{}) error {
	token, err := config.LoadToken()
	if err != nil || token == "" {
		return ErrNotLoggedIn
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(config.TokenHeader(), token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(req, out)
}

// Login calls GET /login with basic auth and returns the issued token.
func Login(name, password string) (string, error) {
	req, err := http.NewRequest("GET", config.APIURL()+"/login", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(name, password)

	var out struct {
		Token string `json:"token"`
	}
	if err := send(req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login succeeded but no token returned")
	}
	return out.Token, nil
}

func send(req *http.Request, out interface{}) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var e struct {
			Error string `json:"error"`
		}
		msg := string(bytes.TrimSpace(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}
