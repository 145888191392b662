package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const apiRoot = "https://api.github.com"

// User is the public profile subset shown in the rendered header.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// DisplayName prefers the profile name, falling back to the login.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// FetchUser retrieves a user's public profile via the REST API. The endpoint
// works unauthenticated; a token, when present, only raises the rate limit.
func FetchUser(ctx context.Context, login, token string) (User, error) {
	return fetchUserFrom(ctx, apiRoot, login, token)
}

func fetchUserFrom(ctx context.Context, base, login, token string) (User, error) {
	if login == "" {
		return User{}, fmt.Errorf("user login must not be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/users/"+url.PathEscape(login), nil)
	if err != nil {
		return User{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gitstat-cli")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("failed to reach GitHub: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return User{}, &UserNotFoundError{Login: login}
	case resp.StatusCode == http.StatusUnauthorized:
		return User{}, &AuthError{Message: "GitHub rejected the supplied token"}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return User{}, fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(body))
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return User{}, fmt.Errorf("failed to parse user response: %w", err)
	}
	return u, nil
}
