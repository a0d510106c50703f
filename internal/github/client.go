// Package github is a thin client for the GitHub repository-listing API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devconnector/internal/cache"
)

// ErrNoProfile is returned when GitHub reports no repositories for the
// username (any upstream non-200 response is folded into this error).
var ErrNoProfile = errors.New("no github profile found")

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
	CreatedAt       string `json:"created_at"`
}

// Client fetches a user's repositories, caching responses in Redis.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a GitHub client. token may be empty; it raises the
// unauthenticated rate limit when set.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.github.com",
		token:      token,
	}
}

// NewClientWithBaseURL returns a client pointed at an alternate API root.
// Used by tests to target an httptest server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Repos returns the five most recently created public repositories of the
// given username. Results are cached with cache.GithubTTL.
func (c *Client) Repos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubKey(username), &repos, cache.GithubTTL, func() error {
		fetched, err := c.fetchRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]Repo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoProfile
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
