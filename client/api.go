// Package client provides a Go client for the DevConnector API together with
// a small state store mirroring the server-side data for UI frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"devconnector/internal/github"
	"devconnector/internal/models"
)

// APIError carries the HTTP status and the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ProfileInput is the body for creating or updating a profile. Skills is a
// comma-separated string; empty optional fields keep their stored values.
type ProfileInput struct {
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio,omitempty"`
	GithubUsername string `json:"github_username,omitempty"`
	Youtube        string `json:"youtube,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Facebook       string `json:"facebook,omitempty"`
	Linkedin       string `json:"linkedin,omitempty"`
	Instagram      string `json:"instagram,omitempty"`
}

// ExperienceInput is the body for adding a work experience entry.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// EducationInput is the body for adding an education entry.
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Client is a thread-safe HTTP client for the API. The token set via SetToken
// is attached to every subsequent request.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for the API at baseURL (e.g. "http://localhost:5000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken stores the session token used for authenticated requests.
// An empty string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently stored session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp models.ErrorResponse
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new account and returns the session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login authenticates and returns the session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// AuthUser returns the user behind the stored token.
func (c *Client) AuthUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentProfile returns the caller's profile.
func (c *Client) CurrentProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profiles returns all profiles.
func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfileByUserID returns the profile owned by the given user id.
func (c *Client) ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or updates the caller's profile.
func (c *Client) UpsertProfile(ctx context.Context, input ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddExperience prepends a work experience entry to the caller's profile.
func (c *Client) AddExperience(ctx context.Context, input ExperienceInput) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile/experience", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteExperience removes one experience entry.
func (c *Client) DeleteExperience(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/experience/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddEducation prepends an education entry to the caller's profile.
func (c *Client) AddEducation(ctx context.Context, input EducationInput) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile/education", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteEducation removes one education entry.
func (c *Client) DeleteEducation(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	path := fmt.Sprintf("/api/profile/education/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GithubRepos returns the five most recent public repositories for a user.
func (c *Client) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	repos := []github.Repo{}
	path := "/api/profile/github/" + username
	if err := c.do(ctx, http.MethodGet, path, nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// DeleteAccount removes the caller's user and profile.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/profile", nil, &messageResponse{})
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{"text": text}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Posts returns the full feed, most recent first.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post returns a single post by id.
func (c *Client) Post(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	path := fmt.Sprintf("/api/posts/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes the caller's own post.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/posts/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, &messageResponse{})
}

// LikePost likes a post and returns its refreshed like list.
func (c *Client) LikePost(ctx context.Context, id uint) ([]models.Like, error) {
	likes := []models.Like{}
	path := fmt.Sprintf("/api/posts/like/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// UnlikePost removes the caller's like and returns the refreshed like list.
func (c *Client) UnlikePost(ctx context.Context, id uint) ([]models.Like, error) {
	likes := []models.Like{}
	path := fmt.Sprintf("/api/posts/unlike/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment comments on a post and returns its refreshed comment list.
func (c *Client) AddComment(ctx context.Context, postID uint, text string) ([]models.Comment, error) {
	comments := []models.Comment{}
	path := fmt.Sprintf("/api/posts/comment/%d", postID)
	err := c.do(ctx, http.MethodPost, path, map[string]string{"text": text}, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes the caller's own comment and returns the refreshed
// comment list.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	path := fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
