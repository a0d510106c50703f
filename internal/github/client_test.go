package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestReposFetchesAndDecodes(t *testing.T) {
	cache.SetClient(nil)

	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]Repo{
			{ID: 1, Name: "dotfiles", HTMLURL: "https://github.com/octocat/dotfiles"},
			{ID: 2, Name: "hello", StargazersCount: 42},
		})
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("", ts.URL)
	repos, err := c.Repos(context.Background(), "octocat")

	assert.NoError(t, err)
	assert.Len(t, repos, 2)
	assert.Equal(t, "dotfiles", repos[0].Name)
	assert.Equal(t, 42, repos[1].StargazersCount)
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Contains(t, gotQuery, "per_page=5")
	assert.Contains(t, gotQuery, "sort=created")
}

func TestReposNon200IsNoProfile(t *testing.T) {
	cache.SetClient(nil)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("", ts.URL)
	_, err := c.Repos(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNoProfile)
}

func TestReposSendsAuthHeader(t *testing.T) {
	cache.SetClient(nil)

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]Repo{})
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("gh-token", ts.URL)
	_, err := c.Repos(context.Background(), "octocat")

	assert.NoError(t, err)
	assert.Equal(t, "Bearer gh-token", gotAuth)
}

func TestReposUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode([]Repo{{ID: 1, Name: "cached"}})
	}))
	defer ts.Close()

	c := NewClientWithBaseURL("", ts.URL)

	first, err := c.Repos(context.Background(), "octocat")
	assert.NoError(t, err)
	second, err := c.Repos(context.Background(), "octocat")
	assert.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first, second)
}
