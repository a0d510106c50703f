package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI returns a test server mimicking the API surface the actions touch.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	// Method-qualified mux patterns ("POST /api/auth") need Go 1.22+, so
	// dispatch on r.Method by hand to stay compatible with older toolchains.
	mux.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "123456" {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
		case http.MethodGet:
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Authorization required"})
				return
			}
			_ = json.NewEncoder(w).Encode(models.User{ID: 1, Name: "John", Email: "john@example.com"})
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Post{
			{ID: 2, Text: "second"}, {ID: 1, Text: "first"},
		})
	})

	mux.HandleFunc("/api/posts/like/2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode([]models.Like{{ID: 5, UserID: 1}})
	})

	mux.HandleFunc("/api/profile/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "no profile for this user"})
	})

	return httptest.NewServer(mux)
}

func TestLoginUserSuccess(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()

	api := NewClient(ts.URL)
	store := NewStore()
	actions := NewActions(api, store)

	err := actions.LoginUser(context.Background(), "john@example.com", "123456")
	require.NoError(t, err)

	state := store.GetState()
	assert.Equal(t, "test-token", state.Auth.Token)
	assert.True(t, state.Auth.IsAuthenticated)
	require.NotNil(t, state.Auth.User)
	assert.Equal(t, "John", state.Auth.User.Name)
	assert.Equal(t, "test-token", api.Token())
}

func TestLoginUserFailure(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()

	api := NewClient(ts.URL)
	store := NewStore()
	actions := NewActions(api, store)
	actions.alertTTL = 10 * time.Millisecond

	err := actions.LoginUser(context.Background(), "john@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	state := store.GetState()
	assert.False(t, state.Auth.IsAuthenticated)
	require.Len(t, state.Alerts, 1)
	assert.Equal(t, "danger", state.Alerts[0].Kind)
	assert.Equal(t, "invalid credentials", state.Alerts[0].Msg)

	// The alert removes itself after its TTL.
	assert.Eventually(t, func() bool {
		return len(store.GetState().Alerts) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestGetPostsAndLike(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()

	api := NewClient(ts.URL)
	store := NewStore()
	actions := NewActions(api, store)

	require.NoError(t, actions.GetPosts(context.Background()))
	state := store.GetState()
	require.Len(t, state.Posts.Posts, 2)
	assert.False(t, state.Posts.Loading)

	require.NoError(t, actions.AddLike(context.Background(), 2))
	state = store.GetState()
	require.Len(t, state.Posts.Posts[0].Likes, 1)
	assert.Equal(t, uint(1), state.Posts.Posts[0].Likes[0].UserID)
}

func TestGetCurrentProfileError(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()

	api := NewClient(ts.URL)
	store := NewStore()
	actions := NewActions(api, store)

	err := actions.GetCurrentProfile(context.Background())
	require.Error(t, err)

	state := store.GetState()
	assert.Nil(t, state.Profile.Profile)
	assert.Equal(t, "no profile for this user", state.Profile.Error)
	assert.False(t, state.Profile.Loading)
}

func TestLogoutClearsState(t *testing.T) {
	ts := fakeAPI(t)
	defer ts.Close()

	api := NewClient(ts.URL)
	store := NewStore()
	actions := NewActions(api, store)

	require.NoError(t, actions.LoginUser(context.Background(), "john@example.com", "123456"))
	actions.Logout()

	state := store.GetState()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.Empty(t, api.Token())
	assert.Nil(t, state.Profile.Profile)
}
