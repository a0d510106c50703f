package client

import (
	"sync"

	"devconnector/internal/github"
	"devconnector/internal/models"
)

// ActionType identifies a state transition.
type ActionType string

const (
	// auth
	AuthLoaded   ActionType = "AUTH_LOADED"
	AuthError    ActionType = "AUTH_ERROR"
	LoginSuccess ActionType = "LOGIN_SUCCESS"
	LoggedOut    ActionType = "LOGGED_OUT"

	// profile
	ProfileLoaded  ActionType = "PROFILE_LOADED"
	ProfilesLoaded ActionType = "PROFILES_LOADED"
	ReposLoaded    ActionType = "REPOS_LOADED"
	ProfileError   ActionType = "PROFILE_ERROR"
	ProfileCleared ActionType = "PROFILE_CLEARED"

	// posts
	PostsLoaded  ActionType = "POSTS_LOADED"
	PostLoaded   ActionType = "POST_LOADED"
	PostAdded    ActionType = "POST_ADDED"
	PostDeleted  ActionType = "POST_DELETED"
	LikesUpdated ActionType = "LIKES_UPDATED"
	CommentsSet  ActionType = "COMMENTS_SET"
	PostError    ActionType = "POST_ERROR"

	// alerts
	AlertSet     ActionType = "ALERT_SET"
	AlertRemoved ActionType = "ALERT_REMOVED"
)

// Action is a state transition request; the payload type depends on the
// action type.
type Action struct {
	Type    ActionType
	Payload any
}

// AuthState mirrors the session: token, the loaded user, and whether the
// initial load finished.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileState holds the viewed profile, the directory listing, and GitHub
// repos for the profile page.
type ProfileState struct {
	Profile  *models.Profile
	Profiles []models.Profile
	Repos    []github.Repo
	Loading  bool
	Error    string
}

// PostState holds the feed and the single post being viewed.
type PostState struct {
	Posts   []models.Post
	Post    *models.Post
	Loading bool
	Error   string
}

// Alert is a transient UI notification.
type Alert struct {
	ID   string
	Kind string
	Msg  string
}

// State is the full client-side state tree.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Posts   PostState
	Alerts  []Alert
}

// NewState returns the initial state, with loading flags set so UIs can
// render spinners until the first load completes.
func NewState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
		Posts:   PostState{Loading: true},
		Alerts:  []Alert{},
	}
}

// likesPayload targets a post by id for like-list replacement.
type likesPayload struct {
	PostID uint
	Likes  []models.Like
}

// commentsPayload targets a post by id for comment-list replacement.
type commentsPayload struct {
	PostID   uint
	Comments []models.Comment
}

// reduce is the pure transition function: it never mutates the input state
// and returns the state unchanged for unknown actions.
func reduce(state State, action Action) State {
	switch action.Type {
	case AuthLoaded:
		user, _ := action.Payload.(*models.User)
		state.Auth.User = user
		state.Auth.IsAuthenticated = user != nil
		state.Auth.Loading = false
	case LoginSuccess:
		token, _ := action.Payload.(string)
		state.Auth.Token = token
		state.Auth.IsAuthenticated = true
		state.Auth.Loading = false
	case AuthError, LoggedOut:
		state.Auth = AuthState{}
		state.Profile = ProfileState{}

	case ProfileLoaded:
		profile, _ := action.Payload.(*models.Profile)
		state.Profile.Profile = profile
		state.Profile.Loading = false
		state.Profile.Error = ""
	case ProfilesLoaded:
		profiles, _ := action.Payload.([]models.Profile)
		state.Profile.Profiles = profiles
		state.Profile.Loading = false
		state.Profile.Error = ""
	case ReposLoaded:
		repos, _ := action.Payload.([]github.Repo)
		state.Profile.Repos = repos
		state.Profile.Loading = false
	case ProfileError:
		msg, _ := action.Payload.(string)
		state.Profile.Profile = nil
		state.Profile.Error = msg
		state.Profile.Loading = false
	case ProfileCleared:
		state.Profile = ProfileState{}

	case PostsLoaded:
		posts, _ := action.Payload.([]models.Post)
		state.Posts.Posts = posts
		state.Posts.Loading = false
		state.Posts.Error = ""
	case PostLoaded:
		post, _ := action.Payload.(*models.Post)
		state.Posts.Post = post
		state.Posts.Loading = false
	case PostAdded:
		post, _ := action.Payload.(*models.Post)
		if post != nil {
			state.Posts.Posts = append([]models.Post{*post}, state.Posts.Posts...)
		}
		state.Posts.Loading = false
	case PostDeleted:
		id, _ := action.Payload.(uint)
		posts := make([]models.Post, 0, len(state.Posts.Posts))
		for _, p := range state.Posts.Posts {
			if p.ID != id {
				posts = append(posts, p)
			}
		}
		state.Posts.Posts = posts
	case LikesUpdated:
		payload, ok := action.Payload.(likesPayload)
		if ok {
			state.Posts.Posts = replaceLikes(state.Posts.Posts, payload)
			if state.Posts.Post != nil && state.Posts.Post.ID == payload.PostID {
				post := *state.Posts.Post
				post.Likes = payload.Likes
				state.Posts.Post = &post
			}
		}
	case CommentsSet:
		payload, ok := action.Payload.(commentsPayload)
		if ok && state.Posts.Post != nil && state.Posts.Post.ID == payload.PostID {
			post := *state.Posts.Post
			post.Comments = payload.Comments
			state.Posts.Post = &post
		}
	case PostError:
		msg, _ := action.Payload.(string)
		state.Posts.Error = msg
		state.Posts.Loading = false

	case AlertSet:
		alert, ok := action.Payload.(Alert)
		if ok {
			state.Alerts = append(append([]Alert{}, state.Alerts...), alert)
		}
	case AlertRemoved:
		id, _ := action.Payload.(string)
		alerts := make([]Alert, 0, len(state.Alerts))
		for _, a := range state.Alerts {
			if a.ID != id {
				alerts = append(alerts, a)
			}
		}
		state.Alerts = alerts
	}

	return state
}

func replaceLikes(posts []models.Post, payload likesPayload) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].ID == payload.PostID {
			out[i].Likes = payload.Likes
		}
	}
	return out
}

// Store holds the state and notifies subscribers after every dispatch.
// All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// NewStore creates a Store with the initial state.
func NewStore() *Store {
	return &Store{
		state: NewState(),
		subs:  map[int]func(State){},
	}
}

// GetState returns a snapshot of the current state.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies the action and synchronously notifies subscribers with
// the resulting state.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = reduce(s.state, action)
	state := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers a listener invoked after every dispatch. The returned
// function removes the listener.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
