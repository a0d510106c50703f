package client

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultAlertTTL is how long an alert stays in the store before it is
// removed automatically.
const DefaultAlertTTL = 5 * time.Second

// Actions binds the API client to the store: each method performs one HTTP
// call and dispatches the outcome.
type Actions struct {
	api      *Client
	store    *Store
	alertTTL time.Duration
}

// NewActions creates an action layer over the given API client and store.
func NewActions(api *Client, store *Store) *Actions {
	return &Actions{api: api, store: store, alertTTL: DefaultAlertTTL}
}

// SetAlert pushes a transient alert and schedules its removal.
func (a *Actions) SetAlert(kind, msg string) {
	alert := Alert{ID: uuid.NewString(), Kind: kind, Msg: msg}
	a.store.Dispatch(Action{Type: AlertSet, Payload: alert})

	time.AfterFunc(a.alertTTL, func() {
		a.store.Dispatch(Action{Type: AlertRemoved, Payload: alert.ID})
	})
}

// errMessage extracts the server message from an API error, or the plain
// error text for transport failures.
func errMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// LoadUser fetches the user behind the stored token.
func (a *Actions) LoadUser(ctx context.Context) error {
	user, err := a.api.AuthUser(ctx)
	if err != nil {
		a.store.Dispatch(Action{Type: AuthError})
		return err
	}
	a.store.Dispatch(Action{Type: AuthLoaded, Payload: user})
	return nil
}

// RegisterUser creates an account, stores the token and loads the user.
func (a *Actions) RegisterUser(ctx context.Context, name, email, password string) error {
	token, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		a.store.Dispatch(Action{Type: AuthError})
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.api.SetToken(token)
	a.store.Dispatch(Action{Type: LoginSuccess, Payload: token})
	return a.LoadUser(ctx)
}

// LoginUser authenticates, stores the token and loads the user.
func (a *Actions) LoginUser(ctx context.Context, email, password string) error {
	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.store.Dispatch(Action{Type: AuthError})
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.api.SetToken(token)
	a.store.Dispatch(Action{Type: LoginSuccess, Payload: token})
	return a.LoadUser(ctx)
}

// Logout clears the token and all user-bound state.
func (a *Actions) Logout() {
	a.api.SetToken("")
	a.store.Dispatch(Action{Type: LoggedOut})
}

// GetCurrentProfile loads the caller's profile.
func (a *Actions) GetCurrentProfile(ctx context.Context) error {
	profile, err := a.api.CurrentProfile(ctx)
	if err != nil {
		a.store.Dispatch(Action{Type: ProfileError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	return nil
}

// GetProfiles loads the directory of all profiles.
func (a *Actions) GetProfiles(ctx context.Context) error {
	profiles, err := a.api.Profiles(ctx)
	if err != nil {
		a.store.Dispatch(Action{Type: ProfileError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: ProfilesLoaded, Payload: profiles})
	return nil
}

// GetProfileByUserID loads another user's profile.
func (a *Actions) GetProfileByUserID(ctx context.Context, userID uint) error {
	profile, err := a.api.ProfileByUserID(ctx, userID)
	if err != nil {
		a.store.Dispatch(Action{Type: ProfileError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	return nil
}

// GetGithubRepos loads the GitHub repos shown on a profile page.
func (a *Actions) GetGithubRepos(ctx context.Context, username string) error {
	repos, err := a.api.GithubRepos(ctx, username)
	if err != nil {
		a.store.Dispatch(Action{Type: ProfileError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: ReposLoaded, Payload: repos})
	return nil
}

// SaveProfile creates or updates the caller's profile.
func (a *Actions) SaveProfile(ctx context.Context, input ProfileInput) error {
	profile, err := a.api.UpsertProfile(ctx, input)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	a.SetAlert("success", "profile updated")
	return nil
}

// AddExperience adds a work experience entry to the caller's profile.
func (a *Actions) AddExperience(ctx context.Context, input ExperienceInput) error {
	profile, err := a.api.AddExperience(ctx, input)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	a.SetAlert("success", "experience added")
	return nil
}

// DeleteExperience removes one experience entry.
func (a *Actions) DeleteExperience(ctx context.Context, id uint) error {
	profile, err := a.api.DeleteExperience(ctx, id)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	a.SetAlert("success", "experience removed")
	return nil
}

// AddEducation adds an education entry to the caller's profile.
func (a *Actions) AddEducation(ctx context.Context, input EducationInput) error {
	profile, err := a.api.AddEducation(ctx, input)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	a.SetAlert("success", "education added")
	return nil
}

// DeleteEducation removes one education entry.
func (a *Actions) DeleteEducation(ctx context.Context, id uint) error {
	profile, err := a.api.DeleteEducation(ctx, id)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: ProfileLoaded, Payload: profile})
	a.SetAlert("success", "education removed")
	return nil
}

// DeleteAccount removes the account and logs out.
func (a *Actions) DeleteAccount(ctx context.Context) error {
	if err := a.api.DeleteAccount(ctx); err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.Logout()
	return nil
}

// GetPosts loads the feed.
func (a *Actions) GetPosts(ctx context.Context) error {
	posts, err := a.api.Posts(ctx)
	if err != nil {
		a.store.Dispatch(Action{Type: PostError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: PostsLoaded, Payload: posts})
	return nil
}

// GetPost loads a single post.
func (a *Actions) GetPost(ctx context.Context, id uint) error {
	post, err := a.api.Post(ctx, id)
	if err != nil {
		a.store.Dispatch(Action{Type: PostError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: PostLoaded, Payload: post})
	return nil
}

// AddPost publishes a post and prepends it to the feed.
func (a *Actions) AddPost(ctx context.Context, text string) error {
	post, err := a.api.CreatePost(ctx, text)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: PostAdded, Payload: post})
	a.SetAlert("success", "post created")
	return nil
}

// DeletePost removes the caller's post from the server and the feed.
func (a *Actions) DeletePost(ctx context.Context, id uint) error {
	if err := a.api.DeletePost(ctx, id); err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: PostDeleted, Payload: id})
	a.SetAlert("success", "post removed")
	return nil
}

// AddLike likes a post and updates its like list in place.
func (a *Actions) AddLike(ctx context.Context, postID uint) error {
	likes, err := a.api.LikePost(ctx, postID)
	if err != nil {
		a.store.Dispatch(Action{Type: PostError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: LikesUpdated, Payload: likesPayload{PostID: postID, Likes: likes}})
	return nil
}

// RemoveLike unlikes a post and updates its like list in place.
func (a *Actions) RemoveLike(ctx context.Context, postID uint) error {
	likes, err := a.api.UnlikePost(ctx, postID)
	if err != nil {
		a.store.Dispatch(Action{Type: PostError, Payload: errMessage(err)})
		return err
	}
	a.store.Dispatch(Action{Type: LikesUpdated, Payload: likesPayload{PostID: postID, Likes: likes}})
	return nil
}

// AddComment comments on the viewed post and replaces its comment list.
func (a *Actions) AddComment(ctx context.Context, postID uint, text string) error {
	comments, err := a.api.AddComment(ctx, postID, text)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: CommentsSet, Payload: commentsPayload{PostID: postID, Comments: comments}})
	a.SetAlert("success", "comment added")
	return nil
}

// DeleteComment removes the caller's comment and replaces the comment list.
func (a *Actions) DeleteComment(ctx context.Context, postID, commentID uint) error {
	comments, err := a.api.DeleteComment(ctx, postID, commentID)
	if err != nil {
		a.SetAlert("danger", errMessage(err))
		return err
	}
	a.store.Dispatch(Action{Type: CommentsSet, Payload: commentsPayload{PostID: postID, Comments: comments}})
	a.SetAlert("success", "comment removed")
	return nil
}
