package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector/internal/models"
	"devconnector/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Name: "John", Avatar: "https://avatar/x"}, nil)

		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)
		mockPosts.On("AddComment", mock.Anything, uint(5), mock.MatchedBy(func(c *models.Comment) bool {
			return c.UserID == 1 && c.Text == "nice" && c.Name == "John"
		})).Return([]models.Comment{{ID: 3, UserID: 1, Text: "nice"}}, nil)

		s := postTestServer(mockPosts, mockUsers)
		app := fiber.New()
		app.Post("/api/posts/comment/:id", withUser(1), s.AddComment)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts/comment/5", map[string]string{"text": "nice"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var comments []models.Comment
		decodeBody(t, resp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "nice", comments[0].Text)
	})

	t.Run("MissingText", func(t *testing.T) {
		s := postTestServer(new(MockPostRepository), new(MockUserRepository))
		app := fiber.New()
		app.Post("/api/posts/comment/:id", withUser(1), s.AddComment)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts/comment/5", map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "text is required", errResp.Error)
	})

	t.Run("PostMissing", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(99)).Return(nil, repository.ErrNoPost)

		s := postTestServer(mockPosts, new(MockUserRepository))
		app := fiber.New()
		app.Post("/api/posts/comment/:id", withUser(1), s.AddComment)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts/comment/99", map[string]string{"text": "x"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("NotAuthor", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)
		mockPosts.On("GetComment", mock.Anything, uint(5), uint(3)).
			Return(&models.Comment{ID: 3, UserID: 2, Text: "theirs"}, nil)

		s := postTestServer(mockPosts, nil)
		app := fiber.New()
		app.Delete("/api/posts/comment/:id/:comment_id", withUser(1), s.DeleteComment)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "user not authorized", errResp.Error)
		mockPosts.AssertNotCalled(t, "RemoveComment")
	})

	t.Run("CommentMissing", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)
		mockPosts.On("GetComment", mock.Anything, uint(5), uint(3)).
			Return(nil, repository.ErrNoComment)

		s := postTestServer(mockPosts, nil)
		app := fiber.New()
		app.Delete("/api/posts/comment/:id/:comment_id", withUser(1), s.DeleteComment)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "no comment for this comment id", errResp.Error)
	})

	t.Run("Success", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockPosts.On("GetByID", mock.Anything, uint(5)).
			Return(&models.Post{ID: 5, UserID: 2}, nil)
		mockPosts.On("GetComment", mock.Anything, uint(5), uint(3)).
			Return(&models.Comment{ID: 3, UserID: 1, Text: "mine"}, nil)
		mockPosts.On("RemoveComment", mock.Anything, uint(5), uint(3)).
			Return([]models.Comment{}, nil)

		s := postTestServer(mockPosts, nil)
		app := fiber.New()
		app.Delete("/api/posts/comment/:id/:comment_id", withUser(1), s.DeleteComment)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/posts/comment/5/3", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var comments []models.Comment
		decodeBody(t, resp, &comments)
		assert.Empty(t, comments)
		mockPosts.AssertExpectations(t)
	})
}
