package server

import (
	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text string `json:"text"`
}

// CreatePost creates a post carrying a snapshot of the author's name and
// avatar, so the feed renders without joining users.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("text is required"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	post, err := s.postRepo.Create(c.UserContext(), &models.Post{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created", "post_id", post.ID)

	return c.JSON(post)
}

// GetPosts returns the full feed, most recent first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.UserContext())
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	return c.JSON(posts)
}

// GetPost returns a single post with its likes and comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(post)
}

// DeletePost removes a post; only its author may do so.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("user not authorized"))
	}

	if err := s.postRepo.Delete(c.UserContext(), postID); err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"message": "post deleted"})
}

// LikePost records the caller's like and returns the refreshed like list.
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(c.UserContext(), postID); err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	likes, err := s.postRepo.Like(c.UserContext(), postID, userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(likes)
}

// UnlikePost removes the caller's like and returns the refreshed like list.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(c.UserContext(), postID); err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	likes, err := s.postRepo.Unlike(c.UserContext(), postID, userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(likes)
}
