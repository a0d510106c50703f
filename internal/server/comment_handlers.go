package server

import (
	"devconnector/internal/models"
	"devconnector/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text"`
}

// AddComment appends a comment to a post and returns the refreshed comment
// list, newest first. The author's name and avatar are snapshotted like on
// posts.
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}
	if req.Text == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("text is required"))
	}

	if _, err := s.postRepo.GetByID(c.UserContext(), postID); err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	comments, err := s.postRepo.AddComment(c.UserContext(), postID, &models.Comment{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	return c.JSON(comments)
}

// DeleteComment removes a comment from a post; only the comment's author may
// do so. Missing post or comment is a 404, a foreign comment a 401.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := parseID(c, "id", fiber.StatusNotFound, repository.ErrNoPost)
	if err != nil {
		return nil
	}
	commentID, err := parseID(c, "comment_id", fiber.StatusNotFound, repository.ErrNoComment)
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(c.UserContext(), postID); err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	comment, err := s.postRepo.GetComment(c.UserContext(), postID, commentID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}
	if comment.UserID != userID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("user not authorized"))
	}

	comments, err := s.postRepo.RemoveComment(c.UserContext(), postID, commentID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(comments)
}
