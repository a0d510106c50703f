package server

import (
	"errors"

	"devconnector/internal/github"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos proxies the five most recent repositories of a GitHub user.
// Any upstream failure is reported as a missing GitHub profile.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("no github profile found"))
	}

	repos, err := s.github.Repos(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, github.ErrNoProfile) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("no github profile found"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(repos)
}
