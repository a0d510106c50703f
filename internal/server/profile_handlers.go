package server

import (
	"errors"

	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// profileRequest is the flat upsert body. Social links arrive as top-level
// fields and skills as a single comma-separated string.
type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Skills         string `json:"skills"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetMyProfile returns the caller's profile aggregate.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileRepo.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(profile)
}

// GetProfiles returns all profiles with their owning users.
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileRepo.List(c.UserContext())
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	return c.JSON(profiles)
}

// GetProfileByUserID returns the profile for an arbitrary user id.
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id", fiber.StatusBadRequest, repository.ErrNoProfile)
	if err != nil {
		return nil
	}

	profile, err := s.profileRepo.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(profile)
}

// UpsertProfile creates the caller's profile or updates the supplied fields.
// Status and skills are always written; optional fields left out of the body
// keep their stored values.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if req.Status == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("status is required"))
	}
	if req.Skills == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skills is required"))
	}

	incoming := &models.Profile{
		UserID:         userID,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         validation.ParseSkills(req.Skills),
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}

	// Only columns for fields present in the body are written on update.
	suppliedFields := []string{}
	if req.Company != "" {
		suppliedFields = append(suppliedFields, "company")
	}
	if req.Website != "" {
		suppliedFields = append(suppliedFields, "website")
	}
	if req.Location != "" {
		suppliedFields = append(suppliedFields, "location")
	}
	if req.Bio != "" {
		suppliedFields = append(suppliedFields, "bio")
	}
	if req.GithubUsername != "" {
		suppliedFields = append(suppliedFields, "github_username")
	}

	profile, err := s.profileRepo.Upsert(c.UserContext(), incoming, suppliedFields)
	if err != nil {
		return respondAppError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(profile)
}

// DeleteAccount removes the caller's profile and user record.
// Posts authored by the user are intentionally left in place.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileRepo.DeleteByUserID(c.UserContext(), userID); err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}
	if err := s.userRepo.Delete(c.UserContext(), userID); err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account deleted", "user_id", userID)

	return c.JSON(fiber.Map{"message": "user deleted"})
}

// AddExperience prepends a work experience entry to the caller's profile.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title is required"))
	}
	if req.Company == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("company is required"))
	}
	if req.From == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("from date is required"))
	}

	exp := &models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := s.profileRepo.AddExperience(c.UserContext(), userID, exp)
	if err != nil {
		return respondAppError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(profile)
}

// DeleteExperience removes one experience entry and returns the refreshed
// profile. A missing profile is a 400, a missing entry a 404.
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	expID, err := parseID(c, "exp_id", fiber.StatusNotFound,
		models.NewNotFoundError("no experience for this id"))
	if err != nil {
		return nil
	}

	profile, err := s.profileRepo.RemoveExperience(c.UserContext(), userID, expID)
	if err != nil {
		if errors.Is(err, repository.ErrNoProfile) {
			return models.RespondWithError(c, fiber.StatusBadRequest, repository.ErrNoProfile)
		}
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(profile)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if req.School == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("school is required"))
	}
	if req.Degree == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("degree is required"))
	}
	if req.FieldOfStudy == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("field of study is required"))
	}
	if req.From == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("from date is required"))
	}

	edu := &models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := s.profileRepo.AddEducation(c.UserContext(), userID, edu)
	if err != nil {
		return respondAppError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(profile)
}

// DeleteEducation removes one education entry and returns the refreshed
// profile.
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	eduID, err := parseID(c, "edu_id", fiber.StatusNotFound,
		models.NewNotFoundError("no education for this id"))
	if err != nil {
		return nil
	}

	profile, err := s.profileRepo.RemoveEducation(c.UserContext(), userID, eduID)
	if err != nil {
		if errors.Is(err, repository.ErrNoProfile) {
			return models.RespondWithError(c, fiber.StatusBadRequest, repository.ErrNoProfile)
		}
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(profile)
}
