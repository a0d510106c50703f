package server

import (
	"fmt"
	"time"

	"devconnector/internal/gravatar"
	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user registration. The response carries only the
// session token; the client fetches the user via GET /api/auth.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Avatar:   gravatar.URL(req.Email),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		"user_id", user.ID, "email", user.Email)

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login authenticates a user by email and password and returns a token.
// Unknown email and wrong password produce the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("password is required"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respondAppError(c, err, fiber.StatusInternalServerError)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetAuthUser returns the authenticated user, without the password hash.
func (s *Server) GetAuthUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err, fiber.StatusNotFound)
	}

	return c.JSON(user)
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
