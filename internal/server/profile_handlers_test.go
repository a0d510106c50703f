package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnector/internal/config"
	"devconnector/internal/models"
	"devconnector/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func profileTestServer(profileRepo *MockProfileRepository) *Server {
	return &Server{
		config:      &config.Config{JWTSecret: "test_secret", Env: "test"},
		profileRepo: profileRepo,
	}
}

func TestGetMyProfile(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).
			Return(&models.Profile{ID: 10, UserID: 1, Status: "Developer"}, nil)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Get("/api/profile/me", withUser(1), s.GetMyProfile)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var profile models.Profile
		decodeBody(t, resp, &profile)
		assert.Equal(t, uint(10), profile.ID)
	})

	t.Run("NoProfile", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).
			Return(nil, repository.ErrNoProfile)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Get("/api/profile/me", withUser(1), s.GetMyProfile)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/me", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "no profile for this user", errResp.Error)
	})
}

func TestGetProfileByUserID(t *testing.T) {
	t.Run("MalformedIDLooksLikeMissing", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Get("/api/profile/user/:user_id", s.GetProfileByUserID)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/user/not-a-number", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "no profile for this user", errResp.Error)
		// Repository never consulted for a malformed id.
		mockRepo.AssertNotCalled(t, "GetByUserID")
	})

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUserID", mock.Anything, uint(7)).
			Return(&models.Profile{ID: 3, UserID: 7, Status: "Developer"}, nil)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Get("/api/profile/user/:user_id", s.GetProfileByUserID)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/user/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestUpsertProfileValidation(t *testing.T) {
	tests := []struct {
		name          string
		body          map[string]any
		expectedError string
	}{
		{
			name:          "MissingStatus",
			body:          map[string]any{"skills": "Go,SQL"},
			expectedError: "status is required",
		},
		{
			name:          "MissingSkills",
			body:          map[string]any{"status": "Developer"},
			expectedError: "skills is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			s := profileTestServer(mockRepo)
			app := fiber.New()
			app.Post("/api/profile", withUser(1), s.UpsertProfile)

			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/profile", tt.body))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var errResp models.ErrorResponse
			decodeBody(t, resp, &errResp)
			assert.Equal(t, tt.expectedError, errResp.Error)
		})
	}
}

func TestUpsertProfileParsesSkillsAndFields(t *testing.T) {
	mockRepo := new(MockProfileRepository)
	mockRepo.On("Upsert", mock.Anything,
		mock.MatchedBy(func(p *models.Profile) bool {
			return p.UserID == 1 &&
				p.Status == "Developer" &&
				len(p.Skills) == 2 && p.Skills[0] == "Go" && p.Skills[1] == "SQL" &&
				p.Social.Twitter == "https://twitter.com/jd"
		}),
		[]string{"company", "bio"},
	).Return(&models.Profile{ID: 5, UserID: 1, Status: "Developer"}, nil)

	s := profileTestServer(mockRepo)
	app := fiber.New()
	app.Post("/api/profile", withUser(1), s.UpsertProfile)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/profile", map[string]any{
		"status":  "Developer",
		"skills":  "Go, SQL,",
		"company": "Acme",
		"bio":     "hi",
		"twitter": "https://twitter.com/jd",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestAddExperienceValidation(t *testing.T) {
	tests := []struct {
		name          string
		body          map[string]any
		expectedError string
	}{
		{
			name:          "MissingTitle",
			body:          map[string]any{"company": "Acme", "from": "2020-01-01"},
			expectedError: "title is required",
		},
		{
			name:          "MissingCompany",
			body:          map[string]any{"title": "Dev", "from": "2020-01-01"},
			expectedError: "company is required",
		},
		{
			name:          "MissingFrom",
			body:          map[string]any{"title": "Dev", "company": "Acme"},
			expectedError: "from date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			s := profileTestServer(mockRepo)
			app := fiber.New()
			app.Put("/api/profile/experience", withUser(1), s.AddExperience)

			resp, err := app.Test(jsonRequest(http.MethodPut, "/api/profile/experience", tt.body))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var errResp models.ErrorResponse
			decodeBody(t, resp, &errResp)
			assert.Equal(t, tt.expectedError, errResp.Error)
		})
	}
}

func TestDeleteExperience(t *testing.T) {
	t.Run("MalformedID", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Delete("/api/profile/experience/:exp_id", withUser(1), s.DeleteExperience)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/profile/experience/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		assert.Equal(t, "no experience for this id", errResp.Error)
	})

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("RemoveExperience", mock.Anything, uint(1), uint(9)).
			Return(&models.Profile{ID: 5, UserID: 1, Status: "Developer"}, nil)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Delete("/api/profile/experience/:exp_id", withUser(1), s.DeleteExperience)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/profile/experience/9", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoProfile", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("RemoveExperience", mock.Anything, uint(1), uint(9)).
			Return(nil, repository.ErrNoProfile)

		s := profileTestServer(mockRepo)
		app := fiber.New()
		app.Delete("/api/profile/experience/:exp_id", withUser(1), s.DeleteExperience)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/profile/experience/9", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteAccount(t *testing.T) {
	mockProfiles := new(MockProfileRepository)
	mockProfiles.On("DeleteByUserID", mock.Anything, uint(1)).Return(nil)

	mockUsers := new(MockUserRepository)
	mockUsers.On("Delete", mock.Anything, uint(1)).Return(nil)

	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret", Env: "test"},
		userRepo:    mockUsers,
		profileRepo: mockProfiles,
	}
	app := fiber.New()
	app.Delete("/api/profile", withUser(1), s.DeleteAccount)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "user deleted", body["message"])

	mockProfiles.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}
