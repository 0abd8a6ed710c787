package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/printhaus/printshop-platform/internal/api/handlers"
	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/services/mocks"
	"github.com/printhaus/printshop-platform/internal/testutils"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

func TestRegisterHandler(t *testing.T) {

	body := `{"name": "Test User", "email": "test@example.com", "password": "P@ssword123!"}`

	t.Run("Success - returns 201 with the created user", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		created := &models.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com"}
		mockService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).Return(created, nil).Once()

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/register", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, 201, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - duplicate email maps to 409", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Register", mock.Anything, mock.Anything).
			Return(nil, errors.DuplicateEntryError("A user with this email already exists")).Once()

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/register", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, 409, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, errors.ErrCodeDuplicateEntry, resp.Error.Code)
	})

	t.Run("Failure - missing fields fail validation", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/register", strings.NewReader(`{"email": "not-an-email"}`), nil)
		rr := httptest.NewRecorder()

		handler.Register().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {

	body := `{"email": "test@example.com", "password": "P@ssword123!"}`

	t.Run("Success - returns the token", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, mock.AnythingOfType("*models.LoginRequest")).
			Return(&models.LoginResponse{Success: true, Token: "token-value", ExpiresIn: 86400}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)

		var resp struct {
			Success bool                 `json:"success"`
			Data    models.LoginResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "token-value", resp.Data.Token)
	})

	t.Run("Failure - bad credentials return 401 with remaining tries", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, RemainingTries: 3, Message: "Invalid credentials"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, 401, rr.Code)

		var resp models.LoginResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - rate limited logins return 429", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, RetryAfter: 120, Message: "Too many attempts"}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext("POST", "/api/v1/users/login", strings.NewReader(body), nil)
		rr := httptest.NewRecorder()

		handler.Login().ServeHTTP(rr, req)

		assert.Equal(t, 429, rr.Code)
	})
}

func TestProfileHandler(t *testing.T) {

	t.Run("Success - returns the authenticated user's profile", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)
		userID := uuid.New()

		mockService.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Name: "Test User", Email: "test@example.com"}, nil).Once()

		req := testutils.CreateTestRequestWithContext("GET", "/api/v1/users/profile", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - no authentication", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext("GET", "/api/v1/users/profile", nil, nil)
		rr := httptest.NewRecorder()

		handler.Profile().ServeHTTP(rr, req)

		assert.Equal(t, 401, rr.Code)
		mockService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}

func TestUpdateProfileHandler(t *testing.T) {

	t.Run("Success - partial update", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)
		userID := uuid.New()

		mockService.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(req *models.UpdateProfileRequest) bool {
			return req.Name != nil && *req.Name == "New Name"
		})).Return(&models.User{ID: userID, Name: "New Name"}, nil).Once()

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/users/profile", strings.NewReader(`{"name": "New Name"}`), userID, nil)
		rr := httptest.NewRecorder()

		handler.UpdateProfile().ServeHTTP(rr, req)

		assert.Equal(t, 200, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - invalid pincode fails validation", func(t *testing.T) {
		mockService := new(mocks.UserService)
		handler := handlers.NewUserHandler(mockService)

		req := testutils.CreateTestRequestWithContext("PUT", "/api/v1/users/profile", strings.NewReader(`{"pincode": "12"}`), uuid.New(), nil)
		rr := httptest.NewRecorder()

		handler.UpdateProfile().ServeHTTP(rr, req)

		assert.Equal(t, 400, rr.Code)
		mockService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}
