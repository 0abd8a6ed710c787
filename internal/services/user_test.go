package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/repositories/mocks"
	redismocks "github.com/printhaus/printshop-platform/internal/repositories/redis/mocks"
	service "github.com/printhaus/printshop-platform/internal/services"
)

func TestUserService_Register(t *testing.T) {

	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockRateRepo := new(redismocks.RateLimitRepository)
	jwtKey := []byte("test-key")

	userService := service.NewUserService(mockUserRepo, mockRateRepo, jwtKey)

	t.Run("Success - User Registration", func(t *testing.T) {

		ctx := context.Background()
		req := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		// Mock Behavior -> email is fresh!
		mockUserRepo.On("GetUserByEmail", ctx, req.Email).Return(nil, errors.New("email not found")).Once()
		mockUserRepo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, req.Name, user.Name)
		assert.Equal(t, req.Email, user.Email)

		// Verify that the password was hashed by bcrypt
		err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
		assert.NoError(t, err)

		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {

		ctx := context.Background()
		req := &models.RegisterRequest{
			Name:     "Test User",
			Email:    "test@example.com",
			Password: "P@ssword123!",
		}

		existingUser := &models.User{
			ID:    uuid.New(),
			Email: req.Email,
		}

		mockUserRepo.On("GetUserByEmail", ctx, req.Email).Return(existingUser, nil).Once()

		// Act
		user, err := userService.Register(ctx, req)

		// Assert
		assert.Nil(t, user)
		assert.Error(t, err)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)

		mockUserRepo.AssertExpectations(t)
	})
}

func TestUserService_Login(t *testing.T) {

	jwtKey := []byte("test-key")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("P@ssword123!"), bcrypt.DefaultCost)
	storedUser := &models.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Admin:    true,
	}

	t.Run("Success - Valid Credentials", func(t *testing.T) {
		// Arrange
		mockUserRepo := new(mocks.UserRepository)
		mockRateRepo := new(redismocks.RateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateRepo, jwtKey)
		ctx := context.Background()

		mockRateRepo.On("CheckLoginRateLimit", ctx, storedUser.Email).Return(true, 4, 0, nil).Once()
		mockUserRepo.On("GetUserByEmail", ctx, storedUser.Email).Return(storedUser, nil).Once()

		// Act
		resp, err := userService.Login(ctx, &models.LoginRequest{Email: storedUser.Email, Password: "P@ssword123!"})

		// Assert
		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)

		// The token must carry the user's identity and admin flag
		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (any, error) { return jwtKey, nil })
		assert.NoError(t, err)
		assert.Equal(t, storedUser.ID, claims.UserID)
		assert.True(t, claims.Admin)

		mockUserRepo.AssertExpectations(t)
		mockRateRepo.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockRateRepo := new(redismocks.RateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateRepo, jwtKey)
		ctx := context.Background()

		mockRateRepo.On("CheckLoginRateLimit", ctx, storedUser.Email).Return(true, 3, 0, nil).Once()
		mockUserRepo.On("GetUserByEmail", ctx, storedUser.Email).Return(storedUser, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Email: storedUser.Email, Password: "wrong"})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUserRepo := new(mocks.UserRepository)
		mockRateRepo := new(redismocks.RateLimitRepository)
		userService := service.NewUserService(mockUserRepo, mockRateRepo, jwtKey)
		ctx := context.Background()

		mockRateRepo.On("CheckLoginRateLimit", ctx, storedUser.Email).Return(false, 0, 120, nil).Once()

		resp, err := userService.Login(ctx, &models.LoginRequest{Email: storedUser.Email, Password: "P@ssword123!"})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 120, resp.RetryAfter)

		// The credential path must never run once the limiter says no
		mockUserRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {

	mockUserRepo := new(mocks.UserRepository)
	mockRateRepo := new(redismocks.RateLimitRepository)
	userService := service.NewUserService(mockUserRepo, mockRateRepo, []byte("test-key"))

	t.Run("Success - Partial Update", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		userID := uuid.New()
		stored := &models.User{ID: userID, Name: "Old Name", Email: "test@example.com", City: "Pune"}

		mockUserRepo.On("GetUserById", ctx, userID).Return(stored, nil).Once()
		mockUserRepo.On("UpdateProfile", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Name == "New Name" && u.City == "Pune" && u.Pincode == "411001"
		})).Return(nil).Once()

		newName := "New Name"
		pincode := "411001"

		// Act
		user, err := userService.UpdateProfile(ctx, userID, &models.UpdateProfileRequest{Name: &newName, Pincode: &pincode})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "New Name", user.Name)
		assert.Equal(t, "Pune", user.City)

		mockUserRepo.AssertExpectations(t)
	})
}
