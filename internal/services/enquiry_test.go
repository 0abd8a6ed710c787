package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/repositories/mocks"
	service "github.com/printhaus/printshop-platform/internal/services"
)

func TestCreateEnquiry(t *testing.T) {

	t.Run("Success - new enquiry starts in the new state with sanitized text", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.EnquiryRepository)
		enquiryService := service.NewEnquiryService(mockRepo)
		ctx := context.Background()

		req := &models.CreateEnquiryRequest{
			Name:     "Test <img src=x onerror=alert(1)> User",
			Email:    "test@example.com",
			Message:  "Need 200 polaroid prints for a wedding <script>alert(1)</script>",
			Quantity: 200,
		}

		mockRepo.On("CreateEnquiry", ctx, mock.AnythingOfType("*models.Enquiry")).Return(nil).Once()

		// Act
		enquiry, err := enquiryService.CreateEnquiry(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.EnquiryStatusNew, enquiry.Status)
		assert.Equal(t, 200, enquiry.Quantity)
		assert.NotContains(t, enquiry.Name, "<img")
		assert.NotContains(t, enquiry.Message, "<script>")

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - repository error surfaces as a database error", func(t *testing.T) {
		mockRepo := new(mocks.EnquiryRepository)
		enquiryService := service.NewEnquiryService(mockRepo)
		ctx := context.Background()

		mockRepo.On("CreateEnquiry", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

		enquiry, err := enquiryService.CreateEnquiry(ctx, &models.CreateEnquiryRequest{
			Name:    "Test User",
			Email:   "test@example.com",
			Message: "Need a bulk quote for 500 posters",
		})

		assert.Nil(t, enquiry)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestUpdateEnquiryStatus(t *testing.T) {

	t.Run("Success - returns the reloaded enquiry", func(t *testing.T) {
		mockRepo := new(mocks.EnquiryRepository)
		enquiryService := service.NewEnquiryService(mockRepo)
		ctx := context.Background()
		enquiryID := uuid.New()

		mockRepo.On("UpdateEnquiryStatus", ctx, enquiryID, models.EnquiryStatusContacted).Return(nil).Once()
		mockRepo.On("GetEnquiryById", ctx, enquiryID).Return(&models.Enquiry{ID: enquiryID, Status: models.EnquiryStatusContacted}, nil).Once()

		enquiry, err := enquiryService.UpdateEnquiryStatus(ctx, enquiryID, models.EnquiryStatusContacted)

		assert.NoError(t, err)
		assert.Equal(t, models.EnquiryStatusContacted, enquiry.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - missing enquiry", func(t *testing.T) {
		mockRepo := new(mocks.EnquiryRepository)
		enquiryService := service.NewEnquiryService(mockRepo)
		ctx := context.Background()
		enquiryID := uuid.New()

		mockRepo.On("UpdateEnquiryStatus", ctx, enquiryID, models.EnquiryStatusClosed).Return(errors.New("no rows")).Once()

		enquiry, err := enquiryService.UpdateEnquiryStatus(ctx, enquiryID, models.EnquiryStatusClosed)

		assert.Nil(t, enquiry)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListEnquiries(t *testing.T) {

	t.Run("Success - pagination defaults are applied", func(t *testing.T) {
		mockRepo := new(mocks.EnquiryRepository)
		enquiryService := service.NewEnquiryService(mockRepo)
		ctx := context.Background()

		mockRepo.On("ListEnquiries", ctx, 1, 20).Return([]models.Enquiry{{Name: "Test User"}}, 1, nil).Once()

		enquiries, total, err := enquiryService.ListEnquiries(ctx, 0, 500)

		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, enquiries, 1)
		mockRepo.AssertExpectations(t)
	})
}
