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
	sendgridmocks "github.com/printhaus/printshop-platform/pkg/sendgrid/mocks"
)

func TestSendEmail(t *testing.T) {

	req := &models.EmailNotificationRequest{
		Recipient: "test@example.com",
		Subject:   "Your order has shipped",
		Content:   "It is on its way.",
	}

	t.Run("Success - records the notification and marks it sent", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.NotificationRepository)
		mockEmail := new(sendgridmocks.EmailService)
		notificationService := service.NewNotificationService(mockRepo, mockEmail)
		ctx := context.Background()

		var recordedID uuid.UUID

		mockRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			recordedID = n.ID
			return n.Status == models.NotificationStatusPending && n.Recipient == req.Recipient
		})).Return(nil).Once()
		mockEmail.On("Send", ctx, req.Recipient, req.Subject, req.Content).Return(nil).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.NotificationStatusSent, "").Return(nil).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, recordedID, resp.ID)
		assert.Equal(t, models.NotificationStatusSent, resp.Status)

		mockRepo.AssertExpectations(t)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Failure - delivery failure keeps the record with the error", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockEmail := new(sendgridmocks.EmailService)
		notificationService := service.NewNotificationService(mockRepo, mockEmail)
		ctx := context.Background()

		sendErr := errors.New("failed to send email, status code: 503")

		mockRepo.On("CreateNotification", ctx, mock.Anything).Return(nil).Once()
		mockEmail.On("Send", ctx, req.Recipient, req.Subject, req.Content).Return(sendErr).Once()
		mockRepo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.NotificationStatusFailed, sendErr.Error()).Return(nil).Once()

		resp, err := notificationService.SendEmail(ctx, req)

		assert.Nil(t, resp)
		require.Error(t, err)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - nothing is sent when the record cannot be written", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockEmail := new(sendgridmocks.EmailService)
		notificationService := service.NewNotificationService(mockRepo, mockEmail)
		ctx := context.Background()

		mockRepo.On("CreateNotification", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

		resp, err := notificationService.SendEmail(ctx, req)

		assert.Nil(t, resp)
		assert.Error(t, err)
		mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListNotifications(t *testing.T) {

	t.Run("Success - pagination defaults are applied", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockEmail := new(sendgridmocks.EmailService)
		notificationService := service.NewNotificationService(mockRepo, mockEmail)
		ctx := context.Background()

		mockRepo.On("ListNotifications", ctx, 1, 20).Return([]models.Notification{{Recipient: "test@example.com"}}, 1, nil).Once()

		notifications, total, err := notificationService.ListNotifications(ctx, -1, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, notifications, 1)
	})
}
