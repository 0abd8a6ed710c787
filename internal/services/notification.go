package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
	"github.com/printhaus/printshop-platform/pkg/sendgrid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	ListNotifications(ctx context.Context, page, size int) ([]models.Notification, int, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail records the notification first, then delivers it. The record
// keeps the outcome either way, so a failed send is visible in the back
// office.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {

	notification := &models.Notification{
		ID:        uuid.New(),
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.NotificationStatusPending,
		OrderID:   req.OrderID,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	if err := n.emailService.Send(ctx, req.Recipient, req.Subject, req.Content); err != nil {

		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()

		_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusFailed, notification.Error)

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.NotificationStatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.NotificationStatusSent, ""); err != nil {
		return nil, errors.DatabaseError("Email sent but failed to update notification status").WithError(err)
	}

	return &models.NotificationResponse{
		ID:        notification.ID,
		Recipient: notification.Recipient,
		Status:    notification.Status,
		CreatedAt: notification.CreatedAt,
	}, nil
}

// ListNotifications implements NotificationService.
func (n *notificationService) ListNotifications(ctx context.Context, page, size int) ([]models.Notification, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 50 {
		size = 20
	}

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}
