package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/printhaus/printshop-platform/internal/api/middleware"
	"github.com/printhaus/printshop-platform/internal/models"
	service "github.com/printhaus/printshop-platform/internal/services"
	"github.com/printhaus/printshop-platform/internal/utils"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, validator: validator.New()}
}

// SendEmail lets the back office send an ad-hoc customer email, e.g. a reply
// to a bulk enquiry.
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email", slog.String("recipient", req.Recipient), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Email sent", slog.String("notificationId", resp.ID.String()), slog.String("recipient", resp.Recipient))
		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := parsePagination(r)

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list notifications", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}
