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

type EnquiryHandler struct {
	enquiryService service.EnquiryService
	validator      *validator.Validate
}

func NewEnquiryHandler(enquiryService service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService, validator: validator.New()}
}

// CreateEnquiry accepts bulk-print requests from the public storefront, no
// login required.
func (h *EnquiryHandler) CreateEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateEnquiryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		enquiry, err := h.enquiryService.CreateEnquiry(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create enquiry", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Enquiry submitted", slog.String("enquiryId", enquiry.ID.String()))
		response.Success(w, http.StatusCreated, enquiry)
	}
}

func (h *EnquiryHandler) GetEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid enquiry id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		enquiry, err := h.enquiryService.GetEnquiryById(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get enquiry", slog.String("enquiryId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, enquiry)
	}
}

func (h *EnquiryHandler) ListEnquiries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, size := parsePagination(r)

		enquiries, total, err := h.enquiryService.ListEnquiries(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list enquiries", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     enquiries,
			Total:    total,
			Page:     page,
			PageSize: size,
		})
	}
}

func (h *EnquiryHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid enquiry id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateEnquiryStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		enquiry, err := h.enquiryService.UpdateEnquiryStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update enquiry status", slog.String("enquiryId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Enquiry status updated", slog.String("enquiryId", id.String()), slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, enquiry)
	}
}

func (h *EnquiryHandler) DeleteEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid enquiry id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.enquiryService.DeleteEnquiry(r.Context(), id); err != nil {
			logger.Error("Failed to delete enquiry", slog.String("enquiryId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Enquiry deleted", slog.String("enquiryId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"message": "Enquiry deleted"})
	}
}
