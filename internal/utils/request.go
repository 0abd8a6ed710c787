package utils

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/utils/response"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, apperrors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, apperrors.ValidationError("invalid input data").WithDetail(err.Error()))
		return false
	}

	return true
}

// ParseID reads a UUID path value from the request.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, apperrors.BadRequestError("missing " + name + " path parameter")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.BadRequestError("invalid " + name + ": must be a UUID").WithError(err)
	}

	return id, nil
}
