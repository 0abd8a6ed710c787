package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/printhaus/printshop-platform/internal/errors"
	"github.com/printhaus/printshop-platform/internal/models"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
)

type EnquiryService interface {
	CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error)
	GetEnquiryById(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	ListEnquiries(ctx context.Context, page, size int) ([]models.Enquiry, int, error)
	UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id uuid.UUID) error
}

type enquiryService struct {
	repo      repository.EnquiryRepository
	sanitizer *bluemonday.Policy
}

func NewEnquiryService(repo repository.EnquiryRepository) EnquiryService {
	return &enquiryService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// CreateEnquiry accepts a bulk-print request from the public storefront. The
// message is free text typed by anonymous visitors, so it is sanitized before
// it reaches the database.
func (s *enquiryService) CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Enquiry, error) {

	enquiry := &models.Enquiry{
		ID:       uuid.New(),
		Name:     s.sanitizer.Sanitize(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  s.sanitizer.Sanitize(req.Message),
		Quantity: req.Quantity,
		Status:   models.EnquiryStatusNew,
	}

	if err := s.repo.CreateEnquiry(ctx, enquiry); err != nil {
		return nil, errors.DatabaseError("Failed to create enquiry").WithError(err)
	}

	return enquiry, nil
}

func (s *enquiryService) GetEnquiryById(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {

	enquiry, err := s.repo.GetEnquiryById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Enquiry not found").WithError(err)
	}

	return enquiry, nil
}

func (s *enquiryService) ListEnquiries(ctx context.Context, page, size int) ([]models.Enquiry, int, error) {

	page, size = clampPage(page, size)

	enquiries, total, err := s.repo.ListEnquiries(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch enquiries").WithError(err)
	}

	return enquiries, total, nil
}

func (s *enquiryService) UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) (*models.Enquiry, error) {

	if err := s.repo.UpdateEnquiryStatus(ctx, id, status); err != nil {
		return nil, errors.NotFoundError("Enquiry not found").WithError(err)
	}

	return s.GetEnquiryById(ctx, id)
}

func (s *enquiryService) DeleteEnquiry(ctx context.Context, id uuid.UUID) error {

	if err := s.repo.DeleteEnquiry(ctx, id); err != nil {
		return errors.NotFoundError("Enquiry not found").WithError(err)
	}

	return nil
}
