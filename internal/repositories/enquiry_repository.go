package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/utils"
)

type EnquiryRepository interface {
	CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error
	GetEnquiryById(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	ListEnquiries(ctx context.Context, page, size int) ([]models.Enquiry, int, error)
	UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) error
	DeleteEnquiry(ctx context.Context, id uuid.UUID) error
}

type enquiryRepository struct {
	DB *sql.DB
}

func NewEnquiryRepo(db *sql.DB) EnquiryRepository {
	return &enquiryRepository{DB: db}
}

func (r *enquiryRepository) CreateEnquiry(ctx context.Context, enquiry *models.Enquiry) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO enquiries (id, name, email, phone, message, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		enquiry.ID, enquiry.Name, enquiry.Email, enquiry.Phone,
		enquiry.Message, enquiry.Quantity, enquiry.Status).
		Scan(&enquiry.CreatedAt, &enquiry.UpdatedAt)
}

func (r *enquiryRepository) GetEnquiryById(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, email, phone, message, quantity, status, created_at, updated_at
		FROM enquiries
		WHERE id = $1
	`

	enquiry := &models.Enquiry{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&enquiry.ID, &enquiry.Name, &enquiry.Email, &enquiry.Phone,
		&enquiry.Message, &enquiry.Quantity, &enquiry.Status,
		&enquiry.CreatedAt, &enquiry.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return enquiry, nil
}

func (r *enquiryRepository) ListEnquiries(ctx context.Context, page, size int) ([]models.Enquiry, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM enquiries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count enquiries: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, name, email, phone, message, quantity, status, created_at, updated_at
		FROM enquiries
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list enquiries: %w", err)
	}

	defer rows.Close()

	var enquiries []models.Enquiry

	for rows.Next() {

		var enquiry models.Enquiry

		err := rows.Scan(&enquiry.ID, &enquiry.Name, &enquiry.Email, &enquiry.Phone,
			&enquiry.Message, &enquiry.Quantity, &enquiry.Status,
			&enquiry.CreatedAt, &enquiry.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan enquiry: %w", err)
		}

		enquiries = append(enquiries, enquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return enquiries, total, nil
}

func (r *enquiryRepository) UpdateEnquiryStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx,
		`UPDATE enquiries SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update enquiry status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *enquiryRepository) DeleteEnquiry(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
