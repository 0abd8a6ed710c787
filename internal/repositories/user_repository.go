package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/printhaus/printshop-platform/internal/models"
	"github.com/printhaus/printshop-platform/internal/utils"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, name, email, password, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, user.ID, user.Name, user.Email, user.Password, user.Admin).
		Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, email, password, phone, address, city, state, pincode, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, email))
}

func (r *userRepository) GetUserById(ctx context.Context, id uuid.UUID) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, email, password, phone, address, city, state, pincode, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET name = $1, phone = $2, address = $3, city = $4, state = $5, pincode = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		user.Name, user.Phone, user.Address, user.City, user.State, user.Pincode, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}

	var phone, address, city, state, pincode sql.NullString

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
		&phone, &address, &city, &state, &pincode, &user.Admin,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	user.Phone = phone.String
	user.Address = address.String
	user.City = city.String
	user.State = state.String
	user.Pincode = pincode.String

	return user, nil
}
