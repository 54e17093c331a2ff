package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/entity"
)

const uniqueViolation = "23505"

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) outbound.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, email, hashedPassword, creatorID string) (*entity.Admin, error) {
	admin := &entity.Admin{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hashedPassword,
		SignupDate:     time.Now().UTC(),
		CreatorID:      creatorID,
	}

	query := `
		INSERT INTO admins (id, email, hashed_password, signup_date, creator_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Email,
		admin.HashedPassword,
		admin.SignupDate,
		nullableID(admin.CreatorID),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, outbound.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	// A malformed identifier can never match a row; collapse it to not found
	// instead of letting the uuid column reject the query.
	if _, err := uuid.Parse(id); err != nil {
		return nil, outbound.ErrAdminNotFound
	}

	query := `
		SELECT id, email, hashed_password, signup_date, creator_id
		FROM admins
		WHERE id = $1
	`
	return r.scanAdmin(r.db.QueryRowContext(ctx, query, id))
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `
		SELECT id, email, hashed_password, signup_date, creator_id
		FROM admins
		WHERE email = $1
	`
	return r.scanAdmin(r.db.QueryRowContext(ctx, query, email))
}

func (r *adminRepository) scanAdmin(row *sql.Row) (*entity.Admin, error) {
	var admin entity.Admin
	var creatorID sql.NullString

	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.HashedPassword,
		&admin.SignupDate,
		&creatorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if creatorID.Valid {
		admin.CreatorID = creatorID.String
	}
	return &admin, nil
}

func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}
