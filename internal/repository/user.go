package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service"
)

const userColumns = `
	id,
	name,
	email,
	phone,
	role,
	rating,
	total_helps,
	is_helper,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	address,
	created_at,
	updated_at`

// UserRepository is the user directory backed by Postgres.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserDirectory {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.Rating,
		&u.TotalHelps,
		&u.IsHelper,
		&u.Latitude,
		&u.Longitude,
		&u.Address,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns a user profile.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError(fmt.Sprintf("user %s not found", id))
		}
		return nil, models.NewDependencyError("failed to get user", err)
	}
	return user, nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, models.NewDependencyError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, models.NewDependencyError("failed to scan user row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewDependencyError("user row iteration failed", err)
	}
	return users, nil
}

// UpdateProfile mutates the user-editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			name = $2,
			phone = $3,
			is_helper = $4,
			location = CASE WHEN $5::float8 IS NULL THEN NULL
			                ELSE ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography END,
			address = $7,
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.IsHelper,
		user.Longitude,
		user.Latitude,
		user.Address,
	)
	if err != nil {
		return models.NewDependencyError("failed to update user profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("user %s not found", user.ID))
	}
	return nil
}

// SetRating writes the recomputed aggregate rating for a helper.
func (r *UserRepository) SetRating(ctx context.Context, id uuid.UUID, rating float64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET rating = $2, updated_at = NOW() WHERE id = $1;`, id, rating)
	if err != nil {
		return models.NewDependencyError("failed to set user rating", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return nil
}

// IncrementTotalHelps bumps the helper's counter by one, atomically.
func (r *UserRepository) IncrementTotalHelps(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET total_helps = total_helps + 1, updated_at = NOW() WHERE id = $1;`, id)
	if err != nil {
		return models.NewDependencyError("failed to increment total helps", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return nil
}

// FindHelpersNear returns helpers with a known location within radiusKm
// of the point, using the same distance policy as request search.
func (r *UserRepository) FindHelpersNear(ctx context.Context, point geo.Point, radiusKm float64) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE
			is_helper = TRUE
			AND location IS NOT NULL
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			)
		ORDER BY rating DESC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, point.Longitude, point.Latitude, radiusKm*1000)
	if err != nil {
		return nil, models.NewDependencyError("failed to find nearby helpers", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, models.NewDependencyError("failed to scan helper row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewDependencyError("helper row iteration failed", err)
	}
	return users, nil
}

// Delete removes a user permanently.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return models.NewDependencyError("failed to delete user", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	return nil
}
