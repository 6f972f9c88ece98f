package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service"
)

const cacheTTL = 5 * time.Minute

// helpRequestColumns is the shared column list; location is unpacked into
// latitude/longitude and is NULL when the location is unknown.
const helpRequestColumns = `
	id,
	requester_id,
	helper_id,
	title,
	description,
	category,
	priority,
	status,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	address,
	accepted_at,
	completed_at,
	rating,
	feedback,
	estimated_time,
	created_at,
	updated_at`

type HelpRequestRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewHelpRequestRepository(db *pgxpool.Pool, redisClient *redis.Client) service.HelpRequestRepository {
	return &HelpRequestRepository{
		db:          db,
		redisClient: redisClient,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHelpRequest(row rowScanner) (*models.HelpRequest, error) {
	r := &models.HelpRequest{}
	err := row.Scan(
		&r.ID,
		&r.RequesterID,
		&r.HelperID,
		&r.Title,
		&r.Description,
		&r.Category,
		&r.Priority,
		&r.Status,
		&r.Latitude,
		&r.Longitude,
		&r.Address,
		&r.AcceptedAt,
		&r.CompletedAt,
		&r.Rating,
		&r.Feedback,
		&r.EstimatedTime,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts a new help request and fills in the generated fields.
func (r *HelpRequestRepository) Create(ctx context.Context, req *models.HelpRequest) error {
	query := `
		INSERT INTO help_requests
			(requester_id, title, description, category, priority, status, location, address, estimated_time)
		VALUES ($1, $2, $3, $4, $5, $6,
			CASE WHEN $7::float8 IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_MakePoint($7, $8), 4326)::geography END,
			$9, $10)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		req.RequesterID,
		req.Title,
		req.Description,
		req.Category,
		req.Priority,
		req.Status,
		req.Longitude,
		req.Latitude,
		req.Address,
		req.EstimatedTime,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return models.NewDependencyError("failed to create help request", err)
	}
	return nil
}

// GetByID returns a help request by its UUID.
func (r *HelpRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `SELECT ` + helpRequestColumns + ` FROM help_requests WHERE id = $1;`
	req, err := scanHelpRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError(fmt.Sprintf("help request %s not found", id))
		}
		return nil, models.NewDependencyError("failed to get help request", err)
	}
	return req, nil
}

// transition runs a conditional update and returns the updated record.
// A zero-row result is disambiguated with a follow-up read: the request is
// either absent (NotFound) or its status no longer satisfies the guard
// (Conflict with the given message).
func (r *HelpRequestRepository) transition(ctx context.Context, id uuid.UUID, conflictMsg, query string, args ...any) (*models.HelpRequest, error) {
	req, err := scanHelpRequest(r.db.QueryRow(ctx, query, args...))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewDependencyError("failed to update help request", err)
	}

	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, models.NewConflictError(conflictMsg)
}

// AcceptPending binds a helper to a pending request. The status guard and
// the write are a single statement, so concurrent acceptances race on the
// row lock and exactly one wins.
func (r *HelpRequestRepository) AcceptPending(ctx context.Context, id, helperID uuid.UUID) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			helper_id = $2,
			status = 'accepted',
			accepted_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, id, "this help request has already been accepted", query, id, helperID)
}

// StartAccepted moves an accepted request to in-progress.
func (r *HelpRequestRepository) StartAccepted(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			status = 'in-progress',
			updated_at = NOW()
		WHERE id = $1 AND status = 'accepted'
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, id, "help request is not accepted", query, id)
}

// CompleteActive completes an accepted or in-progress request.
func (r *HelpRequestRepository) CompleteActive(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			status = 'completed',
			completed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1 AND status IN ('accepted', 'in-progress')
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, id, "help request is not in an active state", query, id)
}

// RateCompleted stores the rating exactly once: the guard requires a
// completed request with no prior rating.
func (r *HelpRequestRepository) RateCompleted(ctx context.Context, id uuid.UUID, rating int, feedback string) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			rating = $2,
			feedback = $3,
			updated_at = NOW()
		WHERE id = $1 AND status = 'completed' AND rating IS NULL
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, id, "help request is not completed or already rated", query, id, rating, feedback)
}

// CancelOpen cancels a pending or accepted request.
func (r *HelpRequestRepository) CancelOpen(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			status = 'cancelled',
			updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'accepted')
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, id, "help request can no longer be cancelled", query, id)
}

// UpdateContent mutates the content fields of a still-pending request.
func (r *HelpRequestRepository) UpdateContent(ctx context.Context, req *models.HelpRequest) (*models.HelpRequest, error) {
	query := `
		UPDATE help_requests SET
			title = $2,
			description = $3,
			category = $4,
			priority = $5,
			location = CASE WHEN $6::float8 IS NULL THEN NULL
			                ELSE ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography END,
			address = $8,
			updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + helpRequestColumns + `;`
	return r.transition(ctx, req.ID, "only pending help requests can be edited", query,
		req.ID,
		req.Title,
		req.Description,
		req.Category,
		req.Priority,
		req.Longitude,
		req.Latitude,
		req.Address,
	)
}

// List returns help requests matching the filter, newest first.
func (r *HelpRequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]*models.HelpRequest, error) {
	query := `SELECT ` + helpRequestColumns + ` FROM help_requests WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, models.NewDependencyError("failed to list help requests", err)
	}
	defer rows.Close()

	return collectHelpRequests(rows)
}

// FindNearby returns requests with the given status whose location lies
// within radiusKm of the point. Requests without a known location never
// match.
func (r *HelpRequestRepository) FindNearby(ctx context.Context, point geo.Point, radiusKm float64, status models.Status) ([]*models.HelpRequest, error) {
	query := `
		SELECT ` + helpRequestColumns + `
		FROM help_requests
		WHERE
			status = $1
			AND location IS NOT NULL
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
				$4
			)
		ORDER BY created_at DESC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, status, point.Longitude, point.Latitude, radiusKm*1000)
	if err != nil {
		return nil, models.NewDependencyError("failed to find nearby help requests", err)
	}
	defer rows.Close()

	return collectHelpRequests(rows)
}

// ListRatedByHelper returns every rated request completed by the helper.
// The reputation aggregator recomputes the mean from this full set.
func (r *HelpRequestRepository) ListRatedByHelper(ctx context.Context, helperID uuid.UUID) ([]*models.HelpRequest, error) {
	query := `
		SELECT ` + helpRequestColumns + `
		FROM help_requests
		WHERE helper_id = $1 AND rating IS NOT NULL
		ORDER BY created_at DESC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, helperID)
	if err != nil {
		return nil, models.NewDependencyError("failed to list rated help requests", err)
	}
	defer rows.Close()

	return collectHelpRequests(rows)
}

// Delete removes a help request permanently.
func (r *HelpRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM help_requests WHERE id = $1;`, id)
	if err != nil {
		return models.NewDependencyError("failed to delete help request", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("help request %s not found", id))
	}
	return nil
}

func collectHelpRequests(rows pgx.Rows) ([]*models.HelpRequest, error) {
	requests := make([]*models.HelpRequest, 0)
	for rows.Next() {
		req, err := scanHelpRequest(rows)
		if err != nil {
			return nil, models.NewDependencyError("failed to scan help request row", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewDependencyError("help request row iteration failed", err)
	}
	return requests, nil
}

// GetFromCache tries Redis before hitting the database; a miss is (nil, nil).
func (r *HelpRequestRepository) GetFromCache(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	key := fmt.Sprintf("help_request:%s", id)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, models.NewDependencyError("failed to get help request from cache", err)
	}

	req := &models.HelpRequest{}
	if err := json.Unmarshal(val, req); err != nil {
		return nil, models.NewDependencyError("failed to unmarshal cached help request", err)
	}
	return req, nil
}

// SetCache stores a help request in Redis with a short TTL.
func (r *HelpRequestRepository) SetCache(ctx context.Context, req *models.HelpRequest) error {
	key := fmt.Sprintf("help_request:%s", req.ID)
	val, err := json.Marshal(req)
	if err != nil {
		return models.NewDependencyError("failed to marshal help request for cache", err)
	}
	if err := r.redisClient.Set(ctx, key, val, cacheTTL).Err(); err != nil {
		return models.NewDependencyError("failed to set help request in cache", err)
	}
	return nil
}

// InvalidateCache drops the cached copy after any transition.
func (r *HelpRequestRepository) InvalidateCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("help_request:%s", id)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return models.NewDependencyError("failed to invalidate help request cache", err)
	}
	return nil
}
