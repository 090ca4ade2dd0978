package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// GymsRepository handles gym persistence.
type GymsRepository struct {
	db *sql.DB
}

// NewGymsRepository creates a new gyms repository.
func NewGymsRepository(db *sql.DB) *GymsRepository {
	return &GymsRepository{db: db}
}

// Create inserts a new gym and fills in its generated id.
func (r *GymsRepository) Create(ctx context.Context, gym *domain.Gym) error {
	query := `
		INSERT INTO gym (city, street, building, description)
		VALUES ($1, $2, $3, $4)
		RETURNING gym_id
	`
	return r.db.QueryRowContext(ctx, query,
		gym.City, gym.Street, gym.Building, gym.Description,
	).Scan(&gym.GymID)
}

// GetByID retrieves a gym by id.
func (r *GymsRepository) GetByID(ctx context.Context, gymID int64) (*domain.Gym, error) {
	query := `SELECT gym_id, city, street, building, description FROM gym WHERE gym_id = $1`
	gym := &domain.Gym{}
	err := r.db.QueryRowContext(ctx, query, gymID).Scan(
		&gym.GymID, &gym.City, &gym.Street, &gym.Building, &gym.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}
	return gym, nil
}

// GetAll retrieves every gym location.
func (r *GymsRepository) GetAll(ctx context.Context) ([]*domain.Gym, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT gym_id, city, street, building, description FROM gym ORDER BY gym_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyms []*domain.Gym
	for rows.Next() {
		gym := &domain.Gym{}
		if err := rows.Scan(&gym.GymID, &gym.City, &gym.Street, &gym.Building, &gym.Description); err != nil {
			return nil, err
		}
		gyms = append(gyms, gym)
	}
	return gyms, rows.Err()
}

// Delete removes a gym.
func (r *GymsRepository) Delete(ctx context.Context, gymID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gym WHERE gym_id = $1`, gymID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGymNotFound
	}
	return nil
}
