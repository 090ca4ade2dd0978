package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// VisitsRepository handles visit history persistence.
type VisitsRepository struct {
	db *sql.DB
}

// NewVisitsRepository creates a new visits repository.
func NewVisitsRepository(db *sql.DB) *VisitsRepository {
	return &VisitsRepository{db: db}
}

// Enter records a gym entry. A client with an open visit cannot enter again
// until they leave.
func (r *VisitsRepository) Enter(ctx context.Context, gymID, clientID int64) (*domain.Visit, error) {
	var open bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM visit_history
			WHERE gym_id = $1 AND client_id = $2 AND left_at IS NULL
		)
	`, gymID, clientID).Scan(&open)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, domain.ErrAlreadyInGym
	}

	visit := &domain.Visit{
		ClientID:  clientID,
		GymID:     gymID,
		EnteredAt: time.Now(),
	}
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO visit_history (client_id, gym_id, entered_at)
		VALUES ($1, $2, $3)
		RETURNING visit_history_id
	`, visit.ClientID, visit.GymID, visit.EnteredAt).Scan(&visit.VisitHistoryID)
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// Leave closes the client's open visit at the gym and returns the
// completed record.
func (r *VisitsRepository) Leave(ctx context.Context, gymID, clientID int64) (*domain.Visit, error) {
	query := `
		UPDATE visit_history
		SET left_at = NOW()
		WHERE gym_id = $1 AND client_id = $2 AND left_at IS NULL
		RETURNING visit_history_id, client_id, gym_id, entered_at, left_at
	`
	visit := &domain.Visit{}
	err := r.db.QueryRowContext(ctx, query, gymID, clientID).Scan(
		&visit.VisitHistoryID, &visit.ClientID, &visit.GymID, &visit.EnteredAt, &visit.LeftAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotInGym
	}
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// History retrieves the client's visits whose entry falls within the range.
func (r *VisitsRepository) History(ctx context.Context, clientID int64, from, to time.Time) ([]domain.Visit, error) {
	query := `
		SELECT visit_history_id, client_id, gym_id, entered_at, left_at
		FROM visit_history
		WHERE client_id = $1 AND entered_at >= $2 AND entered_at <= $3
		ORDER BY entered_at
	`
	rows, err := r.db.QueryContext(ctx, query, clientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var visit domain.Visit
		err := rows.Scan(&visit.VisitHistoryID, &visit.ClientID, &visit.GymID, &visit.EnteredAt, &visit.LeftAt)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}
