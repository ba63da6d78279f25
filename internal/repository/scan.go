package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subtracker/backend/internal/models"
)

type ScanRepository struct {
	db *pgxpool.Pool
}

type ScanRunLog struct {
	UserID        uuid.UUID
	Provider      string
	Status        models.ScanStatus
	ItemsFound    int
	ItemsImported int
	ErrorMessage  *string
}

// NewScanRepository создает репозиторий журнала сканирований.
func NewScanRepository(db *pgxpool.Pool) *ScanRepository {
	return &ScanRepository{db: db}
}

// LogRun сохраняет запись о запуске сканера подписок.
func (r *ScanRepository) LogRun(ctx context.Context, log ScanRunLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO scan_runs (id, user_id, provider, status, items_found, items_imported, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(),
		log.UserID,
		log.Provider,
		log.Status,
		log.ItemsFound,
		log.ItemsImported,
		log.ErrorMessage,
	)
	return err
}

// LastRun возвращает последний запуск сканера для пользователя.
func (r *ScanRepository) LastRun(ctx context.Context, userID uuid.UUID) (models.ScanRun, error) {
	var run models.ScanRun

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, provider, status, items_found, items_imported, error_message, created_at
		 FROM scan_runs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	).Scan(&run.ID, &run.UserID, &run.Provider, &run.Status, &run.ItemsFound, &run.ItemsImported, &run.ErrorMessage, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return run, ErrNotFound
		}
		return run, err
	}

	return run, nil
}

// ListByUser возвращает историю сканирований пользователя.
func (r *ScanRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, provider, status, items_found, items_imported, error_message, created_at
		 FROM scan_runs
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]models.ScanRun, 0)
	for rows.Next() {
		var run models.ScanRun

		err := rows.Scan(&run.ID, &run.UserID, &run.Provider, &run.Status, &run.ItemsFound, &run.ItemsImported, &run.ErrorMessage, &run.CreatedAt)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
