package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/subtracker/backend/internal/models"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository создает репозиторий подписок.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create добавляет подписку. Дубликат имени у пользователя дает ErrConflict.
func (r *SubscriptionRepository) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	var created models.Subscription

	err := r.db.QueryRow(ctx,
		`INSERT INTO subscriptions (id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at`,
		uuid.New(), sub.UserID, sub.Name, sub.Amount, sub.Category, sub.BillingCycle, sub.NextChargeAt, sub.Source, sub.IsActive,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Amount, &created.Category, &created.BillingCycle, &created.NextChargeAt, &created.Source, &created.IsActive, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return created, ErrConflict
		}
		return created, err
	}

	return created, nil
}

// Update изменяет подписку пользователя.
func (r *SubscriptionRepository) Update(ctx context.Context, userID, subID uuid.UUID, name string, amount decimal.Decimal, category models.SubscriptionCategory, cycle models.BillingCycle, nextChargeAt *time.Time) (models.Subscription, error) {
	var sub models.Subscription

	err := r.db.QueryRow(ctx,
		`UPDATE subscriptions
		 SET name = $3,
		     amount = $4,
		     category = $5,
		     billing_cycle = $6,
		     next_charge_at = $7,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at`,
		subID, userID, name, amount, category, cycle, nextChargeAt,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.Category, &sub.BillingCycle, &sub.NextChargeAt, &sub.Source, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sub, ErrNotFound
		}
		return sub, err
	}

	return sub, nil
}

// Delete удаляет подписку пользователя.
func (r *SubscriptionRepository) Delete(ctx context.Context, userID, subID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM subscriptions
		 WHERE id = $1 AND user_id = $2`,
		subID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Toggle переключает активность подписки.
func (r *SubscriptionRepository) Toggle(ctx context.Context, userID, subID uuid.UUID, isActive *bool) (models.Subscription, error) {
	var sub models.Subscription

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return sub, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var current bool
	err = tx.QueryRow(ctx,
		`SELECT is_active
		 FROM subscriptions
		 WHERE id = $1 AND user_id = $2
		 FOR UPDATE`,
		subID, userID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sub, ErrNotFound
		}
		return sub, err
	}

	newValue := !current
	if isActive != nil {
		newValue = *isActive
	}

	err = tx.QueryRow(ctx,
		`UPDATE subscriptions
		 SET is_active = $2,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at`,
		subID, newValue,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.Category, &sub.BillingCycle, &sub.NextChargeAt, &sub.Source, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return sub, err
	}

	if err := tx.Commit(ctx); err != nil {
		return sub, err
	}

	return sub, nil
}

// GetByID возвращает подписку пользователя по идентификатору.
func (r *SubscriptionRepository) GetByID(ctx context.Context, userID, subID uuid.UUID) (models.Subscription, error) {
	var sub models.Subscription

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at
		 FROM subscriptions
		 WHERE id = $1 AND user_id = $2`,
		subID, userID,
	).Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.Category, &sub.BillingCycle, &sub.NextChargeAt, &sub.Source, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sub, ErrNotFound
		}
		return sub, err
	}

	return sub, nil
}

// ListByUser возвращает подписки пользователя, опционально только активные.
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]models.Subscription, error) {
	query := `SELECT id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at
	          FROM subscriptions
	          WHERE user_id = $1
	          ORDER BY name, created_at`
	if activeOnly {
		query = `SELECT id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active, created_at, updated_at
		         FROM subscriptions
		         WHERE user_id = $1 AND is_active
		         ORDER BY name, created_at`
	}

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]models.Subscription, 0)
	for rows.Next() {
		var sub models.Subscription

		err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.Category, &sub.BillingCycle, &sub.NextChargeAt, &sub.Source, &sub.IsActive, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, err
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}

// ImportDetected сохраняет найденные сканером подписки одной транзакцией.
// Уже существующие имена пропускаются, возвращается число вставленных строк.
func (r *SubscriptionRepository) ImportDetected(ctx context.Context, userID uuid.UUID, subs []models.Subscription) (int, error) {
	if len(subs) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	imported := 0
	for _, sub := range subs {
		cmd, err := tx.Exec(ctx,
			`INSERT INTO subscriptions (id, user_id, name, amount, category, billing_cycle, next_charge_at, source, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
			 ON CONFLICT (user_id, name) DO NOTHING`,
			uuid.New(), userID, sub.Name, sub.Amount, sub.Category, sub.BillingCycle, sub.NextChargeAt, models.SubscriptionSourceDetected,
		)
		if err != nil {
			return 0, err
		}

		imported += int(cmd.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return imported, nil
}
