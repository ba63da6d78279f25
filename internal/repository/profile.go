package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subtracker/backend/internal/models"
)

type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository создает репозиторий бюджетных профилей.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUser возвращает бюджетный профиль пользователя. Колонки категорий
// читаются через COALESCE: профиль, сохраненный до добавления колонки,
// не должен ломать чтение.
func (r *ProfileRepository) GetByUser(ctx context.Context, userID uuid.UUID) (models.BudgetProfile, error) {
	var profile models.BudgetProfile

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, monthly_income,
		        COALESCE(housing, 0), COALESCE(utilities, 0), COALESCE(food, 0),
		        COALESCE(transportation, 0), COALESCE(entertainment, 0),
		        COALESCE(savings, 0), COALESCE(other, 0),
		        currency, version, created_at, updated_at
		 FROM budget_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&profile.ID, &profile.UserID, &profile.MonthlyIncome, &profile.Housing, &profile.Utilities, &profile.Food, &profile.Transportation, &profile.Entertainment, &profile.Savings, &profile.Other, &profile.Currency, &profile.Version, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile, ErrNotFound
		}
		return profile, err
	}

	return profile, nil
}

// Save сохраняет профиль через upsert с оптимистичной проверкой версии.
// Несовпадение версии возвращается как ErrVersionConflict, строка при этом
// не меняется.
func (r *ProfileRepository) Save(ctx context.Context, profile models.BudgetProfile, expectedVersion int) (models.BudgetProfile, error) {
	var saved models.BudgetProfile

	err := r.db.QueryRow(ctx,
		`INSERT INTO budget_profiles
		 (id, user_id, monthly_income, housing, utilities, food, transportation, entertainment, savings, other, currency, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		 ON CONFLICT (user_id) DO UPDATE
		 SET monthly_income = EXCLUDED.monthly_income,
		     housing = EXCLUDED.housing,
		     utilities = EXCLUDED.utilities,
		     food = EXCLUDED.food,
		     transportation = EXCLUDED.transportation,
		     entertainment = EXCLUDED.entertainment,
		     savings = EXCLUDED.savings,
		     other = EXCLUDED.other,
		     currency = EXCLUDED.currency,
		     version = budget_profiles.version + 1,
		     updated_at = NOW()
		 WHERE budget_profiles.version = $12
		 RETURNING id, user_id, monthly_income,
		           COALESCE(housing, 0), COALESCE(utilities, 0), COALESCE(food, 0),
		           COALESCE(transportation, 0), COALESCE(entertainment, 0),
		           COALESCE(savings, 0), COALESCE(other, 0),
		           currency, version, created_at, updated_at`,
		uuid.New(), profile.UserID, profile.MonthlyIncome, profile.Housing, profile.Utilities, profile.Food, profile.Transportation, profile.Entertainment, profile.Savings, profile.Other, profile.Currency, expectedVersion,
	).Scan(&saved.ID, &saved.UserID, &saved.MonthlyIncome, &saved.Housing, &saved.Utilities, &saved.Food, &saved.Transportation, &saved.Entertainment, &saved.Savings, &saved.Other, &saved.Currency, &saved.Version, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return saved, ErrVersionConflict
		}
		return saved, err
	}

	return saved, nil
}
