package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionCategory string

type BillingCycle string

type SubscriptionSource string

type ScanStatus string

const (
	SubscriptionCategoryEntertainment SubscriptionCategory = "entertainment"
	SubscriptionCategorySoftware      SubscriptionCategory = "software"
	SubscriptionCategoryMusic         SubscriptionCategory = "music"
	SubscriptionCategoryVideo         SubscriptionCategory = "video"
	SubscriptionCategoryNews          SubscriptionCategory = "news"
	SubscriptionCategoryOther         SubscriptionCategory = "other"

	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"

	SubscriptionSourceManual   SubscriptionSource = "manual"
	SubscriptionSourceDetected SubscriptionSource = "detected"

	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BudgetProfile struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	Housing        decimal.Decimal `json:"housing"`
	Utilities      decimal.Decimal `json:"utilities"`
	Food           decimal.Decimal `json:"food"`
	Transportation decimal.Decimal `json:"transportation"`
	Entertainment  decimal.Decimal `json:"entertainment"`
	Savings        decimal.Decimal `json:"savings"`
	Other          decimal.Decimal `json:"other"`
	Currency       string          `json:"currency"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Subscription struct {
	ID           uuid.UUID            `json:"id"`
	UserID       uuid.UUID            `json:"user_id"`
	Name         string               `json:"name"`
	Amount       decimal.Decimal      `json:"amount"`
	Category     SubscriptionCategory `json:"category"`
	BillingCycle BillingCycle         `json:"billing_cycle"`
	NextChargeAt *time.Time           `json:"next_charge_at,omitempty"`
	Source       SubscriptionSource   `json:"source"`
	IsActive     bool                 `json:"is_active"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type ScanRun struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Provider      string     `json:"provider"`
	Status        ScanStatus `json:"status"`
	ItemsFound    int        `json:"items_found"`
	ItemsImported int        `json:"items_imported"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
