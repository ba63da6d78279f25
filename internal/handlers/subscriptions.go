package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/subtracker/backend/internal/auth"
	"example.com/subtracker/backend/internal/budget"
	"example.com/subtracker/backend/internal/models"
	"example.com/subtracker/backend/internal/notifications"
	"example.com/subtracker/backend/internal/repository"
)

const dateLayout = "2006-01-02"

var (
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
	quarterMonths = decimal.NewFromInt(3)
)

type SubscriptionHandler struct {
	Subscriptions *repository.SubscriptionRepository
	Profiles      *repository.ProfileRepository
	Scans         *repository.ScanRepository
	Notifier      *notifications.Hub
}

// NewSubscriptionHandler создает обработчик подписок.
func NewSubscriptionHandler(subscriptions *repository.SubscriptionRepository, profiles *repository.ProfileRepository, scans *repository.ScanRepository, notifier *notifications.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{
		Subscriptions: subscriptions,
		Profiles:      profiles,
		Scans:         scans,
		Notifier:      notifier,
	}
}

type SubscriptionRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Amount       string `json:"amount" validate:"required"`
	Category     string `json:"category"`
	BillingCycle string `json:"billing_cycle" validate:"required"`
	NextChargeAt string `json:"next_charge_at"`
}

type ToggleSubscriptionRequest struct {
	IsActive *bool `json:"is_active"`
}

type SubscriptionResponse struct {
	ID                uuid.UUID                   `json:"id"`
	Name              string                      `json:"name"`
	Amount            decimal.Decimal             `json:"amount"`
	Category          models.SubscriptionCategory `json:"category"`
	BillingCycle      models.BillingCycle         `json:"billing_cycle"`
	MonthlyEquivalent decimal.Decimal             `json:"monthly_equivalent"`
	NextChargeAt      *string                     `json:"next_charge_at,omitempty"`
	Source            models.SubscriptionSource   `json:"source"`
	IsActive          bool                        `json:"is_active"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

type SubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type SubscriptionSummaryResponse struct {
	ActiveCount       int                        `json:"active_count"`
	MonthlyTotal      decimal.Decimal            `json:"monthly_total"`
	MonthlyByCategory map[string]decimal.Decimal `json:"monthly_by_category"`
	Usage             *budget.Usage              `json:"usage,omitempty"`
	LastScanAt        *time.Time                 `json:"last_scan_at,omitempty"`
}

// List возвращает подписки пользователя.
func (h *SubscriptionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	activeOnly := false
	if raw := strings.TrimSpace(c.QueryParam("active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "invalid active")
		}
		activeOnly = parsed
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID, activeOnly)
	if err != nil {
		return serverError(c)
	}

	response := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		response = append(response, toSubscriptionResponse(sub))
	}

	return c.JSON(http.StatusOK, SubscriptionsResponse{Subscriptions: response})
}

// Get возвращает одну подписку пользователя.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	sub, err := h.Subscriptions.GetByID(c.Request().Context(), userID, subID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

// Create добавляет подписку вручную.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	sub, err := h.parseSubscription(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	sub.UserID = userID
	sub.Source = models.SubscriptionSourceManual
	sub.IsActive = true

	created, err := h.Subscriptions.Create(c.Request().Context(), sub)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "subscription already exists")
		}
		return serverError(c)
	}

	publishSubscriptionsChanged(h.Notifier, userID, 1)
	return c.JSON(http.StatusCreated, toSubscriptionResponse(created))
}

// Update обновляет подписку.
func (h *SubscriptionHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	sub, err := h.parseSubscription(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.Subscriptions.Update(c.Request().Context(), userID, subID, sub.Name, sub.Amount, sub.Category, sub.BillingCycle, sub.NextChargeAt)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	publishSubscriptionsChanged(h.Notifier, userID, 1)
	return c.JSON(http.StatusOK, toSubscriptionResponse(updated))
}

// Delete удаляет подписку.
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	if err := h.Subscriptions.Delete(c.Request().Context(), userID, subID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	publishSubscriptionsChanged(h.Notifier, userID, 1)
	return c.NoContent(http.StatusNoContent)
}

// Toggle переключает активность подписки.
func (h *SubscriptionHandler) Toggle(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid subscription id")
	}

	var req ToggleSubscriptionRequest
	if err = c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return badRequest(c, "invalid payload")
	}

	sub, err := h.Subscriptions.Toggle(c.Request().Context(), userID, subID, req.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "subscription not found")
		}
		return serverError(c)
	}

	publishSubscriptionsChanged(h.Notifier, userID, 1)
	return c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

// Summary возвращает месячную стоимость подписок и сравнение с бюджетом.
func (h *SubscriptionHandler) Summary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	subs, err := h.Subscriptions.ListByUser(c.Request().Context(), userID, true)
	if err != nil {
		return serverError(c)
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, sub := range subs {
		equivalent := monthlyEquivalent(sub.Amount, sub.BillingCycle)
		total = total.Add(equivalent)

		key := string(sub.Category)
		byCategory[key] = byCategory[key].Add(equivalent)
	}

	response := SubscriptionSummaryResponse{
		ActiveCount:       len(subs),
		MonthlyTotal:      total,
		MonthlyByCategory: byCategory,
	}

	profile, err := h.Profiles.GetByUser(c.Request().Context(), userID)
	if err == nil {
		result := budget.Evaluate(profileInput(profile))
		usage := result.SubscriptionUsage(profile.Entertainment, total)
		response.Usage = &usage
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	lastRun, err := h.Scans.LastRun(c.Request().Context(), userID)
	if err == nil {
		response.LastScanAt = &lastRun.CreatedAt
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// parseSubscription разбирает тело запроса подписки.
func (h *SubscriptionHandler) parseSubscription(c echo.Context) (models.Subscription, error) {
	var req SubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return models.Subscription{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Subscription{}, errors.New("validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Subscription{}, errors.New("name is required")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return models.Subscription{}, errors.New("amount must be a number")
	}
	if !amount.IsPositive() {
		return models.Subscription{}, errors.New("amount must be greater than zero")
	}

	category, ok := mapSubscriptionCategory(req.Category)
	if !ok {
		return models.Subscription{}, errors.New("invalid category")
	}

	cycle, ok := mapBillingCycle(req.BillingCycle)
	if !ok {
		return models.Subscription{}, errors.New("invalid billing_cycle")
	}

	var nextChargeAt *time.Time
	if trimmed := strings.TrimSpace(req.NextChargeAt); trimmed != "" {
		parsed, err := time.Parse(dateLayout, trimmed)
		if err != nil {
			return models.Subscription{}, errors.New("invalid next_charge_at format")
		}
		nextChargeAt = &parsed
	}

	return models.Subscription{
		Name:         name,
		Amount:       amount,
		Category:     category,
		BillingCycle: cycle,
		NextChargeAt: nextChargeAt,
	}, nil
}

// monthlyEquivalent приводит стоимость подписки к месячной.
func monthlyEquivalent(amount decimal.Decimal, cycle models.BillingCycle) decimal.Decimal {
	switch cycle {
	case models.BillingCycleWeekly:
		return amount.Mul(weeksPerYear).Div(monthsPerYear).Round(2)
	case models.BillingCycleQuarterly:
		return amount.Div(quarterMonths).Round(2)
	case models.BillingCycleYearly:
		return amount.Div(monthsPerYear).Round(2)
	default:
		return amount
	}
}

func mapSubscriptionCategory(value string) (models.SubscriptionCategory, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return models.SubscriptionCategoryOther, true
	}

	switch trimmed {
	case string(models.SubscriptionCategoryEntertainment):
		return models.SubscriptionCategoryEntertainment, true
	case string(models.SubscriptionCategorySoftware):
		return models.SubscriptionCategorySoftware, true
	case string(models.SubscriptionCategoryMusic):
		return models.SubscriptionCategoryMusic, true
	case string(models.SubscriptionCategoryVideo):
		return models.SubscriptionCategoryVideo, true
	case string(models.SubscriptionCategoryNews):
		return models.SubscriptionCategoryNews, true
	case string(models.SubscriptionCategoryOther):
		return models.SubscriptionCategoryOther, true
	default:
		return "", false
	}
}

func mapBillingCycle(value string) (models.BillingCycle, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.BillingCycleWeekly):
		return models.BillingCycleWeekly, true
	case string(models.BillingCycleMonthly):
		return models.BillingCycleMonthly, true
	case string(models.BillingCycleQuarterly):
		return models.BillingCycleQuarterly, true
	case string(models.BillingCycleYearly):
		return models.BillingCycleYearly, true
	default:
		return "", false
	}
}

func toSubscriptionResponse(sub models.Subscription) SubscriptionResponse {
	var nextChargeAt *string
	if sub.NextChargeAt != nil {
		formatted := sub.NextChargeAt.Format(dateLayout)
		nextChargeAt = &formatted
	}

	return SubscriptionResponse{
		ID:                sub.ID,
		Name:              sub.Name,
		Amount:            sub.Amount,
		Category:          sub.Category,
		BillingCycle:      sub.BillingCycle,
		MonthlyEquivalent: monthlyEquivalent(sub.Amount, sub.BillingCycle),
		NextChargeAt:      nextChargeAt,
		Source:            sub.Source,
		IsActive:          sub.IsActive,
		CreatedAt:         sub.CreatedAt,
		UpdatedAt:         sub.UpdatedAt,
	}
}
