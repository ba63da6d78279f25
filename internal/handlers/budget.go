package handlers

import (
	"errors"
	"net/http"
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

type BudgetHandler struct {
	Profiles        *repository.ProfileRepository
	Notifier        *notifications.Hub
	DefaultCurrency string
}

// NewBudgetHandler создает обработчик бюджета.
func NewBudgetHandler(profiles *repository.ProfileRepository, notifier *notifications.Hub, defaultCurrency string) *BudgetHandler {
	return &BudgetHandler{
		Profiles:        profiles,
		Notifier:        notifier,
		DefaultCurrency: defaultCurrency,
	}
}

type EvaluateRequest struct {
	Income     string            `json:"income"`
	Categories map[string]string `json:"categories"`
	Currency   string            `json:"currency"`
}

type ProfileRequest struct {
	Income     string            `json:"income"`
	Categories map[string]string `json:"categories"`
	Currency   string            `json:"currency"`
	Version    int               `json:"version"`
}

type ProfileData struct {
	Income     decimal.Decimal            `json:"income"`
	Categories map[string]decimal.Decimal `json:"categories"`
	Currency   string                     `json:"currency"`
	Version    int                        `json:"version"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

type ProfileResponse struct {
	Profile ProfileData   `json:"profile"`
	Result  budget.Result `json:"result"`
}

type CurrenciesResponse struct {
	Currencies []budget.CurrencyInfo `json:"currencies"`
}

// Currencies возвращает поддерживаемые валюты.
func (h *BudgetHandler) Currencies(c echo.Context) error {
	return c.JSON(http.StatusOK, CurrenciesResponse{Currencies: budget.Currencies()})
}

// Evaluate оценивает бюджет без сохранения профиля.
func (h *BudgetHandler) Evaluate(c echo.Context) error {
	var req EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	input, fieldErrors := h.parseBudget(req.Income, req.Categories, req.Currency)
	if len(fieldErrors) > 0 {
		return unprocessable(c, fieldErrors)
	}

	return c.JSON(http.StatusOK, budget.Evaluate(input))
}

// GetProfile возвращает сохраненный профиль и свежую оценку по нему.
func (h *BudgetHandler) GetProfile(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.GetByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile: toProfileData(profile),
		Result:  budget.Evaluate(profileInput(profile)),
	})
}

// SaveProfile валидирует и сохраняет профиль бюджета.
// Несовпадение версии возвращает 409, состояние клиента не меняется.
func (h *BudgetHandler) SaveProfile(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Version < 0 {
		return badRequest(c, "invalid version")
	}

	input, fieldErrors := h.parseBudget(req.Income, req.Categories, req.Currency)
	if len(fieldErrors) > 0 {
		return unprocessable(c, fieldErrors)
	}

	profile := profileFromInput(userID, input)
	saved, err := h.Profiles.Save(c.Request().Context(), profile, req.Version)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return conflict(c, "profile version conflict")
		}
		return serverError(c)
	}

	result := budget.Evaluate(profileInput(saved))
	publishBudgetUpdate(h.Notifier, userID, result)

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile: toProfileData(saved),
		Result:  result,
	})
}

// parseBudget разбирает и валидирует сырые поля бюджета.
// Пустая валюта заменяется валютой по умолчанию до разбора.
func (h *BudgetHandler) parseBudget(income string, categories map[string]string, currency string) (budget.Input, []budget.FieldError) {
	if strings.TrimSpace(currency) == "" {
		currency = h.DefaultCurrency
	}

	input, fieldErrors := budget.ParseInput(budget.RawInput{
		Income:   income,
		Amounts:  categories,
		Currency: currency,
	})
	if len(fieldErrors) > 0 {
		return input, fieldErrors
	}

	return input, budget.Validate(input)
}

func profileFromInput(userID uuid.UUID, input budget.Input) models.BudgetProfile {
	return models.BudgetProfile{
		UserID:         userID,
		MonthlyIncome:  input.Income,
		Housing:        input.Amounts[budget.CategoryHousing],
		Utilities:      input.Amounts[budget.CategoryUtilities],
		Food:           input.Amounts[budget.CategoryFood],
		Transportation: input.Amounts[budget.CategoryTransportation],
		Entertainment:  input.Amounts[budget.CategoryEntertainment],
		Savings:        input.Amounts[budget.CategorySavings],
		Other:          input.Amounts[budget.CategoryOther],
		Currency:       string(input.Currency),
	}
}

// profileAmounts возвращает заполненные категории профиля.
// Нулевая сумма в колонке означает незаданную категорию.
func profileAmounts(profile models.BudgetProfile) map[budget.Category]decimal.Decimal {
	all := map[budget.Category]decimal.Decimal{
		budget.CategoryHousing:        profile.Housing,
		budget.CategoryUtilities:      profile.Utilities,
		budget.CategoryFood:           profile.Food,
		budget.CategoryTransportation: profile.Transportation,
		budget.CategoryEntertainment:  profile.Entertainment,
		budget.CategorySavings:        profile.Savings,
		budget.CategoryOther:          profile.Other,
	}

	amounts := make(map[budget.Category]decimal.Decimal, len(all))
	for category, amount := range all {
		if amount.IsPositive() {
			amounts[category] = amount
		}
	}

	return amounts
}

func profileInput(profile models.BudgetProfile) budget.Input {
	code, ok := budget.ParseCode(profile.Currency)
	if !ok {
		code = budget.CodeUSD
	}

	return budget.Input{
		Income:   profile.MonthlyIncome,
		Amounts:  profileAmounts(profile),
		Currency: code,
	}
}

func toProfileData(profile models.BudgetProfile) ProfileData {
	categories := make(map[string]decimal.Decimal)
	for category, amount := range profileAmounts(profile) {
		categories[string(category)] = amount
	}

	return ProfileData{
		Income:     profile.MonthlyIncome,
		Categories: categories,
		Currency:   profile.Currency,
		Version:    profile.Version,
		UpdatedAt:  profile.UpdatedAt,
	}
}

func unprocessable(c echo.Context, fieldErrors []budget.FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string][]budget.FieldError{"errors": fieldErrors})
}
