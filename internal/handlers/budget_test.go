package handlers

import (
	"testing"

	"github.com/shopspring/decimal"

	"example.com/subtracker/backend/internal/budget"
	"example.com/subtracker/backend/internal/models"
)

// TestProfileAmounts проверяет, что нулевые категории не попадают в расчет.
func TestProfileAmounts(t *testing.T) {
	profile := models.BudgetProfile{
		Housing: decimal.RequireFromString("1500"),
		Food:    decimal.RequireFromString("400"),
	}

	amounts := profileAmounts(profile)
	if len(amounts) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(amounts))
	}

	if !amounts[budget.CategoryHousing].Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("unexpected housing amount: %s", amounts[budget.CategoryHousing])
	}

	if _, ok := amounts[budget.CategorySavings]; ok {
		t.Fatal("expected zero savings to be omitted")
	}
}

// TestProfileInput проверяет сборку входа оценки из профиля.
func TestProfileInput(t *testing.T) {
	profile := models.BudgetProfile{
		MonthlyIncome: decimal.RequireFromString("5000"),
		Housing:       decimal.RequireFromString("1500"),
		Currency:      "eur",
	}

	input := profileInput(profile)
	if input.Currency != budget.CodeEUR {
		t.Fatalf("expected EUR, got %s", input.Currency)
	}
	if !input.Income.Equal(decimal.RequireFromString("5000")) {
		t.Fatalf("unexpected income: %s", input.Income)
	}

	profile.Currency = "???"
	input = profileInput(profile)
	if input.Currency != budget.CodeUSD {
		t.Fatalf("expected USD fallback, got %s", input.Currency)
	}
}
