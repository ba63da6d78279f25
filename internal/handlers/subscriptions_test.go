package handlers

import (
	"testing"

	"github.com/shopspring/decimal"

	"example.com/subtracker/backend/internal/models"
)

// TestMonthlyEquivalent проверяет приведение стоимости к месячной.
func TestMonthlyEquivalent(t *testing.T) {
	weekly := monthlyEquivalent(decimal.RequireFromString("10"), models.BillingCycleWeekly)
	if !weekly.Equal(decimal.RequireFromString("43.33")) {
		t.Fatalf("expected 43.33 for weekly, got %s", weekly)
	}

	monthly := monthlyEquivalent(decimal.RequireFromString("9.99"), models.BillingCycleMonthly)
	if !monthly.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected 9.99 for monthly, got %s", monthly)
	}

	quarterly := monthlyEquivalent(decimal.RequireFromString("30"), models.BillingCycleQuarterly)
	if !quarterly.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected 10 for quarterly, got %s", quarterly)
	}

	yearly := monthlyEquivalent(decimal.RequireFromString("120"), models.BillingCycleYearly)
	if !yearly.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected 10 for yearly, got %s", yearly)
	}
}

// TestMapBillingCycle проверяет маппинг периодов оплаты.
func TestMapBillingCycle(t *testing.T) {
	value, ok := mapBillingCycle("weekly")
	if !ok || value != models.BillingCycleWeekly {
		t.Fatalf("expected weekly, got %v (ok=%v)", value, ok)
	}

	value, ok = mapBillingCycle(" Yearly ")
	if !ok || value != models.BillingCycleYearly {
		t.Fatalf("expected yearly, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapBillingCycle("daily"); ok {
		t.Fatal("expected invalid billing cycle")
	}

	if _, ok := mapBillingCycle(""); ok {
		t.Fatal("expected invalid billing cycle for empty value")
	}
}

// TestMapSubscriptionCategory проверяет маппинг категорий подписок.
func TestMapSubscriptionCategory(t *testing.T) {
	value, ok := mapSubscriptionCategory("video")
	if !ok || value != models.SubscriptionCategoryVideo {
		t.Fatalf("expected video, got %v (ok=%v)", value, ok)
	}

	value, ok = mapSubscriptionCategory("")
	if !ok || value != models.SubscriptionCategoryOther {
		t.Fatalf("expected other for empty value, got %v (ok=%v)", value, ok)
	}

	if _, ok := mapSubscriptionCategory("books"); ok {
		t.Fatal("expected invalid category")
	}
}
