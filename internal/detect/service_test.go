package detect

import (
	"testing"
	"time"

	"example.com/subtracker/backend/internal/models"
)

// TestNormalizeItems проверяет отбрасывание мусора и схлопывание дубликатов.
func TestNormalizeItems(t *testing.T) {
	items := []Item{
		{Name: "  Netflix ", Amount: "15.49", Category: "streaming", Cycle: "monthly"},
		{Name: "netflix", Amount: "15.49"},
		{Name: "", Amount: "9.99"},
		{Name: "Broken", Amount: "abc"},
		{Name: "Refund", Amount: "-5.00"},
		{Name: "Spotify", Amount: "10.99", Category: "music", Cycle: "annual"},
	}

	subs := normalizeItems(items, 50)
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}

	first := subs[0]
	if first.Name != "Netflix" {
		t.Fatalf("expected trimmed name Netflix, got %q", first.Name)
	}
	if first.Category != models.SubscriptionCategoryVideo {
		t.Fatalf("expected video category, got %s", first.Category)
	}
	if first.BillingCycle != models.BillingCycleMonthly {
		t.Fatalf("expected monthly cycle, got %s", first.BillingCycle)
	}
	if first.Source != models.SubscriptionSourceDetected {
		t.Fatalf("expected detected source, got %s", first.Source)
	}
	if !first.IsActive {
		t.Fatal("expected detected subscription to be active")
	}

	second := subs[1]
	if second.BillingCycle != models.BillingCycleYearly {
		t.Fatalf("expected yearly cycle, got %s", second.BillingCycle)
	}
}

// TestNormalizeItemsLimit проверяет ограничение размера списка.
func TestNormalizeItemsLimit(t *testing.T) {
	items := []Item{
		{Name: "One", Amount: "1.00"},
		{Name: "Two", Amount: "2.00"},
		{Name: "Three", Amount: "3.00"},
	}

	subs := normalizeItems(items, 2)
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
}

// TestParseCategory проверяет маппинг категорий провайдера.
func TestParseCategory(t *testing.T) {
	if got := parseCategory(" SaaS "); got != models.SubscriptionCategorySoftware {
		t.Fatalf("expected software, got %s", got)
	}

	if got := parseCategory("press"); got != models.SubscriptionCategoryNews {
		t.Fatalf("expected news, got %s", got)
	}

	if got := parseCategory("unknown"); got != models.SubscriptionCategoryOther {
		t.Fatalf("expected other, got %s", got)
	}
}

// TestParseCycle проверяет маппинг циклов оплаты.
func TestParseCycle(t *testing.T) {
	if got := parseCycle("week"); got != models.BillingCycleWeekly {
		t.Fatalf("expected weekly, got %s", got)
	}

	if got := parseCycle("Annually"); got != models.BillingCycleYearly {
		t.Fatalf("expected yearly, got %s", got)
	}

	if got := parseCycle(""); got != models.BillingCycleMonthly {
		t.Fatalf("expected monthly fallback, got %s", got)
	}
}

// TestParseNextCharge проверяет разбор даты следующего списания.
func TestParseNextCharge(t *testing.T) {
	got := parseNextCharge("2026-09-01")
	if got == nil {
		t.Fatal("expected parsed date, got nil")
	}

	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if parseNextCharge("not a date") != nil {
		t.Fatal("expected nil for unparsable date")
	}

	if parseNextCharge("") != nil {
		t.Fatal("expected nil for empty date")
	}
}
