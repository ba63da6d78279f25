package budget

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// TestEvaluateScenario проверяет расчет по типовому бюджету.
func TestEvaluateScenario(t *testing.T) {
	input := Input{
		Income: dec("5000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing:        dec("2000"),
			CategoryFood:           dec("500"),
			CategoryTransportation: dec("400"),
			CategoryEntertainment:  dec("300"),
			CategorySavings:        dec("800"),
		},
		Currency: CodeUSD,
	}

	result := Evaluate(input)

	if !result.TotalExpenses.Equal(dec("4000")) {
		t.Fatalf("expected total 4000, got %s", result.TotalExpenses)
	}
	if !result.Remaining.Equal(dec("1000")) {
		t.Fatalf("expected remaining 1000, got %s", result.Remaining)
	}

	if result.Percentages[CategoryHousing] != 40 {
		t.Fatalf("expected housing 40%%, got %d", result.Percentages[CategoryHousing])
	}
	if result.Percentages[CategorySavings] != 16 {
		t.Fatalf("expected savings 16%%, got %d", result.Percentages[CategorySavings])
	}

	if result.Feedback[CategoryHousing] != FeedbackWarning {
		t.Fatalf("expected housing warning, got %s", result.Feedback[CategoryHousing])
	}
	if result.Feedback[CategoryFood] != FeedbackGood {
		t.Fatalf("expected food good, got %s", result.Feedback[CategoryFood])
	}
	if result.Feedback[CategorySavings] != FeedbackGood {
		t.Fatalf("expected savings good, got %s", result.Feedback[CategorySavings])
	}

	if result.HealthScore < 0 || result.HealthScore > 100 {
		t.Fatalf("expected score within [0,100], got %d", result.HealthScore)
	}
}

// TestEvaluateHousingFeedbackBands проверяет границы оценки жилья.
func TestEvaluateHousingFeedbackBands(t *testing.T) {
	feedbackFor := func(housing string) Feedback {
		input := Input{
			Income:   dec("2000"),
			Amounts:  map[Category]decimal.Decimal{CategoryHousing: dec(housing)},
			Currency: CodeUSD,
		}
		return Evaluate(input).Feedback[CategoryHousing]
	}

	if got := feedbackFor("400"); got != FeedbackExcellent {
		t.Fatalf("expected excellent at 20%%, got %s", got)
	}
	if got := feedbackFor("600"); got != FeedbackGood {
		t.Fatalf("expected good at 30%%, got %s", got)
	}
	if got := feedbackFor("800"); got != FeedbackWarning {
		t.Fatalf("expected warning at 40%%, got %s", got)
	}
	if got := feedbackFor("1100"); got != FeedbackHigh {
		t.Fatalf("expected high at 55%%, got %s", got)
	}
}

// TestEvaluateHealthScoreBounds проверяет крайние требования к баллу здоровья.
func TestEvaluateHealthScoreBounds(t *testing.T) {
	good := Input{
		Income: dec("5000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing:        dec("1400"),
			CategoryFood:           dec("600"),
			CategoryTransportation: dec("400"),
			CategoryEntertainment:  dec("400"),
			CategorySavings:        dec("1000"),
		},
		Currency: CodeUSD,
	}

	result := Evaluate(good)
	if result.HealthScore < 80 {
		t.Fatalf("expected score >= 80 for budget within recommendations, got %d", result.HealthScore)
	}
	if result.HealthLabel != HealthExcellent {
		t.Fatalf("expected Excellent, got %s", result.HealthLabel)
	}

	bad := Input{
		Income: dec("2000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing: dec("1000"),
			CategorySavings: dec("0"),
		},
		Currency: CodeUSD,
	}

	result = Evaluate(bad)
	if result.HealthScore > 49 {
		t.Fatalf("expected score <= 49 for half income on housing and no savings, got %d", result.HealthScore)
	}
	if result.HealthLabel != HealthNeedsImprovement {
		t.Fatalf("expected Needs Improvement, got %s", result.HealthLabel)
	}
}

// TestEvaluateMonotonicSavings проверяет, что рост сбережений не снижает балл.
func TestEvaluateMonotonicSavings(t *testing.T) {
	previous := -1
	for savings := int64(0); savings <= 2000; savings += 100 {
		input := Input{
			Income: dec("5000"),
			Amounts: map[Category]decimal.Decimal{
				CategoryHousing: dec("1500"),
				CategoryFood:    dec("600"),
				CategorySavings: decimal.NewFromInt(savings),
			},
			Currency: CodeUSD,
		}

		score := Evaluate(input).HealthScore
		if score < previous {
			t.Fatalf("score dropped from %d to %d at savings=%d", previous, score, savings)
		}
		previous = score
	}
}

// TestEvaluateMonotonicHousing проверяет, что рост доли жилья не улучшает оценку.
func TestEvaluateMonotonicHousing(t *testing.T) {
	rank := map[Feedback]int{
		FeedbackExcellent: 0,
		FeedbackGood:      1,
		FeedbackWarning:   2,
		FeedbackHigh:      3,
	}

	previousRank := -1
	previousScore := 101
	for housing := int64(0); housing <= 4000; housing += 200 {
		input := Input{
			Income: dec("5000"),
			Amounts: map[Category]decimal.Decimal{
				CategoryHousing: decimal.NewFromInt(housing),
				CategorySavings: dec("500"),
			},
			Currency: CodeUSD,
		}

		result := Evaluate(input)
		if rank[result.Feedback[CategoryHousing]] < previousRank {
			t.Fatalf("housing feedback improved at housing=%d", housing)
		}
		if result.HealthScore > previousScore {
			t.Fatalf("score improved from %d to %d at housing=%d", previousScore, result.HealthScore, housing)
		}
		previousRank = rank[result.Feedback[CategoryHousing]]
		previousScore = result.HealthScore
	}
}

// TestEvaluateConservation проверяет точность суммы расходов и остатка.
func TestEvaluateConservation(t *testing.T) {
	input := Input{
		Income: dec("4321.09"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing:       dec("1234.56"),
			CategoryFood:          dec("0.01"),
			CategoryEntertainment: dec("3500.99"),
		},
		Currency: CodeEUR,
	}

	result := Evaluate(input)

	expectedTotal := dec("1234.56").Add(dec("0.01")).Add(dec("3500.99"))
	if !result.TotalExpenses.Equal(expectedTotal) {
		t.Fatalf("expected total %s, got %s", expectedTotal, result.TotalExpenses)
	}

	expectedRemaining := dec("4321.09").Sub(expectedTotal)
	if !result.Remaining.Equal(expectedRemaining) {
		t.Fatalf("expected remaining %s, got %s", expectedRemaining, result.Remaining)
	}

	if !result.Remaining.IsNegative() {
		t.Fatal("expected negative remaining")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for expenses above income")
	}
}

// TestEvaluateIdempotent проверяет, что повторный расчет дает идентичный итог.
func TestEvaluateIdempotent(t *testing.T) {
	input := Input{
		Income: dec("5000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing: dec("2000"),
			CategorySavings: dec("800"),
		},
		Currency: CodeGBP,
	}

	first := Evaluate(input)
	second := Evaluate(input)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical results for identical input")
	}
}

// TestEvaluateEmergencyFund проверяет цели резервного фонда и срок накопления.
func TestEvaluateEmergencyFund(t *testing.T) {
	input := Input{
		Income: dec("4000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing:        dec("1200"),
			CategoryFood:           dec("400"),
			CategoryTransportation: dec("300"),
		},
		Currency: CodeUSD,
	}

	fund := Evaluate(input).EmergencyFund
	if !fund.Minimum.Equal(dec("5700")) {
		t.Fatalf("expected minimum 5700, got %s", fund.Minimum)
	}
	if !fund.Ideal.Equal(dec("11400")) {
		t.Fatalf("expected ideal 11400, got %s", fund.Ideal)
	}
	if fund.MonthsToMinimum != nil {
		t.Fatal("expected months to be not applicable without savings")
	}

	input.Amounts[CategorySavings] = dec("400")
	fund = Evaluate(input).EmergencyFund
	if !fund.Minimum.Equal(dec("5700")) {
		t.Fatalf("expected savings excluded from fund base, got %s", fund.Minimum)
	}
	if fund.MonthsToMinimum == nil {
		t.Fatal("expected months with positive savings")
	}
	if *fund.MonthsToMinimum != 15 {
		t.Fatalf("expected 15 months (ceiling), got %d", *fund.MonthsToMinimum)
	}
}

// TestEvaluateSubscriptionBudget проверяет рекомендуемый лимит на подписки.
func TestEvaluateSubscriptionBudget(t *testing.T) {
	input := Input{
		Income: dec("3000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing:        dec("900"),
			CategoryFood:           dec("400"),
			CategoryTransportation: dec("300"),
			CategorySavings:        dec("300"),
		},
		Currency: CodeUSD,
	}

	result := Evaluate(input)
	if !result.SubscriptionBudget.Available.Equal(dec("1100")) {
		t.Fatalf("expected available 1100, got %s", result.SubscriptionBudget.Available)
	}
	if !result.SubscriptionBudget.RecommendedLimit.Equal(dec("220")) {
		t.Fatalf("expected limit 220, got %s", result.SubscriptionBudget.RecommendedLimit)
	}

	input.Amounts[CategoryHousing] = dec("3000")
	result = Evaluate(input)
	if !result.SubscriptionBudget.RecommendedLimit.IsZero() {
		t.Fatalf("expected zero limit without discretionary budget, got %s", result.SubscriptionBudget.RecommendedLimit)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning without discretionary budget")
	}
}

// TestSubscriptionUsage проверяет сравнение подписок с бюджетом развлечений.
func TestSubscriptionUsage(t *testing.T) {
	input := Input{
		Income: dec("3000"),
		Amounts: map[Category]decimal.Decimal{
			CategoryEntertainment: dec("300"),
			CategorySavings:       dec("300"),
		},
		Currency: CodeUSD,
	}

	result := Evaluate(input)

	usage := result.SubscriptionUsage(input.Amounts[CategoryEntertainment], dec("150"))
	if usage.EntertainmentUsedPercent == nil {
		t.Fatal("expected entertainment usage percent")
	}
	if *usage.EntertainmentUsedPercent != 50 {
		t.Fatalf("expected 50%%, got %d", *usage.EntertainmentUsedPercent)
	}
	if !usage.WithinRecommendedLimit {
		t.Fatal("expected usage within recommended limit")
	}

	usage = result.SubscriptionUsage(decimal.Zero, dec("150"))
	if usage.EntertainmentUsedPercent != nil {
		t.Fatal("expected not applicable percent for empty entertainment budget")
	}
}

// TestEvaluateDegenerateInput проверяет расчет без падений на нулевом доходе.
func TestEvaluateDegenerateInput(t *testing.T) {
	input := Input{
		Income:   decimal.Zero,
		Amounts:  map[Category]decimal.Decimal{CategoryHousing: dec("500")},
		Currency: CodeUSD,
	}

	result := Evaluate(input)
	if result.Percentages[CategoryHousing] != 0 {
		t.Fatalf("expected zero percent at zero income, got %d", result.Percentages[CategoryHousing])
	}
	if result.HealthScore < 0 || result.HealthScore > 100 {
		t.Fatalf("expected clamped score, got %d", result.HealthScore)
	}
}
