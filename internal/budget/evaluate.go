package budget

import "github.com/shopspring/decimal"

// Константы политики оценки. Точные границы подобраны так, чтобы порядок
// сохранялся: больше сбережений никогда не ухудшает оценку, больше жилья
// сверх рекомендованной доли никогда не улучшает ее.
const (
	savingsWeight = 40
	housingWeight = 30
	spendWeight   = 30
)

var (
	hundred           = decimal.NewFromInt(100)
	fundMinimumFactor = decimal.NewFromInt(3)
	fundIdealFactor   = decimal.NewFromInt(6)
	subscriptionShare = decimal.New(20, -2)
)

// Evaluate рассчитывает итог бюджета по разобранному вводу. Функция чистая
// и не падает на вырожденном вводе: вместо деления на ноль в результате
// появляются явные маркеры "не применимо".
func Evaluate(input Input) Result {
	result := Result{
		Currency:    input.Currency,
		Percentages: make(map[Category]int, len(input.Amounts)),
		Feedback:    make(map[Category]Feedback, len(input.Amounts)),
	}

	total := decimal.Zero
	for _, category := range categoryOrder {
		if amount, ok := input.Amounts[category]; ok {
			total = total.Add(amount)
		}
	}

	result.TotalExpenses = total
	result.Remaining = input.Income.Sub(total)

	for _, category := range categoryOrder {
		amount, ok := input.Amounts[category]
		if !ok {
			continue
		}

		result.Percentages[category] = displayPercent(amount, input.Income)
		result.Feedback[category] = categoryFeedback(category, amount, input.Income)
	}

	result.HealthScore, result.HealthLabel = healthScore(input, total)
	result.EmergencyFund = emergencyFund(input, total)

	if result.Remaining.IsNegative() {
		result.Warnings = append(result.Warnings, "expenses exceed income")
	}

	result.SubscriptionBudget = SubscriptionBudget{Available: result.Remaining, RecommendedLimit: decimal.Zero}
	if result.Remaining.IsPositive() {
		result.SubscriptionBudget.RecommendedLimit = result.Remaining.Mul(subscriptionShare)
	} else {
		result.Warnings = append(result.Warnings, "no discretionary budget for subscriptions")
	}

	return result
}

// SubscriptionUsage оценивает, какую долю категории развлечений съедает
// суммарная стоимость подписок и укладывается ли она в рекомендуемый лимит.
// Сумму подписок поставляет вызывающая сторона, здесь она не вычисляется.
func (r Result) SubscriptionUsage(entertainment, detectedTotal decimal.Decimal) Usage {
	usage := Usage{
		DetectedTotal:          detectedTotal,
		WithinRecommendedLimit: detectedTotal.Cmp(r.SubscriptionBudget.RecommendedLimit) <= 0,
	}

	if entertainment.IsPositive() {
		percent := detectedTotal.Mul(hundred).Div(entertainment).Round(0).IntPart()
		usage.EntertainmentUsedPercent = &percent
	}

	return usage
}

// Display-проценты округляются к ближайшему целому (половина вверх),
// пороги же сравниваются точно, без деления.
func displayPercent(amount, income decimal.Decimal) int {
	if !income.IsPositive() {
		return 0
	}

	return int(amount.Mul(hundred).Div(income).Round(0).IntPart())
}

func ratioAtMost(amount, income decimal.Decimal, percent int64) bool {
	return amount.Mul(hundred).Cmp(income.Mul(decimal.NewFromInt(percent))) <= 0
}

func ratioAtLeast(amount, income decimal.Decimal, percent int64) bool {
	return amount.Mul(hundred).Cmp(income.Mul(decimal.NewFromInt(percent))) >= 0
}

func ratioAbove(amount, income decimal.Decimal, percent int64) bool {
	return !ratioAtMost(amount, income, percent)
}

func categoryFeedback(category Category, amount, income decimal.Decimal) Feedback {
	switch category {
	case CategoryHousing:
		switch {
		case ratioAbove(amount, income, 50):
			return FeedbackHigh
		case ratioAbove(amount, income, 30):
			return FeedbackWarning
		case ratioAtLeast(amount, income, 25):
			return FeedbackGood
		default:
			return FeedbackExcellent
		}
	case CategorySavings:
		switch {
		case ratioAtLeast(amount, income, 20):
			return FeedbackExcellent
		case ratioAtLeast(amount, income, 10):
			return FeedbackGood
		default:
			return FeedbackNeedsImprovement
		}
	case CategoryFood, CategoryTransportation:
		if ratioAtMost(amount, income, 15) {
			return FeedbackGood
		}
		return FeedbackWarning
	default:
		if ratioAtMost(amount, income, 10) {
			return FeedbackGood
		}
		return FeedbackWarning
	}
}

func healthScore(input Input, total decimal.Decimal) (int, HealthLabel) {
	savings := input.Amounts[CategorySavings]
	housing := input.Amounts[CategoryHousing]
	spend := total.Sub(savings)

	weighted := savingsWeight*savingsComponent(savings, input.Income) +
		housingWeight*housingComponent(housing, input.Income) +
		spendWeight*spendComponent(spend, input.Income)

	score := clamp((weighted+50)/100, 0, 100)

	return score, healthLabel(score)
}

func savingsComponent(savings, income decimal.Decimal) int {
	switch {
	case !savings.IsPositive():
		return 20
	case ratioAtLeast(savings, income, 20):
		return 100
	case ratioAtLeast(savings, income, 10):
		return 80
	case ratioAtLeast(savings, income, 5):
		return 60
	default:
		return 40
	}
}

func housingComponent(housing, income decimal.Decimal) int {
	switch {
	case ratioAtMost(housing, income, 30):
		return 100
	case ratioAtMost(housing, income, 35):
		return 80
	case ratioAtMost(housing, income, 40):
		return 60
	case ratioAtMost(housing, income, 45):
		return 40
	case ratioAtMost(housing, income, 50):
		return 25
	default:
		return 10
	}
}

func spendComponent(spend, income decimal.Decimal) int {
	switch {
	case ratioAtMost(spend, income, 60):
		return 100
	case ratioAtMost(spend, income, 75):
		return 80
	case ratioAtMost(spend, income, 90):
		return 60
	case ratioAtMost(spend, income, 100):
		return 40
	default:
		return 20
	}
}

func healthLabel(score int) HealthLabel {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 65:
		return HealthGood
	case score >= 50:
		return HealthFair
	default:
		return HealthNeedsImprovement
	}
}

// Резервный фонд считается от расходов без взноса в сбережения.
// Срок до минимума не определен при нулевых сбережениях.
func emergencyFund(input Input, total decimal.Decimal) EmergencyFund {
	savings := input.Amounts[CategorySavings]
	base := total.Sub(savings)

	fund := EmergencyFund{
		Minimum: base.Mul(fundMinimumFactor),
		Ideal:   base.Mul(fundIdealFactor),
	}

	if savings.IsPositive() {
		quo, rem := fund.Minimum.QuoRem(savings, 0)
		months := quo.IntPart()
		if rem.IsPositive() {
			months++
		}
		fund.MonthsToMinimum = &months
	}

	return fund
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}

	return value
}
