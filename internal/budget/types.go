package budget

import "github.com/shopspring/decimal"

type Category string

type Feedback string

type HealthLabel string

type ErrorKind string

const (
	CategoryHousing        Category = "housing"
	CategoryUtilities      Category = "utilities"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategorySavings        Category = "savings"
	CategoryOther          Category = "other"

	FeedbackExcellent        Feedback = "excellent"
	FeedbackGood             Feedback = "good"
	FeedbackWarning          Feedback = "warning"
	FeedbackHigh             Feedback = "high"
	FeedbackNeedsImprovement Feedback = "needs improvement"

	HealthExcellent        HealthLabel = "Excellent"
	HealthGood             HealthLabel = "Good"
	HealthFair             HealthLabel = "Fair"
	HealthNeedsImprovement HealthLabel = "Needs Improvement"

	ErrorKindNonPositiveIncome     ErrorKind = "non_positive_income"
	ErrorKindNegativeAmount        ErrorKind = "negative_amount"
	ErrorKindNotANumber            ErrorKind = "not_a_number"
	ErrorKindCategoryExceedsIncome ErrorKind = "category_exceeds_income"
	ErrorKindUnsupportedCurrency   ErrorKind = "unsupported_currency"
	ErrorKindUnknownCategory       ErrorKind = "unknown_category"
)

// RawInput — данные формы бюджета до разбора чисел и перечислений.
type RawInput struct {
	Income   string            `json:"income"`
	Amounts  map[string]string `json:"categories"`
	Currency string            `json:"currency"`
}

// Input — разобранный снимок бюджета, готовый к проверке и расчету.
type Input struct {
	Income   decimal.Decimal
	Amounts  map[Category]decimal.Decimal
	Currency Code
}

// FieldError описывает ошибку конкретного поля ввода.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// EmergencyFund — целевые накопления на непредвиденные расходы.
// MonthsToMinimum равен nil, когда взнос в сбережения нулевой.
type EmergencyFund struct {
	Minimum         decimal.Decimal `json:"minimum"`
	Ideal           decimal.Decimal `json:"ideal"`
	MonthsToMinimum *int64          `json:"months_to_minimum,omitempty"`
}

// SubscriptionBudget — рекомендуемый лимит трат на подписки.
type SubscriptionBudget struct {
	Available        decimal.Decimal `json:"available"`
	RecommendedLimit decimal.Decimal `json:"recommended_limit"`
}

// Usage сравнивает суммарную стоимость подписок с бюджетом развлечений.
// EntertainmentUsedPercent равен nil, когда категория развлечений пуста.
type Usage struct {
	DetectedTotal            decimal.Decimal `json:"detected_total"`
	EntertainmentUsedPercent *int64          `json:"entertainment_used_percent,omitempty"`
	WithinRecommendedLimit   bool            `json:"within_recommended_limit"`
}

// Result — итог оценки бюджета. Пересчитывается целиком на каждый ввод.
type Result struct {
	Currency           Code                  `json:"currency"`
	TotalExpenses      decimal.Decimal       `json:"total_expenses"`
	Remaining          decimal.Decimal       `json:"remaining"`
	Percentages        map[Category]int      `json:"percentages"`
	Feedback           map[Category]Feedback `json:"feedback"`
	HealthScore        int                   `json:"health_score"`
	HealthLabel        HealthLabel           `json:"health_label"`
	EmergencyFund      EmergencyFund         `json:"emergency_fund"`
	SubscriptionBudget SubscriptionBudget    `json:"subscription_budget"`
	Warnings           []string              `json:"warnings,omitempty"`
}

var categoryOrder = []Category{
	CategoryHousing,
	CategoryUtilities,
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategorySavings,
	CategoryOther,
}

// Categories возвращает поддерживаемые категории в фиксированном порядке.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory сопоставляет ключ формы с категорией из закрытого набора.
func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryHousing, CategoryUtilities, CategoryFood, CategoryTransportation,
		CategoryEntertainment, CategorySavings, CategoryOther:
		return Category(value), true
	default:
		return "", false
	}
}
