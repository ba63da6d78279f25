package budget

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseInput разбирает данные формы в Input, собирая ошибки полей.
// Неизвестные ключи категорий отклоняются явно, а не игнорируются.
func ParseInput(raw RawInput) (Input, []FieldError) {
	var errs []FieldError

	input := Input{Amounts: make(map[Category]decimal.Decimal, len(raw.Amounts))}

	income, ok := parseAmount(raw.Income)
	if !ok {
		errs = append(errs, FieldError{Field: "income", Kind: ErrorKindNotANumber, Message: "must be a number"})
	} else {
		input.Income = income
	}

	keys := make([]string, 0, len(raw.Amounts))
	for key := range raw.Amounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		category, known := ParseCategory(strings.TrimSpace(key))
		if !known {
			errs = append(errs, FieldError{Field: key, Kind: ErrorKindUnknownCategory, Message: "unknown category"})
			continue
		}

		value := strings.TrimSpace(raw.Amounts[key])
		if value == "" {
			continue
		}

		amount, ok := parseAmount(value)
		if !ok {
			errs = append(errs, FieldError{Field: string(category), Kind: ErrorKindNotANumber, Message: "must be a number"})
			continue
		}

		input.Amounts[category] = amount
	}

	code, ok := ParseCode(raw.Currency)
	if !ok {
		errs = append(errs, FieldError{Field: "currency", Kind: ErrorKindUnsupportedCurrency, Message: "unsupported currency"})
	} else {
		input.Currency = code
	}

	return input, errs
}

// Validate проверяет числовые ограничения бюджета. Пустой срез означает,
// что ввод корректен. Ошибки возвращаются как данные и не прерывают вызов.
func Validate(input Input) []FieldError {
	var errs []FieldError

	if !input.Income.IsPositive() {
		errs = append(errs, FieldError{Field: "income", Kind: ErrorKindNonPositiveIncome, Message: "must be greater than zero"})
	}

	for _, category := range categoryOrder {
		amount, ok := input.Amounts[category]
		if !ok {
			continue
		}

		if amount.IsNegative() {
			errs = append(errs, FieldError{Field: string(category), Kind: ErrorKindNegativeAmount, Message: "must be a positive amount"})
			continue
		}

		if input.Income.IsPositive() && amount.GreaterThan(input.Income) {
			errs = append(errs, FieldError{Field: string(category), Kind: ErrorKindCategoryExceedsIncome, Message: "exceeds your income"})
		}
	}

	if _, ok := input.Currency.info(); !ok {
		errs = append(errs, FieldError{Field: "currency", Kind: ErrorKindUnsupportedCurrency, Message: "unsupported currency"})
	}

	return errs
}

func parseAmount(value string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return amount, true
}
