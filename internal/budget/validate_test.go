package budget

import (
	"testing"

	"github.com/shopspring/decimal"
)

// TestParseInputValid проверяет разбор корректной формы.
func TestParseInputValid(t *testing.T) {
	raw := RawInput{
		Income: " 5000 ",
		Amounts: map[string]string{
			"housing": "2000",
			"savings": "800",
			"food":    "",
		},
		Currency: "usd",
	}

	input, errs := ParseInput(raw)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	if !input.Income.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected income 5000, got %s", input.Income)
	}
	if input.Currency != CodeUSD {
		t.Fatalf("expected USD, got %s", input.Currency)
	}
	if !input.Amounts[CategoryHousing].Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected housing 2000, got %s", input.Amounts[CategoryHousing])
	}
	if _, ok := input.Amounts[CategoryFood]; ok {
		t.Fatal("expected empty amount to be treated as absent")
	}
}

// TestParseInputNotANumber проверяет ошибку разбора нечислового значения.
func TestParseInputNotANumber(t *testing.T) {
	_, errs := ParseInput(RawInput{Income: "abc", Currency: "USD"})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindNotANumber || errs[0].Field != "income" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}

	_, errs = ParseInput(RawInput{
		Income:   "5000",
		Amounts:  map[string]string{"housing": "12x0"},
		Currency: "USD",
	})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindNotANumber || errs[0].Field != "housing" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestParseInputUnknownCategory проверяет отказ по неизвестному ключу.
func TestParseInputUnknownCategory(t *testing.T) {
	_, errs := ParseInput(RawInput{
		Income:   "5000",
		Amounts:  map[string]string{"coffee": "10"},
		Currency: "USD",
	})

	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindUnknownCategory || errs[0].Field != "coffee" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestParseInputUnsupportedCurrency проверяет отказ по валюте вне набора.
func TestParseInputUnsupportedCurrency(t *testing.T) {
	_, errs := ParseInput(RawInput{Income: "5000", Currency: "XYZ"})
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindUnsupportedCurrency || errs[0].Field != "currency" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestValidateNonPositiveIncome проверяет отказ по нулевому доходу.
func TestValidateNonPositiveIncome(t *testing.T) {
	input := Input{Income: decimal.Zero, Currency: CodeUSD}

	errs := Validate(input)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindNonPositiveIncome || errs[0].Field != "income" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestValidateNegativeAmount проверяет отказ по отрицательной сумме.
func TestValidateNegativeAmount(t *testing.T) {
	input := Input{
		Income:   decimal.NewFromInt(5000),
		Amounts:  map[Category]decimal.Decimal{CategoryHousing: decimal.NewFromInt(-500)},
		Currency: CodeUSD,
	}

	errs := Validate(input)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindNegativeAmount || errs[0].Field != "housing" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestValidateCategoryExceedsIncome проверяет отказ по сумме выше дохода.
func TestValidateCategoryExceedsIncome(t *testing.T) {
	input := Input{
		Income:   decimal.NewFromInt(1000),
		Amounts:  map[Category]decimal.Decimal{CategoryHousing: decimal.NewFromInt(5000)},
		Currency: CodeUSD,
	}

	errs := Validate(input)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Kind != ErrorKindCategoryExceedsIncome || errs[0].Field != "housing" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

// TestValidateClean проверяет, что корректный ввод проходит без ошибок.
func TestValidateClean(t *testing.T) {
	input := Input{
		Income: decimal.NewFromInt(5000),
		Amounts: map[Category]decimal.Decimal{
			CategoryHousing: decimal.NewFromInt(1500),
			CategorySavings: decimal.NewFromInt(1000),
		},
		Currency: CodeUSD,
	}

	if errs := Validate(input); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
