package budget

import "testing"

// TestFormatTwoDecimalCurrencies проверяет формат валют с двумя знаками.
func TestFormatTwoDecimalCurrencies(t *testing.T) {
	if got := CodeUSD.Format(dec("1234567.891")); got != "$1,234,567.89" {
		t.Fatalf("unexpected USD format: %s", got)
	}
	if got := CodeEUR.Format(dec("0.5")); got != "€0.50" {
		t.Fatalf("unexpected EUR format: %s", got)
	}
	if got := CodeCAD.Format(dec("999")); got != "CA$999.00" {
		t.Fatalf("unexpected CAD format: %s", got)
	}
}

// TestFormatJPY проверяет, что иена выводится без дробной части.
func TestFormatJPY(t *testing.T) {
	if got := CodeJPY.Format(dec("1234567.4")); got != "¥1,234,567" {
		t.Fatalf("unexpected JPY format: %s", got)
	}
	if got := CodeJPY.Format(dec("999.5")); got != "¥1,000" {
		t.Fatalf("unexpected JPY rounding: %s", got)
	}
}

// TestFormatNegative проверяет знак перед символом валюты.
func TestFormatNegative(t *testing.T) {
	if got := CodeGBP.Format(dec("-1234.5")); got != "-£1,234.50" {
		t.Fatalf("unexpected negative format: %s", got)
	}
}

// TestParseCode проверяет разбор кода валюты без учета регистра.
func TestParseCode(t *testing.T) {
	code, ok := ParseCode(" usd ")
	if !ok || code != CodeUSD {
		t.Fatalf("expected USD, got %s (ok=%v)", code, ok)
	}

	if _, ok := ParseCode("XYZ"); ok {
		t.Fatal("expected unsupported currency")
	}
}

// TestCurrencies проверяет состав поддерживаемых валют.
func TestCurrencies(t *testing.T) {
	list := Currencies()
	if len(list) != 5 {
		t.Fatalf("expected 5 currencies, got %d", len(list))
	}

	if list[0].Code != CodeUSD || list[0].Symbol != "$" {
		t.Fatalf("unexpected first currency: %+v", list[0])
	}
	if list[4].Code != CodeJPY || list[4].Decimals != 0 {
		t.Fatalf("unexpected JPY entry: %+v", list[4])
	}
}
