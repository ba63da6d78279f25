package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Code string

const (
	CodeUSD Code = "USD"
	CodeEUR Code = "EUR"
	CodeGBP Code = "GBP"
	CodeCAD Code = "CAD"
	CodeJPY Code = "JPY"
)

// CurrencyInfo — валюта с символом и числом знаков после запятой.
type CurrencyInfo struct {
	Code     Code   `json:"code"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}

var currencyTable = []CurrencyInfo{
	{Code: CodeUSD, Symbol: "$", Decimals: 2},
	{Code: CodeEUR, Symbol: "€", Decimals: 2},
	{Code: CodeGBP, Symbol: "£", Decimals: 2},
	{Code: CodeCAD, Symbol: "CA$", Decimals: 2},
	{Code: CodeJPY, Symbol: "¥", Decimals: 0},
}

// Currencies возвращает поддерживаемые валюты в фиксированном порядке.
func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, len(currencyTable))
	copy(out, currencyTable)
	return out
}

// ParseCode сопоставляет строку с кодом поддерживаемой валюты.
func ParseCode(value string) (Code, bool) {
	normalized := Code(strings.ToUpper(strings.TrimSpace(value)))
	for _, info := range currencyTable {
		if info.Code == normalized {
			return info.Code, true
		}
	}

	return "", false
}

// Format выводит сумму с символом валюты, разделителями тысяч и
// принятым для валюты числом знаков после запятой. Конвертации курсов нет.
func (c Code) Format(amount decimal.Decimal) string {
	info, ok := c.info()
	if !ok {
		return amount.String()
	}

	fixed := amount.StringFixed(info.Decimals)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = strings.TrimPrefix(fixed, "-")
	}

	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart, fracPart = fixed[:idx], fixed[idx:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(info.Symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)

	return b.String()
}

func (c Code) info() (CurrencyInfo, bool) {
	for _, info := range currencyTable {
		if info.Code == c {
			return info, true
		}
	}

	return CurrencyInfo{}, false
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
