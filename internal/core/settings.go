package core

import "strings"

// Settings are the user preferences shared by every view.
type Settings struct {
	Currency      string `json:"currency"`
	MonthlyBudget Money  `json:"monthlyBudget"`
	DarkMode      bool   `json:"darkMode"`
}

// SettingsPatch is a partial settings update. Nil fields are retained.
type SettingsPatch struct {
	Currency      *string `json:"currency,omitempty"`
	MonthlyBudget *Money  `json:"monthlyBudget,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
}

type CurrencyInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Currencies lists the currencies offered for selection.
var Currencies = []CurrencyInfo{
	{Code: "PHP", Name: "Philippine Peso"},
	{Code: "USD", Name: "US Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
	{Code: "JPY", Name: "Japanese Yen"},
	{Code: "CAD", Name: "Canadian Dollar"},
	{Code: "AUD", Name: "Australian Dollar"},
	{Code: "CNY", Name: "Chinese Yuan"},
	{Code: "INR", Name: "Indian Rupee"},
}

func DefaultSettings() Settings {
	return Settings{
		Currency:      "PHP",
		MonthlyBudget: FromUnits(2000),
		DarkMode:      false,
	}
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCurrency(code string) error {
	if len(code) != 3 {
		return ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ErrInvalidCurrency
		}
	}
	return nil
}

func (s Settings) Validate() error {
	if err := validateCurrency(s.Currency); err != nil {
		return invalid("currency", err)
	}
	if s.MonthlyBudget.IsNegative() {
		return invalid("monthlyBudget", ErrNegativeBudget)
	}
	if s.MonthlyBudget.Cents > MaxAmount*100 {
		return invalid("monthlyBudget", ErrInvalidAmount)
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.Currency == nil && p.MonthlyBudget == nil && p.DarkMode == nil
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Currency != nil {
		s.Currency = NormalizeCurrency(*p.Currency)
	}
	if p.MonthlyBudget != nil {
		s.MonthlyBudget = *p.MonthlyBudget
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	return s
}
