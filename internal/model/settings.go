package model

// Currency is a display currency code.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
)

// Language is a display language.
type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
)

// ThemeMode is the preferred UI theme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// AppSettings holds user preferences and optional benchmark overrides.
type AppSettings struct {
	Currency         Currency            `json:"currency" yaml:"currency" validate:"required,oneof=USD EUR GBP CHF"`
	Language         Language            `json:"language" yaml:"language" validate:"required,oneof=de en"`
	Theme            ThemeMode           `json:"theme" yaml:"theme" validate:"required,oneof=light dark auto"`
	CustomBenchmarks *BenchmarkOverrides `json:"customBenchmarks,omitempty" yaml:"customBenchmarks,omitempty" validate:"omitempty"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() AppSettings {
	return AppSettings{
		Currency: CurrencyUSD,
		Language: LanguageDE,
		Theme:    ThemeAuto,
	}
}
