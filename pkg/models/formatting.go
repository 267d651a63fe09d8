package models

// NumericSubtype selects how a numeric or masked field is displayed.
type NumericSubtype string

const (
	SubtypeCurrency   NumericSubtype = "currency"
	SubtypeDecimal    NumericSubtype = "decimal"
	SubtypePercentage NumericSubtype = "percentage"
	SubtypeInteger    NumericSubtype = "integer"
	SubtypeCPF        NumericSubtype = "cpf"
	SubtypeCNPJ       NumericSubtype = "cnpj"
	SubtypeCEP        NumericSubtype = "cep"
	SubtypePhone      NumericSubtype = "phone"
)

// IsMasked reports whether the subtype renders digits through a fixed mask
// instead of as a number.
func (s NumericSubtype) IsMasked() bool {
	switch s {
	case SubtypeCPF, SubtypeCNPJ, SubtypeCEP, SubtypePhone:
		return true
	default:
		return false
	}
}

type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// NumericFormat is the display configuration stored on a field. The model
// only stores it; rendering lives in the format package.
type NumericFormat struct {
	Subtype            NumericSubtype `json:"subtype"`
	Decimals           int            `json:"decimals"`
	DecimalSeparator   string         `json:"decimalSeparator"`
	ThousandsSeparator string         `json:"thousandsSeparator"`
	Currency           string         `json:"currency,omitempty"`
	CurrencySymbol     string         `json:"currencySymbol,omitempty"`
	SymbolPosition     SymbolPosition `json:"symbolPosition,omitempty"`
	Mask               string         `json:"mask,omitempty"`
}

type currencyPreset struct {
	symbol    string
	decimal   string
	thousands string
	position  SymbolPosition
}

var currencyPresets = map[string]currencyPreset{
	"BRL": {symbol: "R$", decimal: ",", thousands: ".", position: SymbolBefore},
	"USD": {symbol: "$", decimal: ".", thousands: ",", position: SymbolBefore},
	"EUR": {symbol: "€", decimal: ",", thousands: ".", position: SymbolAfter},
}

var canonicalMasks = map[NumericSubtype]string{
	SubtypeCPF:   "000.000.000-00",
	SubtypeCNPJ:  "00.000.000/0000-00",
	SubtypeCEP:   "00000-000",
	SubtypePhone: "(00) 00000-0000",
}

// CanonicalMask returns the display mask of a masked subtype.
func CanonicalMask(s NumericSubtype) string {
	return canonicalMasks[s]
}

// CurrencyCodes lists the currencies with a built-in preset.
func CurrencyCodes() []string {
	return []string{"BRL", "USD", "EUR"}
}

// CurrencyFormat returns the currency preset for code. Unknown codes fall
// back to BRL separators with the code as symbol.
func CurrencyFormat(code string) NumericFormat {
	preset, ok := currencyPresets[code]
	if !ok {
		preset = currencyPresets["BRL"]
		preset.symbol = code
	}

	return NumericFormat{
		Subtype:            SubtypeCurrency,
		Decimals:           2,
		DecimalSeparator:   preset.decimal,
		ThousandsSeparator: preset.thousands,
		Currency:           code,
		CurrencySymbol:     preset.symbol,
		SymbolPosition:     preset.position,
	}
}

// DefaultNumericFormat returns the configuration selected when a subtype is
// first picked in the field editor.
func DefaultNumericFormat(s NumericSubtype) NumericFormat {
	switch s {
	case SubtypeCurrency:
		return CurrencyFormat("BRL")
	case SubtypeDecimal:
		return NumericFormat{Subtype: s, Decimals: 2, DecimalSeparator: ",", ThousandsSeparator: "."}
	case SubtypePercentage:
		return NumericFormat{Subtype: s, Decimals: 2, DecimalSeparator: ",", ThousandsSeparator: "."}
	case SubtypeInteger:
		return NumericFormat{Subtype: s, Decimals: 0, DecimalSeparator: ",", ThousandsSeparator: "."}
	case SubtypeCPF, SubtypeCNPJ, SubtypeCEP, SubtypePhone:
		return NumericFormat{Subtype: s, Mask: canonicalMasks[s]}
	default:
		return NumericFormat{Subtype: s}
	}
}
