// Package accounting holds the static statutory reference tables: BU keys
// per VAT rate, SKR03/SKR04 chart-of-accounts mappings, input-tax
// eligibility per expense category, and default EÜR line numbers. The tables
// are built once at process start and never mutated; every lookup is a pure
// function of (chart, key) and fails loudly on unmapped keys instead of
// defaulting to account 0.
package accounting

import (
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// vatRateToCode maps a statutory VAT rate to its DATEV BU-Schlüssel.
var vatRateToCode = map[enum.VatRate]int{
	enum.VatRateZero:     0,
	enum.VatRateReduced:  2,
	enum.VatRateStandard: 3,
}

// VatCodeForRate returns the BU-Schlüssel for a VAT rate.
func VatCodeForRate(rate enum.VatRate) (int, error) {
	code, ok := vatRateToCode[rate]
	if !ok {
		return 0, apperror.NewConfigurationError("no BU-Schlüssel mapped for VAT rate %d%%", int(rate))
	}
	return code, nil
}

// vorsteuerExcluded lists expense categories whose VAT is not deductible as
// input tax. Absence from this set means eligible.
var vorsteuerExcluded = map[string]bool{
	"insurance":     true,
	"bank_fees":     true,
	"taxes":         true,
	"contributions": true,
}

// VorsteuerEligible reports whether an expense category's VAT counts toward
// the deductible input tax (Kz66). Unknown categories default to eligible.
func VorsteuerEligible(category string) bool {
	return !vorsteuerExcluded[category]
}

// defaultEuerLines maps expense categories to the Anlage EÜR line the
// amount is reported on. Used to prefill new entries; the stored line on the
// row is authoritative for aggregation.
var defaultEuerLines = map[string]int{
	"goods":                 26,
	"office_supplies":       52,
	"postage":               52,
	"phone":                 51,
	"internet":              51,
	"software":              51,
	"travel":                55,
	"rent":                  47,
	"insurance":             49,
	"marketing":             54,
	"training":              53,
	"legal_consulting":      53,
	"equipment":             45,
	"other":                 60,
}

// DefaultEuerLine returns the prefill EÜR line for a category, or the
// catch-all line when the category carries no specific mapping.
func DefaultEuerLine(category string) int {
	if line, ok := defaultEuerLines[category]; ok {
		return line
	}
	return defaultEuerLines["other"]
}
