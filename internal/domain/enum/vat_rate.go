package enum

import "fmt"

// VatRate is a German VAT percentage. Only the statutory rates are valid.
type VatRate int

const (
	VatRateZero     VatRate = 0
	VatRateReduced  VatRate = 7
	VatRateStandard VatRate = 19
)

// Valid reports whether the rate is one of the statutory German rates.
func (v VatRate) Valid() bool {
	switch v {
	case VatRateZero, VatRateReduced, VatRateStandard:
		return true
	}
	return false
}

func (v VatRate) String() string {
	return fmt.Sprintf("%d%%", int(v))
}
