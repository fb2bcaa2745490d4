package enum

// PeriodType distinguishes monthly from quarterly VAT return periods.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
)

// Valid reports whether the period type is supported.
func (p PeriodType) Valid() bool {
	return p == PeriodMonthly || p == PeriodQuarterly
}
