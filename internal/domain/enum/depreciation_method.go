package enum

// DepreciationMethod selects how an asset's yearly depreciation is computed.
type DepreciationMethod string

const (
	DepreciationLinear    DepreciationMethod = "linear"
	DepreciationDeclining DepreciationMethod = "declining"
)

// Valid reports whether the method is supported.
func (d DepreciationMethod) Valid() bool {
	return d == DepreciationLinear || d == DepreciationDeclining
}
