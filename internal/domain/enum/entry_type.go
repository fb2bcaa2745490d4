package enum

// EntryType distinguishes the two ledger tables.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// Valid reports whether the entry type is supported.
func (e EntryType) Valid() bool {
	return e == EntryIncome || e == EntryExpense
}
