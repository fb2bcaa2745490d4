package enum

// PaymentMethod identifies how an expense was settled. The DATEV counter
// account differs per method and per chart of accounts.
type PaymentMethod string

const (
	PaymentMethodBank       PaymentMethod = "bank"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

// Valid reports whether the method is one of the supported settlement types.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodBank, PaymentMethodCash, PaymentMethodCreditCard:
		return true
	}
	return false
}
