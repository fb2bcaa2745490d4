package accounting

import (
	"github.com/kontorhq/kontor-api/internal/domain/enum"
	"github.com/kontorhq/kontor-api/pkg/apperror"
)

// Chart identifies one of the two standard German charts of accounts.
type Chart string

const (
	ChartSKR03 Chart = "SKR03"
	ChartSKR04 Chart = "SKR04"
)

// Valid reports whether the chart is supported.
func (c Chart) Valid() bool {
	return c == ChartSKR03 || c == ChartSKR04
}

// ChartOfAccounts is the immutable account mapping for one chart. Built once
// at package init and shared; lookups never mutate it.
type ChartOfAccounts struct {
	chart        Chart
	income       map[string]int
	expense      map[string]int
	counter      map[enum.PaymentMethod]int
	depreciation int
}

var skr03 = &ChartOfAccounts{
	chart: ChartSKR03,
	income: map[string]int{
		"services":    8400,
		"goods":       8200,
		"licenses":    8510,
		"eu_services": 8336,
		"other":       8600,
	},
	expense: map[string]int{
		"goods":            3400,
		"office_supplies":  4930,
		"postage":          4910,
		"phone":            4920,
		"internet":         4921,
		"software":         4806,
		"travel":           4670,
		"rent":             4210,
		"insurance":        4360,
		"bank_fees":        4970,
		"marketing":        4600,
		"training":         4945,
		"legal_consulting": 4950,
		"equipment":        4985,
		"other":            4900,
	},
	counter: map[enum.PaymentMethod]int{
		enum.PaymentMethodBank:       1200,
		enum.PaymentMethodCash:       1000,
		enum.PaymentMethodCreditCard: 1360,
	},
	depreciation: 4830,
}

var skr04 = &ChartOfAccounts{
	chart: ChartSKR04,
	income: map[string]int{
		"services":    4400,
		"goods":       4200,
		"licenses":    4510,
		"eu_services": 4336,
		"other":       4830,
	},
	expense: map[string]int{
		"goods":            5400,
		"office_supplies":  6815,
		"postage":          6800,
		"phone":            6805,
		"internet":         6810,
		"software":         6495,
		"travel":           6670,
		"rent":             6310,
		"insurance":        6400,
		"bank_fees":        6855,
		"marketing":        6600,
		"training":         6821,
		"legal_consulting": 6825,
		"equipment":        6845,
		"other":            6300,
	},
	counter: map[enum.PaymentMethod]int{
		enum.PaymentMethodBank:       1800,
		enum.PaymentMethodCash:       1600,
		enum.PaymentMethodCreditCard: 1460,
	},
	depreciation: 6220,
}

// ChartFor returns the account mapping for the requested chart.
func ChartFor(chart Chart) (*ChartOfAccounts, error) {
	switch chart {
	case ChartSKR03:
		return skr03, nil
	case ChartSKR04:
		return skr04, nil
	}
	return nil, apperror.NewBadRequestError("unsupported chart of accounts: " + string(chart))
}

// Chart returns which chart this mapping belongs to.
func (c *ChartOfAccounts) Chart() Chart {
	return c.chart
}

// IncomeAccount returns the revenue account for an EÜR income category.
func (c *ChartOfAccounts) IncomeAccount(euerCategory string) (int, error) {
	account, ok := c.income[euerCategory]
	if !ok {
		return 0, apperror.NewConfigurationError("%s: no income account mapped for category %q", c.chart, euerCategory)
	}
	return account, nil
}

// ExpenseAccount returns the expense account for a category.
func (c *ChartOfAccounts) ExpenseAccount(category string) (int, error) {
	account, ok := c.expense[category]
	if !ok {
		return 0, apperror.NewConfigurationError("%s: no expense account mapped for category %q", c.chart, category)
	}
	return account, nil
}

// CounterAccount returns the cash/bank account for a payment method.
func (c *ChartOfAccounts) CounterAccount(method enum.PaymentMethod) (int, error) {
	account, ok := c.counter[method]
	if !ok {
		return 0, apperror.NewConfigurationError("%s: no counter account mapped for payment method %q", c.chart, method)
	}
	return account, nil
}

// DepreciationAccount returns the AfA expense account.
func (c *ChartOfAccounts) DepreciationAccount() int {
	return c.depreciation
}
