package entity

import "github.com/shopspring/decimal"

// Summary holds the income, expense and balance totals over a set of transactions
type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// Summarize partitions transactions by type and totals each partition.
// Sums are accumulated as decimals so that e.g. 0.1 + 0.2 totals exactly 0.3.
func Summarize(txs []Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case Income:
			income = income.Add(amount)
		case Expense:
			expenses = expenses.Add(amount)
		}
	}

	return Summary{
		Income:   income.InexactFloat64(),
		Expenses: expenses.InexactFloat64(),
		Balance:  income.Sub(expenses).InexactFloat64(),
	}
}
