package models

import "fmt"

// TransactionType is one of the four classification buckets shared by
// subcategories, transactions, and goals.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
	TypeDonation   TransactionType = "donation"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment, TypeDonation:
		return true
	}
	return false
}

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
	return t, nil
}
