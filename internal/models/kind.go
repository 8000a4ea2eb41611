package models

import "fmt"

// Kind discriminates income from expense on categories and transactions.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind accepts "" as "no filter".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if s == "" || k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("type must be %q or %q", KindIncome, KindExpense)
}
