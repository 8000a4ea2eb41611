package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"finance-ledger-go/internal/models"
)

// UncategorizedName labels expenses without a category in breakdowns.
const UncategorizedName = "Sem categoria"

type Totals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Aggregate sums income and expense exactly; balance is income minus expense.
func Aggregate(txns []models.Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		switch txn.Kind {
		case models.KindIncome:
			t.TotalIncome = t.TotalIncome.Add(txn.Amount)
		case models.KindExpense:
			t.TotalExpense = t.TotalExpense.Add(txn.Amount)
		}
	}
	t.Balance = t.TotalIncome.Sub(t.TotalExpense)
	return t
}

type CategoryShare struct {
	CategoryID *string         `json:"categoryId"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type MonthTotals struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Breakdown is the chart data behind the dashboard: expense share per
// category and income/expense per month.
type Breakdown struct {
	Totals
	Categories []CategoryShare `json:"categories"`
	Months     []MonthTotals   `json:"months"`
}

var hundred = decimal.NewFromInt(100)

// BuildBreakdown expects txns to carry their category snapshot.
func BuildBreakdown(txns []models.Transaction) *Breakdown {
	b := &Breakdown{
		Totals:     Aggregate(txns),
		Categories: []CategoryShare{},
		Months:     []MonthTotals{},
	}

	shares := map[string]*CategoryShare{}
	months := map[string]*MonthTotals{}
	for _, txn := range txns {
		month := txn.Date.Month()
		m, ok := months[month]
		if !ok {
			m = &MonthTotals{Month: month}
			months[month] = m
		}
		if txn.Kind == models.KindIncome {
			m.Income = m.Income.Add(txn.Amount)
			continue
		}
		m.Expense = m.Expense.Add(txn.Amount)

		key := ""
		if txn.CategoryID != nil {
			key = *txn.CategoryID
		}
		s, ok := shares[key]
		if !ok {
			s = &CategoryShare{Name: UncategorizedName, Color: models.DefaultCategoryColor}
			if txn.Category != nil {
				id := txn.Category.ID
				s.CategoryID, s.Name, s.Color = &id, txn.Category.Name, txn.Category.Color
			}
			shares[key] = s
		}
		s.Amount = s.Amount.Add(txn.Amount)
	}

	for _, s := range shares {
		if b.TotalExpense.IsPositive() {
			s.Percentage = s.Amount.Mul(hundred).Div(b.TotalExpense).Round(2)
		}
		b.Categories = append(b.Categories, *s)
	}
	sort.Slice(b.Categories, func(i, j int) bool {
		ci, cj := b.Categories[i], b.Categories[j]
		if !ci.Amount.Equal(cj.Amount) {
			return ci.Amount.GreaterThan(cj.Amount)
		}
		return ci.Name < cj.Name
	})

	for _, m := range months {
		b.Months = append(b.Months, *m)
	}
	sort.Slice(b.Months, func(i, j int) bool { return b.Months[i].Month < b.Months[j].Month })
	return b
}
