package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-ledger-go/internal/models"
)

// MoneyScale is the number of decimal places amounts are kept at.
const MoneyScale = 2

// MaxAmount is the largest value the numeric(14,2) amount column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

type TransactionInput struct {
	Name        string          `json:"name"`
	Kind        models.Kind     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        models.Date     `json:"date"`
	Description *string         `json:"description"`
	CategoryID  *string         `json:"categoryId"`
	EmployeeID  *string         `json:"employeeId"`
	IsRecurring bool            `json:"isRecurring"`
}

// TransactionPatch changes only the keys present in the payload. An
// explicit null clears description, categoryId and employeeId; the other
// fields cannot be nulled.
type TransactionPatch struct {
	Name        Optional[string]          `json:"name"`
	Kind        Optional[models.Kind]     `json:"type"`
	Amount      Optional[decimal.Decimal] `json:"amount"`
	Date        Optional[models.Date]     `json:"date"`
	Description Optional[string]          `json:"description"`
	CategoryID  Optional[string]          `json:"categoryId"`
	EmployeeID  Optional[string]          `json:"employeeId"`
	IsRecurring Optional[bool]            `json:"isRecurring"`
}

// TransactionFilter narrows List. Zero values mean "no constraint"; From
// and To are inclusive.
type TransactionFilter struct {
	Kind       models.Kind
	From       models.Date
	To         models.Date
	CategoryID string
	EmployeeID string
}

// Ledger owns the user's transactions and their monthly aggregation.
type Ledger struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewLedger uses loc as the calendar for "the current month".
func NewLedger(db *gorm.DB, loc *time.Location) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	return &Ledger{db: db, loc: loc, now: time.Now}
}

func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "color")
	})
}

func (l *Ledger) scoped(ctx context.Context, userID string, f TransactionFilter) *gorm.DB {
	query := l.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Kind != "" {
		query = query.Where("type = ?", f.Kind)
	}
	if !f.From.IsZero() {
		query = query.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		query = query.Where("date <= ?", f.To)
	}
	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.EmployeeID != "" {
		query = query.Where("employee_id = ?", f.EmployeeID)
	}
	return query
}

// List returns transactions newest first, each with its category snapshot.
func (l *Ledger) List(ctx context.Context, userID string, f TransactionFilter) ([]models.Transaction, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return nil, invalidf("end_date must not be before start_date")
	}
	txns := []models.Transaction{}
	err := withCategory(l.scoped(ctx, userID, f)).Order("date desc, created_at desc").Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

func (l *Ledger) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return findTransaction(withCategory(l.db.WithContext(ctx)), userID, id)
}

func findTransaction(db *gorm.DB, userID, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("transaction")
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &txn, nil
}

func (l *Ledger) Create(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	txn := models.Transaction{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Kind:        in.Kind,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  blankToNil(in.CategoryID),
		EmployeeID:  blankToNil(in.EmployeeID),
		IsRecurring: in.IsRecurring,
	}
	if txn.Name == "" {
		return nil, invalidf("name is required")
	}
	if !txn.Kind.Valid() {
		return nil, invalidf("type must be %q or %q", models.KindIncome, models.KindExpense)
	}
	amount, err := validAmount(txn.Amount)
	if err != nil {
		return nil, err
	}
	txn.Amount = amount
	if txn.Date.IsZero() {
		return nil, invalidf("date is required")
	}

	var created *models.Transaction
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, userID, txn.CategoryID, txn.EmployeeID); err != nil {
			return err
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		var err error
		created, err = findTransaction(withCategory(tx), userID, txn.ID)
		return err
	})
	if err != nil {
		return nil, transactionWriteError("create", err)
	}
	return created, nil
}

func (l *Ledger) Update(ctx context.Context, userID, id string, patch TransactionPatch) (*models.Transaction, error) {
	var updated *models.Transaction
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findTransaction(tx, userID, id)
		if err != nil {
			return err
		}

		changes := map[string]any{}
		if patch.Name.Set {
			name := strings.TrimSpace(patch.Name.Value)
			if patch.Name.Null || name == "" {
				return invalidf("name cannot be empty")
			}
			changes["name"] = name
		}
		if patch.Kind.Set {
			if patch.Kind.Null || !patch.Kind.Value.Valid() {
				return invalidf("type must be %q or %q", models.KindIncome, models.KindExpense)
			}
			changes["type"] = patch.Kind.Value
		}
		if patch.Amount.Set {
			if patch.Amount.Null {
				return invalidf("amount cannot be null")
			}
			amount, err := validAmount(patch.Amount.Value)
			if err != nil {
				return err
			}
			changes["amount"] = amount
		}
		if patch.Date.Set {
			if patch.Date.Null || patch.Date.Value.IsZero() {
				return invalidf("date cannot be empty")
			}
			changes["date"] = patch.Date.Value
		}
		if patch.Description.Set {
			changes["description"] = patch.Description.Ptr()
		}
		var categoryID, employeeID *string
		if patch.CategoryID.Set {
			categoryID = blankToNil(patch.CategoryID.Ptr())
			changes["category_id"] = categoryID
		}
		if patch.EmployeeID.Set {
			employeeID = blankToNil(patch.EmployeeID.Ptr())
			changes["employee_id"] = employeeID
		}
		if patch.IsRecurring.Set {
			if patch.IsRecurring.Null {
				return invalidf("isRecurring cannot be null")
			}
			changes["is_recurring"] = patch.IsRecurring.Value
		}

		if err := checkReferences(tx, userID, categoryID, employeeID); err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(current).Updates(changes).Error; err != nil {
				return err
			}
		}
		updated, err = findTransaction(withCategory(tx), userID, id)
		return err
	})
	if err != nil {
		return nil, transactionWriteError("update", err)
	}
	return updated, nil
}

func (l *Ledger) Delete(ctx context.Context, userID, id string) error {
	res := l.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("transaction")
	}
	return nil
}

// MonthStart is the first day of the current month in the ledger's calendar.
func (l *Ledger) MonthStart() models.Date {
	return models.DateOf(l.now().In(l.loc)).FirstOfMonth()
}

// Summary totals the transactions dated on or after the first day of the
// current month.
func (l *Ledger) Summary(ctx context.Context, userID string) (Totals, error) {
	var rows []models.Transaction
	err := l.scoped(ctx, userID, TransactionFilter{From: l.MonthStart()}).
		Select("type", "amount").
		Find(&rows).Error
	if err != nil {
		return Totals{}, fmt.Errorf("summarize transactions: %w", err)
	}
	return Aggregate(rows), nil
}

// Breakdown groups the filtered transactions for charting.
func (l *Ledger) Breakdown(ctx context.Context, userID string, f TransactionFilter) (*Breakdown, error) {
	txns, err := l.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return BuildBreakdown(txns), nil
}

func validAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Decimal{}, invalidf("amount must be greater than zero")
	}
	amount = amount.Round(MoneyScale)
	if !amount.IsPositive() {
		return decimal.Decimal{}, invalidf("amount must be at least 0.01")
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Decimal{}, invalidf("amount must not exceed %s", MaxAmount.StringFixed(MoneyScale))
	}
	return amount, nil
}

func blankToNil(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}

// checkReferences rejects category and person ids the user does not own.
func checkReferences(tx *gorm.DB, userID string, categoryID, employeeID *string) error {
	if categoryID != nil {
		if _, err := findCategory(tx, userID, *categoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalidf("categoryId: category not found")
			}
			return err
		}
	}
	if employeeID != nil {
		if _, err := findPerson(tx, userID, *employeeID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalidf("employeeId: person not found")
			}
			return err
		}
	}
	return nil
}

func transactionWriteError(op string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return invalidf("categoryId: category not found")
	}
	return fmt.Errorf("%s transaction: %w", op, err)
}
