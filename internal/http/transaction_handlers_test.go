package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"finance-ledger-go/internal/ledger"
	"finance-ledger-go/internal/models"
)

func (s *ServerSuite) createTxn(token string, body map[string]any) models.Transaction {
	w := s.do(http.MethodPost, "/transactions", token, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Transaction](s.T(), w)
}

func (s *ServerSuite) createCategory(token, name, kind string) models.Category {
	w := s.do(http.MethodPost, "/categories", token, map[string]string{"name": name, "type": kind})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Category](s.T(), w)
}

func (s *ServerSuite) TestCreateTransactionEmbedsCategory() {
	token, userID := s.signup("a@x.com")
	rent := s.createCategory(token, "Rent", "expense")

	w := s.do(http.MethodPost, "/transactions", token, map[string]any{
		"name": "March rent", "type": "expense", "amount": 1200.5, "date": "2026-03-05", "categoryId": rent.ID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	raw := decode[map[string]any](s.T(), w)
	s.Equal(userID, raw["userId"])
	s.Equal("2026-03-05", raw["date"])
	s.Equal(1200.5, raw["amount"])
	s.Equal(false, raw["isRecurring"])
	s.Nil(raw["description"])
	s.Nil(raw["employeeId"])
	s.Equal(map[string]any{"id": rent.ID, "name": "Rent", "color": rent.Color}, raw["category"])

	w = s.do(http.MethodGet, "/transactions/"+raw["id"].(string), token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2026-03-05", decode[map[string]any](s.T(), w)["date"])
}

func (s *ServerSuite) TestCreateTransactionValidation() {
	token, _ := s.signup("a@x.com")

	for _, body := range []any{
		map[string]any{"type": "expense", "amount": 10, "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "transfer", "amount": 10, "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "expense", "amount": 0, "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "expense", "amount": -5, "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "expense", "amount": "ten", "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "expense", "amount": 10, "date": "yesterday"},
		map[string]any{"name": "x", "type": "expense", "amount": 0.001, "date": "2026-03-05"},
		map[string]any{"name": "x", "type": "expense", "amount": 1e12, "date": "2026-03-05"},
		`{"name": "x", "type": "expense"`,
	} {
		w := s.do(http.MethodPost, "/transactions", token, body)
		s.Equal(http.StatusBadRequest, w.Code, "body %v", body)
		s.NotEmpty(s.errorOf(w))
	}
}

func (s *ServerSuite) TestCreateTransactionRejectsForeignReferences() {
	alice, _ := s.signup("alice@x.com")
	bob, _ := s.signup("bob@x.com")
	bobs := s.createCategory(bob, "Rent", "expense")

	w := s.do(http.MethodPost, "/employees", bob, map[string]string{"name": "Ana"})
	s.Require().Equal(http.StatusCreated, w.Code)
	ana := decode[models.Employee](s.T(), w)

	w = s.do(http.MethodPost, "/transactions", alice, map[string]any{
		"name": "x", "type": "expense", "amount": 10, "date": "2026-03-05", "categoryId": bobs.ID,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("categoryId: category not found", s.errorOf(w))

	w = s.do(http.MethodPost, "/transactions", alice, map[string]any{
		"name": "x", "type": "expense", "amount": 10, "date": "2026-03-05", "employeeId": ana.ID,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("employeeId: person not found", s.errorOf(w))
}

func (s *ServerSuite) TestUpdateTransactionPartially() {
	token, _ := s.signup("a@x.com")
	rent := s.createCategory(token, "Rent", "expense")
	txn := s.createTxn(token, map[string]any{
		"name": "Rent", "type": "expense", "amount": 900, "date": "2026-03-05",
		"description": "march", "categoryId": rent.ID, "isRecurring": true,
	})

	w := s.do(http.MethodPut, "/transactions/"+txn.ID, token, map[string]any{"amount": 950})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	got := decode[models.Transaction](s.T(), w)
	s.True(decimal.NewFromInt(950).Equal(got.Amount))
	s.Equal("Rent", got.Name)
	s.Require().NotNil(got.Description)
	s.Equal("march", *got.Description)
	s.Require().NotNil(got.CategoryID)
	s.True(got.IsRecurring)

	w = s.do(http.MethodPut, "/transactions/"+txn.ID, token, `{"description": null, "categoryId": null}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	raw := decode[map[string]any](s.T(), w)
	s.Nil(raw["description"])
	s.Nil(raw["categoryId"])
	s.Nil(raw["category"])
	s.Equal("Rent", raw["name"])
	s.Equal(true, raw["isRecurring"])

	for _, body := range []string{`{"name": null}`, `{"amount": null}`, `{"name": ""}`, `{"type": "gift"}`, `{"isRecurring": null}`} {
		w = s.do(http.MethodPut, "/transactions/"+txn.ID, token, body)
		s.Equal(http.StatusBadRequest, w.Code, "body %s", body)
	}

	w = s.do(http.MethodPut, "/transactions/"+txn.ID, token, `{"date": "2026-04-01"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("2026-04-01", decode[map[string]any](s.T(), w)["date"])
}

func (s *ServerSuite) TestTransactionOwnership() {
	alice, _ := s.signup("alice@x.com")
	bob, _ := s.signup("bob@x.com")
	txn := s.createTxn(alice, map[string]any{"name": "Salary", "type": "income", "amount": 3000, "date": "2026-03-01"})

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/transactions/"+txn.ID, bob, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, "/transactions/"+txn.ID, bob, map[string]any{"amount": 1}).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/transactions/"+txn.ID, bob, nil).Code)

	w := s.do(http.MethodGet, "/transactions", bob, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Empty(decode[[]models.Transaction](s.T(), w))

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/transactions/"+txn.ID, alice, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/transactions/"+txn.ID, alice, nil).Code)
}

func (s *ServerSuite) TestListTransactionsFilters() {
	token, _ := s.signup("a@x.com")
	food := s.createCategory(token, "Food", "expense")
	s.createTxn(token, map[string]any{"name": "Salary", "type": "income", "amount": 3000, "date": "2026-02-01"})
	s.createTxn(token, map[string]any{"name": "Lunch", "type": "expense", "amount": 25, "date": "2026-02-10", "categoryId": food.ID})
	s.createTxn(token, map[string]any{"name": "Dinner", "type": "expense", "amount": 40, "date": "2026-03-02", "categoryId": food.ID})

	names := func(path string) []string {
		w := s.do(http.MethodGet, path, token, nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var out []string
		for _, t := range decode[[]models.Transaction](s.T(), w) {
			out = append(out, t.Name)
		}
		return out
	}

	s.Equal([]string{"Dinner", "Lunch", "Salary"}, names("/transactions"))
	s.Equal([]string{"Dinner", "Lunch"}, names("/transactions?type=expense"))
	s.Equal([]string{"Lunch", "Salary"}, names("/transactions?start_date=2026-02-01&end_date=2026-02-28"))
	s.Equal([]string{"Dinner", "Lunch"}, names("/transactions?category_id="+food.ID))

	for _, path := range []string{
		"/transactions?type=gift",
		"/transactions?start_date=not-a-date",
		"/transactions?start_date=2026-03-01&end_date=2026-02-01",
	} {
		s.Equal(http.StatusBadRequest, s.do(http.MethodGet, path, token, nil).Code, path)
	}
}

func (s *ServerSuite) TestSummaryCoversCurrentMonth() {
	token, _ := s.signup("a@x.com")
	today := models.DateOf(time.Now().UTC()).String()
	s.createTxn(token, map[string]any{"name": "Salary", "type": "income", "amount": 3000, "date": today})
	s.createTxn(token, map[string]any{"name": "Rent", "type": "expense", "amount": 1200.25, "date": today})
	s.createTxn(token, map[string]any{"name": "Old", "type": "expense", "amount": 99, "date": "2001-01-01"})

	w := s.do(http.MethodGet, "/transactions/summary", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.JSONEq(`{"totalIncome":3000,"totalExpense":1200.25,"balance":1799.75}`, w.Body.String())

	other, _ := s.signup("b@x.com")
	w = s.do(http.MethodGet, "/transactions/summary", other, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"totalIncome":0,"totalExpense":0,"balance":0}`, w.Body.String())
}

func (s *ServerSuite) TestBreakdown() {
	token, _ := s.signup("a@x.com")
	food := s.createCategory(token, "Food", "expense")
	s.createTxn(token, map[string]any{"name": "Salary", "type": "income", "amount": 1000, "date": "2026-02-01"})
	s.createTxn(token, map[string]any{"name": "Lunch", "type": "expense", "amount": 75, "date": "2026-02-10", "categoryId": food.ID})
	s.createTxn(token, map[string]any{"name": "Misc", "type": "expense", "amount": 25, "date": "2026-03-02"})

	w := s.do(http.MethodGet, "/transactions/breakdown?type=expense", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	b := decode[ledger.Breakdown](s.T(), w)

	s.True(decimal.NewFromInt(100).Equal(b.TotalExpense))
	s.True(b.TotalIncome.IsZero())
	s.Require().Len(b.Categories, 2)
	s.Equal("Food", b.Categories[0].Name)
	s.True(decimal.NewFromInt(75).Equal(b.Categories[0].Percentage))
	s.Equal(ledger.UncategorizedName, b.Categories[1].Name)
	s.Nil(b.Categories[1].CategoryID)
	s.Require().Len(b.Months, 2)
	s.Equal("2026-02", b.Months[0].Month)
	s.Equal("2026-03", b.Months[1].Month)
}

func (s *ServerSuite) TestTransactionsRequireToken() {
	for _, path := range []string{"/transactions", "/transactions/summary", "/categories", "/employees"} {
		w := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (s *ServerSuite) TestAmountUpperBound() {
	token, _ := s.signup("a@x.com")
	txn := s.createTxn(token, map[string]any{"name": "Big", "type": "income", "amount": 999999999999.99, "date": "2026-03-05"})

	w := s.do(http.MethodPut, "/transactions/"+txn.ID, token, map[string]any{"amount": 1e12})
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}
