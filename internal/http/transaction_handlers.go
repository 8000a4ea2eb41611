package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finance-ledger-go/internal/ledger"
	"finance-ledger-go/internal/models"
)

// transactionFilter reads type, start_date, end_date, category_id and
// employee_id from the query string.
func transactionFilter(c *gin.Context) (ledger.TransactionFilter, bool) {
	var f ledger.TransactionFilter
	kind, ok := kindQuery(c)
	if !ok {
		return f, false
	}
	f.Kind = kind
	for param, dst := range map[string]*models.Date{"start_date": &f.From, "end_date": &f.To} {
		raw := strings.TrimSpace(c.Query(param))
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": param + ": " + err.Error()})
			return f, false
		}
		*dst = d
	}
	f.CategoryID = strings.TrimSpace(c.Query("category_id"))
	f.EmployeeID = strings.TrimSpace(c.Query("employee_id"))
	return f, true
}

func (s *Server) listTransactions(c *gin.Context) {
	f, ok := transactionFilter(c)
	if !ok {
		return
	}
	txns, err := s.Ledger.List(c.Request.Context(), currentUser(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// GET /transactions/summary
func (s *Server) transactionsSummary(c *gin.Context) {
	totals, err := s.Ledger.Summary(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// GET /transactions/breakdown
func (s *Server) transactionsBreakdown(c *gin.Context) {
	f, ok := transactionFilter(c)
	if !ok {
		return
	}
	b, err := s.Ledger.Breakdown(c.Request.Context(), currentUser(c), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (s *Server) getTransaction(c *gin.Context) {
	txn, err := s.Ledger.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (s *Server) createTransaction(c *gin.Context) {
	var input ledger.TransactionInput
	if !s.bind(c, "transaction_create", &input) {
		return
	}
	txn, err := s.Ledger.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (s *Server) updateTransaction(c *gin.Context) {
	var patch ledger.TransactionPatch
	if !s.bind(c, "transaction_update", &patch) {
		return
	}
	txn, err := s.Ledger.Update(c.Request.Context(), currentUser(c), c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	if err := s.Ledger.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
