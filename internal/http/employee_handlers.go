package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-ledger-go/internal/ledger"
)

func (s *Server) listEmployees(c *gin.Context) {
	people, err := s.People.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

func (s *Server) getEmployee(c *gin.Context) {
	person, err := s.People.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) createEmployee(c *gin.Context) {
	var input ledger.PersonInput
	if !s.bind(c, "employee_create", &input) {
		return
	}
	person, err := s.People.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (s *Server) updateEmployee(c *gin.Context) {
	var patch ledger.PersonPatch
	if !s.bind(c, "employee_update", &patch) {
		return
	}
	person, err := s.People.Update(c.Request.Context(), currentUser(c), c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) deleteEmployee(c *gin.Context) {
	if err := s.People.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "person deleted"})
}
