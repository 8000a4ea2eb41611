package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-ledger-go/internal/ledger"
)

// POST /auth/signup
func (s *Server) signup(c *gin.Context) {
	var input ledger.Registration
	if !s.bind(c, "signup", &input) {
		return
	}
	session, err := s.Users.Signup(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// POST /auth/login
func (s *Server) login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.bind(c, "login", &input) {
		return
	}
	session, err := s.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// POST /auth/change-password
func (s *Server) changePassword(c *gin.Context) {
	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if !s.bind(c, "change_password", &input) {
		return
	}
	if err := s.Users.ChangePassword(c.Request.Context(), currentUser(c), input.NewPassword); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// GET /auth/me
func (s *Server) me(c *gin.Context) {
	user, err := s.Users.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// POST /admin/users creates an account without logging into it.
func (s *Server) adminCreateUser(c *gin.Context) {
	var input ledger.Registration
	if !s.bind(c, "signup", &input) {
		return
	}
	user, err := s.Users.Register(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}
