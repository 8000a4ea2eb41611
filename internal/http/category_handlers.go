package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-ledger-go/internal/ledger"
	"finance-ledger-go/internal/models"
)

func kindQuery(c *gin.Context) (models.Kind, bool) {
	kind, err := models.ParseKind(c.Query("type"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return kind, true
}

// GET /categories seeds the starter set for users who have none.
func (s *Server) listCategories(c *gin.Context) {
	kind, ok := kindQuery(c)
	if !ok {
		return
	}
	userID := currentUser(c)
	if s.Seeder != nil && s.cfg.SeedDefaults {
		if n, err := s.Seeder.EnsureDefaults(c.Request.Context(), userID); err != nil {
			s.log.Warn("seeding default categories failed", zap.String("user_id", userID), zap.Error(err))
		} else if n > 0 {
			s.log.Info("seeded default categories", zap.String("user_id", userID), zap.Int("count", n))
		}
	}
	categories, err := s.Categories.List(c.Request.Context(), userID, kind)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// POST /categories/defaults
func (s *Server) seedCategories(c *gin.Context) {
	if s.Seeder == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}
	userID := currentUser(c)
	if _, err := s.Seeder.EnsureDefaults(c.Request.Context(), userID); err != nil {
		s.fail(c, err)
		return
	}
	categories, err := s.Categories.List(c.Request.Context(), userID, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c *gin.Context) {
	category, err := s.Categories.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) createCategory(c *gin.Context) {
	var input ledger.CategoryInput
	if !s.bind(c, "category_create", &input) {
		return
	}
	category, err := s.Categories.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var patch ledger.CategoryPatch
	if !s.bind(c, "category_update", &patch) {
		return
	}
	category, err := s.Categories.Update(c.Request.Context(), currentUser(c), c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.Categories.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
