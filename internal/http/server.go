package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"finance-ledger-go/internal/config"
	"finance-ledger-go/internal/ledger"
)

// Services are the domain components the routes are wired to. A nil
// Seeder disables default-category seeding.
type Services struct {
	Tokens     TokenVerifier
	Users      *ledger.Users
	Categories *ledger.Categories
	People     *ledger.People
	Ledger     *ledger.Ledger
	Seeder     *ledger.Seeder
}

type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	schemas map[string]*gojsonschema.Schema
	Services
}

func NewServer(cfg *config.Config, log *zap.Logger, svc Services) *gin.Engine {
	schemas, err := loadSchemas()
	if err != nil {
		panic(err)
	}
	s := &Server{cfg: cfg, log: log, schemas: schemas, Services: svc}

	r := gin.New()
	r.Use(recovery(log))
	r.Use(cors(cfg))
	r.Use(logging(log))
	r.Use(timeout(cfg.RequestTimeout()))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "route not found"}) })

	// Auth
	r.POST("/auth/signup", s.signup)
	r.POST("/auth/login", s.login)

	// Protected Routes (User Token)
	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(svc.Tokens))
	{
		authorized.POST("/auth/change-password", s.changePassword)
		authorized.GET("/auth/me", s.me)

		authorized.GET("/categories", s.listCategories)
		authorized.POST("/categories", s.createCategory)
		authorized.POST("/categories/defaults", s.seedCategories)
		authorized.GET("/categories/:id", s.getCategory)
		authorized.PUT("/categories/:id", s.updateCategory)
		authorized.DELETE("/categories/:id", s.deleteCategory)

		authorized.GET("/employees", s.listEmployees)
		authorized.POST("/employees", s.createEmployee)
		authorized.GET("/employees/:id", s.getEmployee)
		authorized.PUT("/employees/:id", s.updateEmployee)
		authorized.DELETE("/employees/:id", s.deleteEmployee)

		authorized.GET("/transactions", s.listTransactions)
		authorized.GET("/transactions/summary", s.transactionsSummary)
		authorized.GET("/transactions/breakdown", s.transactionsBreakdown)
		authorized.POST("/transactions", s.createTransaction)
		authorized.GET("/transactions/:id", s.getTransaction)
		authorized.PUT("/transactions/:id", s.updateTransaction)
		authorized.DELETE("/transactions/:id", s.deleteTransaction)

		authorized.POST("/admin/users", s.adminCreateUser)
	}
	return r
}
