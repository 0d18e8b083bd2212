// Package server implements the backend API: bearer-token auth, per-user
// income/expense/inventory records, and the aggregate analytics the
// dashboard reads. Responses all use the {success, data, message, error}
// envelope.
package server

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mining-finance-dashboard/internal/config"
)

// Server wires the database, the optional Redis cache, and the token
// manager behind the gin router.
type Server struct {
	db     *sql.DB
	cache  *redis.Client
	tokens *TokenManager
	cfg    config.Config
	otps   *otpStore
}

// New builds a server. cache may be nil; the OTP store then falls back to
// process memory.
func New(cfg config.Config, db *sql.DB, cache *redis.Client) *Server {
	return &Server{
		db:     db,
		cache:  cache,
		tokens: NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		cfg:    cfg,
		otps:   newOTPStore(cache, cfg.OTPTTL),
	}
}

// Router builds the gin engine with CORS and all /api/v1 routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/signup", s.signup)
	auth.POST("/forgot-password", s.forgotPassword)
	auth.POST("/reset-password", s.resetPassword)

	private := v1.Group("")
	private.Use(s.requireAuth())

	private.GET("/profile", s.getProfile)
	private.PUT("/profile", s.updateProfile)

	private.GET("/income", s.listIncomes)
	private.GET("/income/range", s.listIncomesByRange)
	private.GET("/income/:id", s.getIncome)
	private.POST("/income", s.createIncome)
	private.PUT("/income/:id", s.updateIncome)
	private.DELETE("/income/:id", s.deleteIncome)

	private.GET("/expense", s.listExpenses)
	private.GET("/expense/range", s.listExpensesByRange)
	private.GET("/expense/breakdown", s.expenseBreakdown)
	private.GET("/expense/:id", s.getExpense)
	private.POST("/expense", s.createExpense)
	private.PUT("/expense/:id", s.updateExpense)
	private.DELETE("/expense/:id", s.deleteExpense)

	private.GET("/inventory", s.listInventory)
	private.GET("/inventory/low-stock", s.listLowStock)
	private.GET("/inventory/:id", s.getInventoryItem)
	private.POST("/inventory", s.createInventoryItem)
	private.PUT("/inventory/:id", s.updateInventoryItem)
	private.PATCH("/inventory/:id/quantity", s.patchInventoryQuantity)
	private.DELETE("/inventory/:id", s.deleteInventoryItem)

	private.GET("/analytics/summary", s.financialSummary)
	private.GET("/analytics/monthly", s.monthlyData)
	private.GET("/analytics/expense-breakdown", s.expenseBreakdown)

	return r
}

// healthCheck reports database reachability.
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.Ping(); err != nil {
		c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "healthy", "service": "mining-finance-dashboard"})
}
