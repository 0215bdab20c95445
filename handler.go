package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds the session and its collaborators for all route handlers.
// mu serializes user actions so each one is applied atomically.
type Handler struct {
	mu        sync.Mutex
	sess      *session
	resolver  foodResolver
	aiTimeout time.Duration
}

func newHandler(sess *session, resolver foodResolver, aiTimeout time.Duration) *Handler {
	return &Handler{sess: sess, resolver: resolver, aiTimeout: aiTimeout}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// hosted Postgres closes idle connections after a few minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/meals", h.getMeals)
	api.POST("/meals", h.addMeal)
	api.PATCH("/meals/:id", h.adjustMeal)
	api.DELETE("/meals/:id", h.deleteMeal)
	api.DELETE("/meals", h.clearMeals)
	api.GET("/library", h.getLibrary)
	api.POST("/library", h.addLibraryItem)
	api.POST("/library/lookup", h.lookupFood)
	api.GET("/daily-records", h.getDailyRecords)
	api.POST("/daily-records", h.saveDailyRecord)
	api.DELETE("/daily-records/:date", h.deleteDailyRecord)
	api.POST("/daily-records/:date/load", h.loadDailyRecord)
	api.GET("/trend", h.getTrend)
	api.GET("/projection", h.getProjection)
}
