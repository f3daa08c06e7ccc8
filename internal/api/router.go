package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/config"
	"github.com/jengzang/habitminer/internal/handler"
	"github.com/jengzang/habitminer/internal/middleware"
	"github.com/jengzang/habitminer/internal/repository"
	"github.com/jengzang/habitminer/internal/service"
)

// SetupRouter wires repositories, services and handlers and registers routes
func SetupRouter(cfg *config.Config, db *sql.DB, namer habit.Namer, logger *zap.Logger) (*gin.Engine, error) {
	loc, err := cfg.Mining.Location()
	if err != nil {
		return nil, err
	}

	habitRepo := repository.NewHabitRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	miner := habit.NewMiner(cfg.Mining.Engine(), namer, habitRepo, logger.Named("miner"))
	habitService := service.NewHabitService(habitRepo, visitRepo, miner, service.LearnConfig{
		LookbackDays: cfg.Mining.LookbackDays,
		MaxSamples:   cfg.Mining.MaxSamples,
		Location:     loc,
	}, logger)
	visitService := service.NewVisitService(visitRepo)

	habitHandler := handler.NewHabitHandler(habitService)
	visitHandler := handler.NewVisitHandler(visitService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger.Named("http")))

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Habit miner API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)))
	api.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))
	{
		visits := api.Group("/visits")
		{
			visits.POST("", visitHandler.RecordVisits)
			visits.GET("", visitHandler.ListVisits)
		}

		habits := api.Group("/habits")
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("/learn", habitHandler.Learn)
		}
	}

	return r, nil
}
