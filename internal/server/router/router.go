package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanvirhs/resto/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(menu *handlers.MenuHandler, orders *handlers.OrderHandler, sales *handlers.SalesHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/menu", menu.List)
	r.POST("/menu/items", menu.Add)
	r.PATCH("/menu/items/:name", menu.Update)

	r.POST("/orders", orders.Place)
	r.POST("/orders/quote", orders.Quote)

	r.GET("/sales", sales.History)
	r.GET("/reports/daily", sales.DailyReport)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
