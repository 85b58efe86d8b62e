package api

import (
	"MockECommerce/pkg/logger"
	"MockECommerce/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine(l *logger.Logger, mode string) *gin.Engine {
	gin.SetMode(mode)
	engine := gin.New()
	engine.Use(logger.CorrelationMiddleware(), metrics.GinMiddleware(), l.GinBodyLogger(), gin.Recovery())
	return engine
}
