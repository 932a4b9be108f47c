package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log.With("handler", "AnalyticsHandler"),
		analyticsService: analyticsService,
	}
}

func (ah *AnalyticsHandler) ListHouseholds(c *gin.Context) {
	households, err := ah.analyticsService.ListHouseholds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, households)
}

func (ah *AnalyticsHandler) ListMembers(c *gin.Context) {
	members, err := ah.analyticsService.ListMembers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, members)
}

func (ah *AnalyticsHandler) GetKPIs(c *gin.Context) {
	kpis, err := ah.analyticsService.GetKPIs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (ah *AnalyticsHandler) TitheBreakdown(c *gin.Context) {
	breakdown, err := ah.analyticsService.TitheBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (ah *AnalyticsHandler) Dashboard(c *gin.Context) {
	charts, err := ah.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, charts)
}
