package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/analytics"
)

func (h *Handler) TrendsHandler(c *gin.Context) {
	grouping, err := analytics.ParseGrouping(c.Query("grouping"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Analytics.Trends(c.Request.Context(), analytics.TrendParams{
		Grouping: grouping,
		Days:     intQuery(c, "days", 30),
	})
	if err != nil {
		log.Printf("Error getting trends: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) TopPostsByTimeHandler(c *gin.Context) {
	window, err := analytics.ParseWindow(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	metric, err := analytics.ParseMetric(c.Query("metric"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Analytics.TopPostsByTime(c.Request.Context(), analytics.TopPostsParams{
		Window: window,
		Metric: metric,
		Limit:  intQuery(c, "limit", 5),
	})
	if err != nil {
		log.Printf("Error getting top posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) KeywordFrequencyHandler(c *gin.Context) {
	report, err := h.Analytics.KeywordFrequency(c.Request.Context(), analytics.KeywordParams{
		Limit:     intQuery(c, "limit", 20),
		MinLength: intQuery(c, "min_length", 3),
	})
	if err != nil {
		log.Printf("Error getting keyword frequency: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) EngagementRatioHandler(c *gin.Context) {
	report, err := h.Analytics.EngagementRatios(c.Request.Context(), intQuery(c, "limit", 20))
	if err != nil {
		log.Printf("Error getting engagement ratios: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
