package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marberj/toktrack/internal/analytics"
)

func (h *Handler) FollowerStatsHandler(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	report, err := h.Analytics.FollowerStats(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("Error getting follower stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) MutualsHandler(c *gin.Context) {
	h.relationList(c, h.Analytics.Mutuals)
}

func (h *Handler) FollowersOnlyHandler(c *gin.Context) {
	h.relationList(c, h.Analytics.FollowersOnly)
}

func (h *Handler) FollowingOnlyHandler(c *gin.Context) {
	h.relationList(c, h.Analytics.FollowingOnly)
}

func (h *Handler) relationList(c *gin.Context, load func(context.Context, uuid.UUID, int, int) (*analytics.RelationPage, error)) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	page, err := load(c.Request.Context(), user.ID, intQuery(c, "page", 1), intQuery(c, "page_size", 100))
	if err != nil {
		log.Printf("Error comparing follower sets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) FollowerGrowthHandler(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	report, err := h.Analytics.Growth(c.Request.Context(), user.ID, c.Query("period"))
	if err != nil {
		log.Printf("Error getting follower growth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
