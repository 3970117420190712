// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/exports"
)

func (h *Handler) ExportPostsCSVHandler(c *gin.Context) {
	filename := fmt.Sprintf("posts_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	if err := exports.WritePostsCSV(c.Request.Context(), h.DB, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

func (h *Handler) ExportFollowersCSVHandler(c *gin.Context) {
	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("followers_%s_%s.csv", user.Username, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	if err := exports.WriteFollowersCSV(c.Request.Context(), h.DB, user.ID, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}
