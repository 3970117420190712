package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) WorkerStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active": h.Worker.IsActive(),
	})
}

func (h *Handler) TriggerSnapshotHandler(c *gin.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in manual snapshot trigger: %v", r)
			}
		}()
		h.Worker.SnapshotAll()
	}()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Snapshot triggered successfully",
	})
}
