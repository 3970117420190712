package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/config"
)

func (h *Handler) CreateUserHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name, id, err := config.CreateUserFromForm(h.DB, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "username": name})
}

func (h *Handler) UsersHandler(c *gin.Context) {
	users, err := h.DB.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"username":   u.Username,
			"created_at": u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}
