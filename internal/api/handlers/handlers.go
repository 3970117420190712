package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/analytics"
	"github.com/marberj/toktrack/internal/config"
	"github.com/marberj/toktrack/internal/database"
	"github.com/marberj/toktrack/internal/importer"
	"github.com/marberj/toktrack/internal/worker"
)

type Handler struct {
	DB        *database.Queries
	DBConn    *sql.DB
	Config    *config.AppConfig
	Importer  *importer.Importer
	Analytics *analytics.Service
	Worker    *worker.Worker
}

func NewHandler(db *database.Queries, dbConn *sql.DB, cfg *config.AppConfig, imp *importer.Importer, svc *analytics.Service, w *worker.Worker) *Handler {
	return &Handler{
		DB:        db,
		DBConn:    dbConn,
		Config:    cfg,
		Importer:  imp,
		Analytics: svc,
		Worker:    w,
	}
}

// resolveUser picks the user named by the "user" query param, falling
// back to the first registered user. Writes the error response itself
// when no user can be found.
func (h *Handler) resolveUser(c *gin.Context) (database.User, bool) {
	ctx := c.Request.Context()

	if username := c.Query("user"); username != "" {
		user, err := h.Importer.ResolveUser(ctx, username)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return database.User{}, false
		}
		return user, true
	}

	users, err := h.DB.GetAllUsers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return database.User{}, false
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No user found"})
		return database.User{}, false
	}
	return users[0], true
}
