package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/export"
	"github.com/marberj/toktrack/internal/importer"
)

// ImportHandler ingests any supported export shape. Query flags:
// user, policy, dry_run, clear_existing, posts_only, followers_only,
// snapshot_date (YYYY-MM-DD).
func (h *Handler) ImportHandler(c *gin.Context) {
	h.runImport(c, "")
}

// ImportPostsHandler accepts only the metadata-wrapped shape and
// imports posts alone.
func (h *Handler) ImportPostsHandler(c *gin.Context) {
	h.runImport(c, export.FormatMetadata)
}

func (h *Handler) runImport(c *gin.Context, wantFormat export.Format) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body: " + err.Error()})
		return
	}

	parsed, err := export.Detect(raw)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if wantFormat != "" && parsed.Format != wantFormat {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unexpected export shape: " + string(parsed.Format)})
		return
	}

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	policy, err := importer.ParsePolicy(c.Query("policy"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := importer.Options{
		UserID:        user.ID,
		Policy:        policy,
		DryRun:        c.Query("dry_run") == "true",
		PostsOnly:     c.Query("posts_only") == "true" || wantFormat == export.FormatMetadata,
		FollowersOnly: c.Query("followers_only") == "true",
	}
	if c.Query("clear_existing") == "true" {
		opts.Policy = importer.PolicyClearThenImport
	}
	if raw := c.Query("snapshot_date"); raw != "" {
		parsedDate, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot_date: " + raw})
			return
		}
		opts.SnapshotDate = parsedDate
	}

	release, ok := h.Worker.Acquire()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Another import or snapshot run is in progress"})
		return
	}
	defer release()

	summary, err := h.Importer.Run(c.Request.Context(), parsed, opts)
	if err != nil {
		log.Printf("Import failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
