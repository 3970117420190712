// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marberj/toktrack/internal/analytics"
	"github.com/marberj/toktrack/internal/database"
	"github.com/marberj/toktrack/internal/helpers"
)

func (h *Handler) PostsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := h.resolveUser(c)
	if !ok {
		return
	}

	limit := intQuery(c, "limit", 50)
	if limit > 200 {
		limit = 200
	}
	offset := intQuery(c, "offset", 0)

	posts, err := h.DB.ListPosts(ctx, database.ListPostsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, err := h.DB.CountPosts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type PostWithURL struct {
		analytics.PostView
		URL string `json:"url"`
	}

	postsWithURL := make([]PostWithURL, 0, len(posts))
	for _, post := range posts {
		postsWithURL = append(postsWithURL, PostWithURL{
			PostView: analytics.NewPostView(post),
			URL:      helpers.PostURL(user.Username, post.PostID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"limit":   limit,
		"offset":  offset,
		"results": postsWithURL,
	})
}

func (h *Handler) PostStatsHandler(c *gin.Context) {
	statsData, err := h.Analytics.PostStats(c.Request.Context())
	if err != nil {
		log.Printf("Error getting post stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statsData)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
