package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marberj/toktrack/internal/analytics"
	"github.com/marberj/toktrack/internal/database"
)

func newAnalyticsHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Handler{Analytics: analytics.NewService(database.New(db))}, mock
}

func getRequest(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestTrendsHandler_GroupingParam(t *testing.T) {
	h, mock := newAnalyticsHandler(t)
	mock.ExpectQuery("date_trunc").
		WithArgs("week", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"period", "post_count", "total_likes", "total_views", "avg_likes", "avg_views",
		}))

	c, w := getRequest("/api/posts/trends?grouping=week")
	h.TrendsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrendsHandler_InvalidGrouping(t *testing.T) {
	h, mock := newAnalyticsHandler(t)

	c, w := getRequest("/api/posts/trends?grouping=hour")
	h.TrendsHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopPostsHandler_WindowParam(t *testing.T) {
	h, mock := newAnalyticsHandler(t)
	mock.ExpectQuery("SELECT DISTINCT date_trunc").
		WithArgs("month", int32(10)).
		WillReturnRows(sqlmock.NewRows([]string{"period"}))

	c, w := getRequest("/api/posts/top_posts_by_time?window=monthly")
	h.TopPostsByTimeHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopPostsHandler_InvalidWindow(t *testing.T) {
	h, mock := newAnalyticsHandler(t)

	c, w := getRequest("/api/posts/top_posts_by_time?window=yearly")
	h.TopPostsByTimeHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
