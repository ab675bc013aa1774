package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/cache"
	"github.com/ink-point/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexPostRows(texts ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "text", "author_id", "created_at", "username", "author_avatar", "group_slug", "comments_count"})
	for i, text := range texts {
		rows.AddRow(i+1, text, 1, time.Now(), "alice", "", nil, 0)
	}
	return rows
}

func TestGetIndexServesStaleCacheUntilCleared(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	store := cache.NewMemoryStoreWithClock(func() time.Time { return now })
	pageCache := cache.NewPageCache(store, 20*time.Second)

	pc := NewPostController(db, pageCache)
	r := gin.New()
	r.GET("/api/posts", pc.GetIndex)

	// Cold cache: the first request hits the database.
	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .* FROM "posts"`).
		WillReturnRows(indexPostRows("first post"))

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w1.Code)
	require.Contains(t, w1.Body.String(), "first post")
	require.NoError(t, mock.ExpectationsWereMet())

	// A post is created meanwhile. Within the TTL the index still serves
	// the cached body: no database expectations are registered, so any
	// query here would fail the test.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
	assert.NotContains(t, w2.Body.String(), "second post")
	require.NoError(t, mock.ExpectationsWereMet())

	// Explicit clear makes the new post visible before the TTL expires.
	require.NoError(t, pageCache.Invalidate(context.Background(), "/api/posts"))

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`(?s)SELECT .* FROM "posts"`).
		WillReturnRows(indexPostRows("second post", "first post"))

	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, w1.Body.String(), w3.Body.String())
	assert.Contains(t, w3.Body.String(), "second post")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIndexExpiryRefreshesCache(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	store := cache.NewMemoryStoreWithClock(func() time.Time { return now })
	pageCache := cache.NewPageCache(store, 20*time.Second)

	pc := NewPostController(db, pageCache)
	r := gin.New()
	r.GET("/api/posts", pc.GetIndex)

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .* FROM "posts"`).
		WillReturnRows(indexPostRows("first post"))

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w1.Code)

	// Past the TTL the cached body is gone and the database is queried
	// again.
	now = now.Add(21 * time.Second)

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`(?s)SELECT .* FROM "posts"`).
		WillReturnRows(indexPostRows("second post", "first post"))

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "second post")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPostsUnknownAuthorIs404(t *testing.T) {
	db, mock := newMockDB(t)
	pc := NewPostController(db, cache.NewPageCache(cache.NewMemoryStore(), 20*time.Second))

	r := gin.New()
	r.GET("/api/users/:username/posts", pc.GetUserPosts)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/ghost/posts", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePostRemovesItsCommentsFirst(t *testing.T) {
	db, mock := newMockDB(t)
	pc := NewPostController(db, cache.NewPageCache(cache.NewMemoryStore(), 20*time.Second))
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}

	r := gin.New()
	r.DELETE("/api/posts/:id", asUser(claims, pc.DeletePost))

	mock.ExpectQuery(`SELECT .* FROM "posts"`).
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "text"}).AddRow(7, 1, "body"))

	// Ordered expectations: the comments go before the post, all in one
	// transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments"`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "activity_logs"`).
		WithArgs(sqlmock.AnyArg(), 1, 7, 0, "post_deleted").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "posts"`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/posts/7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearIndexCacheDropsEveryPage(t *testing.T) {
	db, _ := newMockDB(t)
	store := cache.NewMemoryStore()
	pageCache := cache.NewPageCache(store, 20*time.Second)
	pc := NewPostController(db, pageCache)
	ctx := context.Background()

	require.NoError(t, pageCache.Set(ctx, "/api/posts", []byte("p1")))
	require.NoError(t, pageCache.Set(ctx, "/api/posts?page=2", []byte("p2")))

	admin := &utils.UserClaims{UserID: 1, Username: "ops", Role: "admin"}
	r := gin.New()
	r.POST("/api/admin/cache/clear", asUser(admin, pc.ClearIndexCache))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/cache/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Every page variant of the route is gone, not just the bare URI.
	_, ok, err := pageCache.Get(ctx, "/api/posts")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = pageCache.Get(ctx, "/api/posts?page=2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractHashtags(t *testing.T) {
	assert.Equal(t, []string{"go", "blog"}, extractHashtags("shipping the #go #blog today"))
	assert.Empty(t, extractHashtags("no tags here"))
	assert.Empty(t, extractHashtags("a bare # is not a tag"))
}
