package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/ink-point/api-go/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowSelfFollowRejectedWithoutInsert(t *testing.T) {
	db, mock := newMockDB(t)

	err := createFollow(db, 5, 5)

	assert.ErrorIs(t, err, ErrSelfFollow)
	// Rejected before the database is touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollowDuplicateMapsToTaggedError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 1, 2).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := createFollow(db, 1, 2)

	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollowCheckViolationMapsToSelfFollow(t *testing.T) {
	// A racing self-follow that slips past the application check still
	// fails at the database and maps to the same tagged error.
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 1, 2).
		WillReturnError(&pgconn.PgError{Code: pgCheckViolation})

	err := createFollow(db, 1, 2)

	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollowInsertsEdge(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := createFollow(db, 1, 2)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFollowMissingEdgeIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM "follows"`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := deleteFollow(db, 1, 2)

	assert.NoError(t, err)
	assert.Zero(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func followRouter(t *testing.T, claims *utils.UserClaims) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	fc := NewFollowController(db)

	r := gin.New()
	r.POST("/api/users/:username/follow", asUser(claims, fc.FollowAuthor))
	r.POST("/api/users/:username/unfollow", asUser(claims, fc.UnfollowAuthor))

	return r, mock
}

func TestFollowAuthorSelfFollowSilentlyRedirects(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/alice/follow", nil)
	r.ServeHTTP(w, req)

	// No visible error, just the profile redirect; and no insert happened.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/alice", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowAuthorDuplicateSilentlyRedirects(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 1, 2).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/bob/follow", nil)
	r.ServeHTTP(w, req)

	// The edge set is unchanged and the caller sees the same redirect
	// a successful follow would produce.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/bob", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowAuthorCreatesEdgeAndRedirects(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "activity_logs"`).
		WithArgs(sqlmock.AnyArg(), 1, 0, 0, "user_followed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/bob/follow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/bob", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowAuthorUnknownUserIs404(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/ghost/follow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowAuthorIsIdempotent(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	// No edge to delete: zero rows affected, no error surfaced, and no
	// activity row written for a no-op.
	mock.ExpectExec(`DELETE FROM "follows"`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/bob/unfollow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/bob", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfollowAuthorRecordsActivityWhenEdgeRemoved(t *testing.T) {
	claims := &utils.UserClaims{UserID: 1, Username: "alice"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "bob"))
	mock.ExpectExec(`DELETE FROM "follows"`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "activity_logs"`).
		WithArgs(sqlmock.AnyArg(), 1, 0, 0, "user_unfollowed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/bob/unfollow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/bob", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRouteParamMatchesProfileRedirect(t *testing.T) {
	// The redirect target is derived from the same path parameter the
	// lookup used, so a successful and a swallowed follow are
	// indistinguishable to the client.
	claims := &utils.UserClaims{UserID: 3, Username: "carol"}
	r, mock := followRouter(t, claims)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("dave").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(4, "dave"))
	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 3, 4).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodPost, "/api/users/dave/follow", nil))

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WithArgs("dave").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(4, "dave"))
	mock.ExpectQuery(`INSERT INTO "follows"`).
		WithArgs(sqlmock.AnyArg(), 3, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO "activity_logs"`).
		WithArgs(sqlmock.AnyArg(), 3, 0, 0, "user_followed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/api/users/dave/follow", nil))

	assert.Equal(t, w1.Code, w2.Code)
	assert.Equal(t, w1.Header().Get("Location"), w2.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}
