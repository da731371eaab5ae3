package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assethub/src/auth"
	"assethub/src/models"
	"assethub/src/repositories"
	"assethub/src/testutil"
)

func authedRequest(t *testing.T, tokenAuth *jwtauth.JWTAuth, username string) *http.Request {
	t.Helper()
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{"username": username})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	return req
}

func TestAuthenticator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	location := testutil.SeedLocation(t, db, "Hanoi", "HN")
	admin := testutil.SeedUser(t, db, "admin", models.RoleAdmin, location.ID)
	disabled := testutil.SeedUser(t, db, "leaver", models.RoleStaff, location.ID)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", disabled.ID).Update("disabled", true).Error)

	tokenAuth := auth.TokenAuth("test-secret")
	var seen models.User
	chain := jwtauth.Verifier(tokenAuth)(auth.Authenticator(repositories.NewUserRepository(db))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.CurrentUser(r.Context())
			require.NoError(t, err)
			seen = user
			w.WriteHeader(http.StatusOK)
		})))

	t.Run("valid token resolves the user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, authedRequest(t, tokenAuth, "admin"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, admin.ID, seen.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, authedRequest(t, tokenAuth, "ghost"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("disabled user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, authedRequest(t, tokenAuth, "leaver"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := auth.RequireAdmin(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := auth.WithCurrentUser(req.Context(), models.User{Role: models.RoleAdmin})
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("staff is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := auth.WithCurrentUser(req.Context(), models.User{Role: models.RoleStaff})
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
