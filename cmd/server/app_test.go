package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/mailer"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/policy"
	"github.com/diewo77/techfix/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testConfig() config.Config {
	return config.Config{
		Session: config.SessionConfig{Name: "techfix_session", Secret: "0123456789abcdef", MaxAge: 3600},
		Auth: config.AuthConfig{
			TokenSecret: "test-secret",
			TokenTTL:    time.Hour,
			BaseURL:     "http://techfix.test",
			MinPassword: 6,
		},
		Admin: config.AdminConfig{ProfileCacheTTL: time.Minute},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Cleanup(view.ResetForTests)
	log := zap.NewNop()
	app, err := NewApp(testConfig(), setupTestDB(t), mailer.New(config.SMTPConfig{}, log), log)
	require.NoError(t, err)
	return app
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		path     string
		status   int
		location string
	}{
		{"/", http.StatusOK, ""},
		{"/healthz", http.StatusOK, ""},
		{"/api/products", http.StatusOK, ""},
		{"/api/services", http.StatusOK, ""},
		{"/static/app.css", http.StatusOK, ""},
		{"/auth", http.StatusOK, ""},
		{"/admin", http.StatusSeeOther, "/auth"},
		{"/admin/products", http.StatusSeeOther, "/auth"},
		{"/admin/services.csv", http.StatusSeeOther, "/auth"},
		{"/nope", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.path)
		if tc.location != "" {
			assert.Equal(t, tc.location, rec.Header().Get("Location"), tc.path)
		}
	}
}

func TestStorefrontFallsBackOnEmptyStore(t *testing.T) {
	app := newTestApp(t)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fallback":true`)
}

func TestGrantAdmin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	user := models.User{Email: "orfao@techfix.com.br", Name: "Bia", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	store := policy.NewProfileStore(db)
	orphans, err := store.Orphans(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)

	require.NoError(t, grant(ctx, db, " Orfao@TechFix.com.br", "", zap.NewNop()))
	require.NoError(t, grant(ctx, db, "orfao@techfix.com.br", "Outro", zap.NewNop()))

	profile, err := store.Resolve(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Bia", profile.Name)

	orphans, err = store.Orphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	assert.Error(t, grant(ctx, db, "ninguem@techfix.com.br", "", zap.NewNop()))
}
