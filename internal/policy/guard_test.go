package policy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/events"
	"github.com/diewo77/techfix/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingFlasher struct{ toasts []auth.Toast }

func (f *recordingFlasher) Flash(_ http.ResponseWriter, _ *http.Request, t auth.Toast) error {
	f.toasts = append(f.toasts, t)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func admitted(t *testing.T, g *Guard, subject string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	h := g.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if _, ok := ProfileFromContext(r.Context()); !ok {
			t.Errorf("admitted request must carry the profile")
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if subject != "" {
		req = req.WithContext(auth.WithSubject(req.Context(), subject))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached
}

func TestGuardRedirectsAnonymousToAuth(t *testing.T) {
	g := NewGuard(NewCachedResolver(&staticResolver{}, time.Minute), &recordingFlasher{}, nil)
	rec, reached := admitted(t, g, "")
	if reached {
		t.Fatal("anonymous visitor reached the console")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != AuthEntry {
		t.Fatalf("expected redirect to %s, got %d %s", AuthEntry, rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuardNeverAdmitsSubjectWithoutProfile(t *testing.T) {
	db := setupTestDB(t)
	store := NewProfileStore(db)
	flash := &recordingFlasher{}
	g := NewGuard(NewCachedResolver(store, time.Minute), flash, nil)

	for i := 0; i < 10; i++ {
		u := models.User{Email: "u" + strconv.Itoa(i) + "@techfix.com.br", PasswordHash: "x"}
		if err := db.Create(&u).Error; err != nil {
			t.Fatal(err)
		}
		rec, reached := admitted(t, g, u.ID)
		if reached {
			t.Fatalf("subject %s without profile reached the console", u.ID)
		}
		if rec.Header().Get("Location") != PublicEntry {
			t.Fatalf("expected redirect to public entry, got %s", rec.Header().Get("Location"))
		}
	}
	if len(flash.toasts) != 10 || flash.toasts[0].Message != "guard.forbidden" {
		t.Fatalf("expected a forbidden toast per refusal, got %+v", flash.toasts)
	}
}

func TestGuardAdmitsSubjectWithProfile(t *testing.T) {
	db := setupTestDB(t)
	store := NewProfileStore(db)
	u := models.User{Email: "a@techfix.com.br", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), &models.AdminProfile{UserID: u.ID, Name: "Ana", Email: u.Email}); err != nil {
		t.Fatal(err)
	}
	g := NewGuard(NewCachedResolver(store, time.Minute), &recordingFlasher{}, nil)
	if _, reached := admitted(t, g, u.ID); !reached {
		t.Fatal("admin was refused")
	}
}

func TestGuardLookupFailureRedirectsToPublicEntry(t *testing.T) {
	flash := &recordingFlasher{}
	g := NewGuard(NewCachedResolver(&staticResolver{err: context.DeadlineExceeded}, time.Minute), flash, nil)
	rec, reached := admitted(t, g, "u1")
	if reached || rec.Header().Get("Location") != PublicEntry {
		t.Fatalf("expected refusal, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if len(flash.toasts) != 1 || flash.toasts[0].Kind != auth.ToastError {
		t.Fatalf("unexpected toasts %+v", flash.toasts)
	}
}

func TestGuardWatchInvalidatesOnSessionEnd(t *testing.T) {
	inner := &staticResolver{profiles: map[string]*models.AdminProfile{"u1": {Name: "Ana"}}}
	cached := NewCachedResolver(inner, time.Hour)
	g := NewGuard(cached, &recordingFlasher{}, nil)
	bus := events.New()
	if err := g.Watch(bus); err != nil {
		t.Fatal(err)
	}
	_, _ = cached.Resolve(context.Background(), "u1")
	delete(inner.profiles, "u1")

	bus.Publish(events.TopicSessionEnded, events.SessionEvent{Subject: "u1"})
	if _, reached := admitted(t, g, "u1"); reached {
		t.Fatal("profile removed out-of-band should be noticed after sign-out")
	}
}

func TestProfileStoreOrphans(t *testing.T) {
	db := setupTestDB(t)
	store := NewProfileStore(db)
	ctx := context.Background()
	admin := models.User{Email: "admin@techfix.com.br", PasswordHash: "x"}
	orphan := models.User{Email: "orphan@techfix.com.br", PasswordHash: "x"}
	for _, u := range []*models.User{&admin, &orphan} {
		if err := db.Create(u).Error; err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Create(ctx, &models.AdminProfile{UserID: admin.ID}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Orphans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != orphan.ID {
		t.Fatalf("expected only the orphan, got %+v", got)
	}

	if p, err := store.Resolve(ctx, orphan.ID); err != nil || p != nil {
		t.Fatalf("expected no profile for orphan, got %v %v", p, err)
	}
}
