package policy

import (
	"context"
	"net/http"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/events"
	"github.com/diewo77/techfix/internal/models"
	"go.uber.org/zap"
)

const (
	AuthEntry   = "/auth"
	PublicEntry = "/"
)

// Flasher queues toasts for the next page.
type Flasher interface {
	Flash(w http.ResponseWriter, r *http.Request, t auth.Toast) error
}

// Guard admits a visitor to the admin console only when the session
// subject has an admin profile.
type Guard struct {
	resolver *CachedResolver
	flash    Flasher
	log      *zap.Logger
}

func NewGuard(resolver *CachedResolver, flash Flasher, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{resolver: resolver, flash: flash, log: log}
}

// Watch drops cached profiles of subjects whose session ended.
func (g *Guard) Watch(bus *events.Bus) error {
	return bus.Subscribe(events.TopicSessionEnded, func(ev events.SessionEvent) {
		g.resolver.Invalidate(ev.Subject)
	})
}

// RequireAdmin redirects anonymous visitors to the auth entry and
// authenticated visitors without a profile to the public entry with a
// forbidden toast.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := auth.SubjectFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, AuthEntry, http.StatusSeeOther)
			return
		}
		profile, err := g.resolver.Resolve(r.Context(), subject)
		if err != nil {
			g.log.Error("admin profile lookup failed", zap.String("user_id", subject), zap.Error(err))
			g.deny(w, r, auth.Toast{Kind: auth.ToastError, Title: "toast.error", Message: "guard.lookup_failed"})
			return
		}
		if profile == nil {
			g.log.Warn("subject without admin profile refused", zap.String("user_id", subject))
			g.deny(w, r, auth.Toast{Kind: auth.ToastError, Title: "guard.forbidden_title", Message: "guard.forbidden"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
	})
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, t auth.Toast) {
	if err := g.flash.Flash(w, r, t); err != nil {
		g.log.Warn("flash", zap.Error(err))
	}
	http.Redirect(w, r, PublicEntry, http.StatusSeeOther)
}

type profileKey struct{}

// WithProfile stores the admitted admin profile in ctx.
func WithProfile(ctx context.Context, p *models.AdminProfile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFromContext returns the profile admitted by RequireAdmin.
func ProfileFromContext(ctx context.Context) (*models.AdminProfile, bool) {
	p, ok := ctx.Value(profileKey{}).(*models.AdminProfile)
	return p, ok && p != nil
}
