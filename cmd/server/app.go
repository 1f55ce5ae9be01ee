package main

import (
	"net/http"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/authflow"
	"github.com/diewo77/techfix/internal/catalog"
	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/events"
	"github.com/diewo77/techfix/internal/handlers"
	"github.com/diewo77/techfix/internal/identity"
	"github.com/diewo77/techfix/internal/mailer"
	"github.com/diewo77/techfix/internal/middleware"
	"github.com/diewo77/techfix/internal/models"
	"github.com/diewo77/techfix/internal/policy"
	"github.com/diewo77/techfix/internal/storefront"
	"github.com/diewo77/techfix/internal/view"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	handler http.Handler
	db      *gorm.DB
	log     *zap.Logger

	bus      *events.Bus
	sessions *auth.Sessions
	guard    *policy.Guard
	profiles *policy.ProfileStore

	storefront *handlers.StorefrontHandler
	auth       *handlers.AuthHandler
	products   *handlers.AdminConsole[models.Product]
	services   *handlers.AdminConsole[models.Service]
}

// NewApp wires the stores, session layer and handlers over conn.
func NewApp(cfg config.Config, conn *gorm.DB, mail mailer.Mailer, log *zap.Logger) (*App, error) {
	bus := events.New()
	broker, err := authflow.NewBroker(bus)
	if err != nil {
		return nil, err
	}

	sessions := auth.NewSessions(cfg.Session, bus, log)
	ids := identity.NewService(conn, mail, identity.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL), identity.Options{
		RequireConfirmation: cfg.Auth.RequireConfirmation,
		BaseURL:             cfg.Auth.BaseURL,
		MinPassword:         cfg.Auth.MinPassword,
	}, log)
	sessions.SetVerifier(ids.Exists)

	profiles := policy.NewProfileStore(conn)
	guard := policy.NewGuard(policy.NewCachedResolver(profiles, cfg.Admin.ProfileCacheTTL), sessions, log)
	if err := guard.Watch(bus); err != nil {
		return nil, err
	}
	if err := audit(bus, log); err != nil {
		return nil, err
	}

	view.SetLangResolver(middleware.LangFrom)
	view.SetToastResolver(sessions.Toasts)

	productStore := catalog.NewProducts(conn)
	serviceStore := catalog.NewServices(conn)

	app := &App{
		mux:        http.NewServeMux(),
		db:         conn,
		log:        log,
		bus:        bus,
		sessions:   sessions,
		guard:      guard,
		profiles:   profiles,
		storefront: handlers.NewStorefrontHandler(storefront.NewCatalog(productStore, serviceStore, log), storefront.TechFix, log),
		auth:       handlers.NewAuthHandler(ids, sessions, broker, profiles, log),
		products:   handlers.NewProductConsole(productStore, sessions, log),
		services:   handlers.NewServiceConsole(serviceStore, sessions, log),
	}
	app.setupRoutes()

	var csrfKey []byte
	if cfg.CSRF.Enabled {
		csrfKey = cfg.CSRF.AuthKey(cfg.Session.Secret)
	}
	var h http.Handler = app.mux
	h = middleware.CSRF(csrfKey, cfg.Session.Secure, log)(h)
	h = sessions.Middleware(h)
	h = middleware.Prefs(h)
	h = middleware.Logging(log)(h)
	h = middleware.Recover(log)(h)
	app.handler = h
	return app, nil
}

// audit records every session change.
func audit(bus *events.Bus, log *zap.Logger) error {
	for _, topic := range []string{events.TopicSessionEstablished, events.TopicSessionEnded} {
		err := bus.Subscribe(topic, func(ev events.SessionEvent) {
			log.Info("session", zap.String("event", topic), zap.String("user_id", ev.Subject), zap.String("flow_id", ev.FlowID))
		})
		if err != nil {
			return errors.Wrap(err, "audit")
		}
	}
	return nil
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// Public
	sf := a.storefront
	a.mux.HandleFunc("GET /{$}", sf.Index)
	a.mux.HandleFunc("GET /api/products", sf.Products)
	a.mux.HandleFunc("GET /api/services", sf.Services)
	a.mux.Handle("GET /healthz", handlers.Health(a.db))
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", view.Static()))

	// Auth
	ah := a.auth
	a.mux.HandleFunc("GET /auth", ah.Page)
	a.mux.HandleFunc("POST /auth/signin", ah.SignIn)
	a.mux.HandleFunc("POST /auth/signup", ah.SignUp)
	a.mux.HandleFunc("POST /auth/reset", ah.RequestReset)
	a.mux.HandleFunc("GET /auth/confirm", ah.Confirm)
	a.mux.HandleFunc("GET /auth/recover", ah.RecoverPage)
	a.mux.HandleFunc("POST /auth/recover", ah.Recover)
	a.mux.HandleFunc("POST /auth/signout", ah.SignOut)
	a.mux.HandleFunc("POST /admin/logout", ah.SignOut)

	// Admin console
	a.mux.Handle("GET /admin", a.guard.RequireAdmin(http.RedirectHandler("/admin/products", http.StatusSeeOther)))
	a.products.Register(a.mux, a.guard.RequireAdmin)
	a.services.Register(a.mux, a.guard.RequireAdmin)
}
