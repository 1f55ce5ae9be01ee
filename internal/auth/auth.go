package auth

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/events"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ctxKey string

const (
	subjectKey    = "subject"
	subjectCtxKey = ctxKey("subject")
)

// Toast is a one-shot notification carried to the next rendered page.
// Title and Message are translation codes or literal text.
type Toast struct {
	Kind    string
	Title   string
	Message string
}

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

func init() {
	gob.Register(Toast{})
}

// SubjectVerifier reports whether a session subject is still valid.
type SubjectVerifier func(ctx context.Context, subject string) bool

// Sessions stores the session subject and pending toasts in a signed cookie
// and announces session changes on the event bus.
type Sessions struct {
	store    *sessions.CookieStore
	name     string
	bus      *events.Bus
	verifier SubjectVerifier
	log      *zap.Logger
}

func NewSessions(cfg config.SessionConfig, bus *events.Bus, log *zap.Logger) *Sessions {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{store: store, name: cfg.Name, bus: bus, log: log}
}

// SetVerifier installs a check run on every request carrying a subject.
func (s *Sessions) SetVerifier(v SubjectVerifier) { s.verifier = v }

func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		// Undecodable cookie; Get still returns a fresh session.
		s.log.Debug("discarding session cookie", zap.Error(err))
	}
	return sess
}

// Establish binds subject to the visitor's session and publishes a
// session-established event tagged with the flow id found in r's context.
func (s *Sessions) Establish(w http.ResponseWriter, r *http.Request, subject string) error {
	sess := s.session(r)
	sess.Values[subjectKey] = subject
	if err := sess.Save(r, w); err != nil {
		return errors.Wrap(err, "save session")
	}
	flowID, _ := events.FlowIDFromContext(r.Context())
	s.bus.Publish(events.TopicSessionEstablished, events.SessionEvent{FlowID: flowID, Subject: subject})
	return nil
}

// End removes the subject from the session. Pending toasts survive.
func (s *Sessions) End(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	subject, _ := sess.Values[subjectKey].(string)
	delete(sess.Values, subjectKey)
	if err := sess.Save(r, w); err != nil {
		return errors.Wrap(err, "save session")
	}
	if subject != "" {
		s.bus.Publish(events.TopicSessionEnded, events.SessionEvent{Subject: subject})
	}
	return nil
}

// Subject returns the subject stored in the session cookie.
func (s *Sessions) Subject(r *http.Request) (string, bool) {
	subject, ok := s.session(r).Values[subjectKey].(string)
	return subject, ok && subject != ""
}

// Flash queues a toast for the next rendered page.
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, t Toast) error {
	sess := s.session(r)
	sess.AddFlash(t)
	return sess.Save(r, w)
}

// Toasts drains the queued toasts. It writes a cookie, so it must run
// before the response header is sent.
func (s *Sessions) Toasts(w http.ResponseWriter, r *http.Request) []Toast {
	sess := s.session(r)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("clear toasts", zap.Error(err))
	}
	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		if t, ok := f.(Toast); ok {
			out = append(out, t)
		}
	}
	return out
}

// Middleware attaches the session subject to the request context.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject, ok := s.Subject(r); ok {
			if s.verifier == nil || s.verifier(r.Context(), subject) {
				r = r.WithContext(WithSubject(r.Context(), subject))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WithSubject stores the session subject in ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

// SubjectFromContext extracts the session subject.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectCtxKey).(string)
	return subject, ok && subject != ""
}
