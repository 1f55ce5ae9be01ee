package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/techfix/internal/config"
	"github.com/diewo77/techfix/internal/events"
)

func newSessions(t *testing.T) (*Sessions, *events.Bus) {
	t.Helper()
	bus := events.New()
	return NewSessions(config.SessionConfig{Name: "test_session", Secret: "0123456789abcdef", MaxAge: 3600}, bus, nil), bus
}

// lastCookie returns the final Set-Cookie value for name, which is what a
// browser keeps.
func lastCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	if found == nil {
		t.Fatalf("cookie %s not set", name)
	}
	return found
}

func TestEstablishPublishesAndPersistsSubject(t *testing.T) {
	s, bus := newSessions(t)
	var got []events.SessionEvent
	if err := bus.Subscribe(events.TopicSessionEstablished, func(ev events.SessionEvent) { got = append(got, ev) }); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req = req.WithContext(events.WithFlowID(req.Context(), "flow-1"))
	rec := httptest.NewRecorder()
	if err := s.Establish(rec, req, "user-1"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if len(got) != 1 || got[0].FlowID != "flow-1" || got[0].Subject != "user-1" {
		t.Fatalf("unexpected events: %+v", got)
	}

	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	next.AddCookie(lastCookie(t, rec, "test_session"))
	var seen string
	s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SubjectFromContext(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), next)
	if seen != "user-1" {
		t.Fatalf("expected subject in context, got %q", seen)
	}
}

func TestEndRemovesSubjectAndKeepsToasts(t *testing.T) {
	s, bus := newSessions(t)
	ended := 0
	_ = bus.Subscribe(events.TopicSessionEnded, func(events.SessionEvent) { ended++ })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if err := s.Establish(rec, req, "user-1"); err != nil {
		t.Fatal(err)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req2.AddCookie(lastCookie(t, rec, "test_session"))
	rec2 := httptest.NewRecorder()
	if err := s.Flash(rec2, req2, Toast{Kind: ToastInfo, Title: "bye"}); err != nil {
		t.Fatal(err)
	}
	if err := s.End(rec2, req2); err != nil {
		t.Fatal(err)
	}
	if ended != 1 {
		t.Fatalf("expected one ended event, got %d", ended)
	}

	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(lastCookie(t, rec2, "test_session"))
	if _, ok := s.Subject(req3); ok {
		t.Fatalf("subject should be gone")
	}
	toasts := s.Toasts(httptest.NewRecorder(), req3)
	if len(toasts) != 1 || toasts[0].Title != "bye" {
		t.Fatalf("unexpected toasts %+v", toasts)
	}
}

func TestToastsAreDrainedOnce(t *testing.T) {
	s, _ := newSessions(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_ = s.Flash(rec, req, Toast{Kind: ToastSuccess, Title: "a"})
	_ = s.Flash(rec, req, Toast{Kind: ToastError, Title: "b"})

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(lastCookie(t, rec, "test_session"))
	rec2 := httptest.NewRecorder()
	if got := s.Toasts(rec2, req2); len(got) != 2 {
		t.Fatalf("expected 2 toasts, got %+v", got)
	}

	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.AddCookie(lastCookie(t, rec2, "test_session"))
	if got := s.Toasts(httptest.NewRecorder(), req3); len(got) != 0 {
		t.Fatalf("expected toasts to be drained, got %+v", got)
	}
}

func TestMiddlewareDropsRejectedSubject(t *testing.T) {
	s, _ := newSessions(t)
	s.SetVerifier(func(context.Context, string) bool { return false })

	rec := httptest.NewRecorder()
	_ = s.Establish(rec, httptest.NewRequest(http.MethodPost, "/", nil), "deleted-user")

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(lastCookie(t, rec, "test_session"))
	s.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SubjectFromContext(r.Context()); ok {
			t.Fatalf("rejected subject must not reach handlers")
		}
	})).ServeHTTP(httptest.NewRecorder(), req)
}

func TestTamperedCookieIsIgnored(t *testing.T) {
	s, _ := newSessions(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "garbage"})
	if _, ok := s.Subject(req); ok {
		t.Fatalf("tampered cookie must not yield a subject")
	}
}
