package handlers

import (
	"net/http"

	"github.com/diewo77/techfix/internal/auth"
	"github.com/diewo77/techfix/internal/policy"
	"go.uber.org/zap"
)

// flashTo queues t for the next page and logs when the cookie cannot be
// written.
func flashTo(f policy.Flasher, log *zap.Logger, w http.ResponseWriter, r *http.Request, t auth.Toast) {
	if err := f.Flash(w, r, t); err != nil {
		log.Warn("flash", zap.Error(err))
	}
}

func renderError(log *zap.Logger, w http.ResponseWriter, page string, err error) {
	log.Error("render", zap.String("page", page), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
