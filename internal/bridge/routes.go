package bridge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *WSHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/sessions/{id}", h.Serve)

	return r
}
