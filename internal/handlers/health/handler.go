package health

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/scoreboard.net/internal/handlers/response"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)
}

// Ping reports liveness only; it never touches the database.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
