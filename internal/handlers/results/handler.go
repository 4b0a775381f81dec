package results

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"gitlab.com/scoreboard.net/internal/core/ports/primary"
	"gitlab.com/scoreboard.net/internal/core/services/result"
	"gitlab.com/scoreboard.net/internal/handlers"
	"gitlab.com/scoreboard.net/internal/handlers/response"
	"gitlab.com/scoreboard.net/internal/static/errs"
)

const (
	maxBodyBytes = 1 << 20

	msgMissingField  = "Missing 'name' or 'score' in request"
	msgInvalidFormat = "Invalid data format for 'score' or request body"
	msgOutOfRange    = "Value of 'score' is out of range"
	msgSubmitted     = "Result submitted successfully"
	msgInternal      = "Internal server error"
)

// ResultHandler handles result API requests
type ResultHandler struct {
	resultService result.IResultService
	logger        primary.Logger
	validator     *validator.Validate
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService result.IResultService, logger primary.Logger) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		logger:        logger,
		validator:     validator.New(),
	}
}

// RegisterRoutes registers the API routes for ResultHandler
func (h *ResultHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submit", h.SubmitResult).Methods(http.MethodPost)
	router.HandleFunc("/results", h.GetResults).Methods(http.MethodGet)
}

// SubmitResult handles result submission requests
func (h *ResultHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := decodeSubmitRequest(r.Body, h.validator)
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	name, score, err := req.Parse()
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	id, err := h.resultService.SubmitResult(r.Context(), name, score)
	if err != nil {
		h.logger.Error("Failed to submit result", "requestId", handlers.RequestIDFromContext(r.Context()), "error", err)
		response.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	response.WriteJSON(w, http.StatusCreated, SubmitResultResponse{
		ID:      id,
		Message: msgSubmitted,
	})
}

// GetResults handles result listing requests
func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultService.ListResults(r.Context())
	if err != nil {
		h.logger.Error("Failed to list results", "requestId", handlers.RequestIDFromContext(r.Context()), "error", err)
		response.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	response.WriteJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) writeInputError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Debug("Rejected submission", "requestId", handlers.RequestIDFromContext(r.Context()), "reason", err)

	switch {
	case errors.Is(err, errs.ErrMissingField):
		response.WriteError(w, http.StatusBadRequest, msgMissingField)
	case errors.Is(err, errs.ErrScoreOutOfRange):
		response.WriteError(w, http.StatusBadRequest, msgOutOfRange)
	default:
		response.WriteError(w, http.StatusBadRequest, msgInvalidFormat)
	}
}
