package player

import (
	"errors"
	"net/http"

	"playerapi/internal/httpx"
	"playerapi/internal/platform/logger"
)

type HTTPHandler struct {
	service *Service
	log     logger.Logger
}

func NewHTTPHandler(service *Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// Register mounts the player routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /players", h.List)
	mux.HandleFunc("GET /players/{id}/description", h.GetDescription)
	mux.HandleFunc("POST /players", h.Create)
	mux.HandleFunc("PATCH /players/{id}", h.Update)
	mux.HandleFunc("DELETE /players/{id}", h.Delete)
}

type confirmation struct {
	Message string  `json:"message"`
	Player  *Player `json:"player,omitempty"`
}

// List handles GET /players
// @Summary List players
// @Description Filter, sort and paginate players
// @Tags players
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param team query string false "Exact team filter"
// @Param search query string false "Case-insensitive name substring"
// @Param sortBy query string false "Descending sort field" Enums(runs, salary)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /players [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.service.List(r.Context(), ListParams{
		Page:   query.Get("page"),
		Limit:  query.Get("limit"),
		Team:   query.Get("team"),
		Search: query.Get("search"),
		SortBy: query.Get("sortBy"),
	})
	if err != nil {
		var perr *ParamError
		switch {
		case errors.As(err, &perr):
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", perr.Message, []httpx.ErrorDetail{
				{Field: perr.Param, Message: perr.Message},
			})
		case errors.Is(err, ErrNoResults):
			httpx.JSONError(w, r, http.StatusNotFound, "NO_RESULTS", "No players found for the given criteria.", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "STORE_UNAVAILABLE", "Server error. Please try again later.", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, result, nil)
}

// GetDescription handles GET /players/{id}/description
// @Summary Get player
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /players/{id}/description [get]
func (h *HTTPHandler) GetDescription(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Create handles POST /players
// @Summary Create player
// @Tags players
// @Accept json
// @Produce json
// @Param player body Input true "Player"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /players [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !h.decode(w, r, &in) {
		return
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, confirmation{Message: "Player created successfully", Player: &p})
}

// Update handles PATCH /players/{id}
// @Summary Update player
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param player body Patch true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /players/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch Patch
	if !h.decode(w, r, &patch) {
		return
	}

	p, err := h.service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		if errors.Is(err, ErrEmptyPatch) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, confirmation{Message: "Player updated successfully", Player: &p}, nil)
}

// Delete handles DELETE /players/{id}
// @Summary Delete player
// @Tags players
// @Param id path string true "Player ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /players/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, confirmation{Message: "Player deleted successfully"}, nil)
}

// decode reads and validates a JSON body, writing the 4xx response itself
// when it returns false.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		if httpx.IsBodyTooLarge(err) {
			httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return false
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Request body must be a valid JSON object", nil)
		return false
	}
	if details := httpx.ValidateStruct(dst); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", details)
		return false
	}
	return true
}

func (h *HTTPHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Player not found", nil)
		return
	}
	h.log.Error(r.Context(), "player request failed",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.Error(err),
	)
	httpx.JSONError(w, r, http.StatusInternalServerError, "STORE_UNAVAILABLE", "Server error. Please try again later.", nil)
}
