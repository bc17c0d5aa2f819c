package division

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ijanvdwesz/credential-management/internal/transport"
)

type ServiceAPI interface {
	ListDivisions() ([]*Division, error)
	CreateDivision(dto CreateDivisionDTO) (*Division, error)
	ListDivisionsByOU(ouID int64) ([]*Division, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// GetDivisions handles GET /api/divisions.
func (h *Handler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.Service.ListDivisions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if divisions == nil {
		divisions = []*Division{}
	}
	h.WriteJSON(w, http.StatusOK, divisions)
}

// CreateDivision handles POST /api/divisions.
func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var dto CreateDivisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	division, err := h.Service.CreateDivision(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, division)
}

// GetDivisionsByOU handles GET /api/divisions/divisions-by-ou?ouId=.
func (h *Handler) GetDivisionsByOU(w http.ResponseWriter, r *http.Request) {
	ouIDStr := r.URL.Query().Get("ouId")
	if ouIDStr == "" {
		h.WriteError(w, http.StatusBadRequest, "OU ID is required")
		return
	}

	ouID, err := strconv.ParseInt(ouIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "OU ID is required")
		return
	}

	divisions, err := h.Service.ListDivisionsByOU(ouID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if divisions == nil {
		divisions = []*Division{}
	}
	h.WriteJSON(w, http.StatusOK, divisions)
}
