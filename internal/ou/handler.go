package ou

import (
	"net/http"

	"github.com/ijanvdwesz/credential-management/internal/transport"
)

type ServiceAPI interface {
	ListOUs() ([]*OU, error)
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

// GetOUs handles GET /api/ous (admin only, enforced by the role gate).
func (h *Handler) GetOUs(w http.ResponseWriter, r *http.Request) {
	ous, err := h.Service.ListOUs()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if ous == nil {
		ous = []*OU{}
	}
	h.WriteJSON(w, http.StatusOK, ous)
}
