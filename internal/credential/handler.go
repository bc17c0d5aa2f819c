package credential

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/ijanvdwesz/credential-management/internal/auth"
	"github.com/ijanvdwesz/credential-management/internal/transport"
)

type ServiceAPI interface {
	ListForPrincipal(principal *auth.User) ([]*Credential, error)
	ListByDivision(principal *auth.User, divisionID int64) ([]*Credential, error)
	CreateCredential(ctx context.Context, principal *auth.User, dto CreateCredentialDTO) (*Credential, error)
	UpdateCredential(ctx context.Context, principal *auth.User, id int64, dto UpdateCredentialDTO) (*Credential, error)
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

// GetCredentials handles GET /api/credentials. The result is scoped to the
// caller's memberships; an empty scope yields an empty list.
func (h *Handler) GetCredentials(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	credentials, err := h.Service.ListForPrincipal(principal)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if credentials == nil {
		credentials = []*Credential{}
	}
	h.WriteJSON(w, http.StatusOK, credentials)
}

// GetCredentialsByDivision handles GET /api/credentials/credentials?divisionId=.
func (h *Handler) GetCredentialsByDivision(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	divisionIDStr := r.URL.Query().Get("divisionId")
	if divisionIDStr == "" {
		h.WriteError(w, http.StatusBadRequest, "Division ID is required")
		return
	}
	divisionID, err := strconv.ParseInt(divisionIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "Division ID is required")
		return
	}

	credentials, err := h.Service.ListByDivision(principal, divisionID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if credentials == nil {
		credentials = []*Credential{}
	}
	h.WriteJSON(w, http.StatusOK, credentials)
}

// CreateCredential handles POST /api/credentials.
func (h *Handler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	var dto CreateCredentialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credential, err := h.Service.CreateCredential(r.Context(), principal, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, credential)
}

// UpdateCredential handles PATCH /api/credentials/{id}.
func (h *Handler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid credential id")
		return
	}

	var dto UpdateCredentialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	credential, err := h.Service.UpdateCredential(r.Context(), principal, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, credential)
}
