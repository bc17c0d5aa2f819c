package user

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
	GetUserInfo(userID int64) (*UserInfo, error)
	ListUsers() ([]*User, error)
	ChangeRole(ctx context.Context, actor *auth.User, userID int64, newRole string) (*RoleChangeResult, error)
	AssignDivision(ctx context.Context, actor *auth.User, userID, divisionID int64) error
	RemoveDivision(ctx context.Context, actor *auth.User, userID, divisionID int64) error
	AssignOU(ctx context.Context, actor *auth.User, userID, ouID int64) error
	RemoveOU(ctx context.Context, actor *auth.User, userID, ouID int64) error
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

// GetUserInfo handles GET /api/users/user-info for the authenticated caller.
func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	info, err := h.Service.GetUserInfo(principal.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, info)
}

// GetAdminView handles GET /api/users/admin-view, the admin overview of
// every account with memberships populated.
func (h *Handler) GetAdminView(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if users == nil {
		users = []*User{}
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// ChangeRole handles PATCH /api/users/change-role/{userId}.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto ChangeRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.ChangeRole(r.Context(), principal, userID, dto.NewRole)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "User role updated successfully",
		"updatedUser": updated,
	})
}

// AssignDivision handles POST /api/users/{userId}/assign-division.
func (h *Handler) AssignDivision(w http.ResponseWriter, r *http.Request) {
	h.divisionMembership(w, r, h.Service.AssignDivision, "Division assigned successfully")
}

// RemoveDivision handles DELETE /api/users/{userId}/remove-division.
func (h *Handler) RemoveDivision(w http.ResponseWriter, r *http.Request) {
	h.divisionMembership(w, r, h.Service.RemoveDivision, "Division removed successfully")
}

// AssignOU handles POST /api/users/{userId}/assign-ou.
func (h *Handler) AssignOU(w http.ResponseWriter, r *http.Request) {
	h.ouMembership(w, r, h.Service.AssignOU, "OU assigned successfully")
}

// RemoveOU handles DELETE /api/users/{userId}/remove-ou.
func (h *Handler) RemoveOU(w http.ResponseWriter, r *http.Request) {
	h.ouMembership(w, r, h.Service.RemoveOU, "OU removed successfully")
}

func (h *Handler) divisionMembership(w http.ResponseWriter, r *http.Request, op func(context.Context, *auth.User, int64, int64) error, successMessage string) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto DivisionMembershipDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(r.Context(), principal, userID, dto.DivisionID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": successMessage})
}

func (h *Handler) ouMembership(w http.ResponseWriter, r *http.Request, op func(context.Context, *auth.User, int64, int64) error, successMessage string) {
	principal, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto OUMembershipDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(r.Context(), principal, userID, dto.OUID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": successMessage})
}
