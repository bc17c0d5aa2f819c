package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ijanvdwesz/credential-management/internal/transport"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (AuthResult, error)
	Login(dto LoginDTO) (AuthResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Register(dto)
	if err != nil {
		switch {
		case err == ErrDuplicateEmail:
			h.WriteError(w, http.StatusConflict, "User already exists")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.Logger.Error("registration failed", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "Server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token":  result.Token,
		"userId": result.UserID,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		switch {
		case err == ErrInvalidCredentials:
			h.WriteError(w, http.StatusBadRequest, "Invalid login attempt. Please verify username and password.")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.Logger.Error("login failed", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "Server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":  result.Token,
		"role":   result.Role,
		"userId": result.UserID,
	})
}

// AuthMiddleware resolves the principal for every protected route: verify
// the bearer token, then re-load the user so role and memberships reflect
// the store rather than issuance-time claims.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.WriteError(w, http.StatusUnauthorized, "Not Authorized")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			h.WriteError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			// Expired and malformed tokens surface as distinct messages,
			// both denied with 403 like the routes this replaces.
			message := "Invalid token"
			if err == ErrTokenExpired {
				message = "Token expired"
			}
			h.WriteError(w, http.StatusForbidden, message)
			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("auth middleware: unparseable user id in claims", "value", claims.UserID)
			h.WriteError(w, http.StatusForbidden, "Invalid token")
			return
		}

		user, err := h.Service.GetUserByID(userID)
		if err != nil {
			h.Logger.Warn("auth middleware: user from token no longer resolvable", "user_id", userID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
