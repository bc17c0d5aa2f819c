package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RoleSet is the declarative form of a route's role requirement. A nil or
// empty set admits any authenticated principal.
type RoleSet []Role

var (
	AdminOnly        = RoleSet{RoleAdmin}
	ManagersAndAdmin = RoleSet{RoleAdmin, RoleDivisionManager}
	AnyAuthenticated = RoleSet{}
)

// Permits reports whether role satisfies the required set. Pure predicate,
// no store access.
func Permits(role Role, required RoleSet) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// DenialMessage is the body clients see when the set rejects a role.
func (rs RoleSet) DenialMessage() string {
	if len(rs) == 2 {
		return "Access denied. Admins and Division Managers only."
	}
	return "Access denied. Admins only."
}

// RoleGate turns required-role sets into route middleware, replacing
// inline per-route role checks.
type RoleGate struct {
	logger *slog.Logger
}

func NewRoleGate(logger *slog.Logger) *RoleGate {
	return &RoleGate{logger: logger}
}

// Require denies with 403 unless the context user's role is in the set.
func (g *RoleGate) Require(required RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				g.logger.Warn("role gate: user not found in context")
				writeDenial(w, http.StatusUnauthorized, "Not Authorized")
				return
			}

			if !Permits(user.Role, required) {
				g.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"role", user.Role,
					"required_roles", required)
				writeDenial(w, http.StatusForbidden, required.DenialMessage())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeDenial(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func (g *RoleGate) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(AdminOnly)
}

func (g *RoleGate) RequireManager() func(http.Handler) http.Handler {
	return g.Require(ManagersAndAdmin)
}
