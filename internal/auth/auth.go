package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse access level baked into each user record.
type Role string

const (
	RoleNormalUser      Role = "normal_user"
	RoleDivisionManager Role = "division_manager"
	RoleAdmin           Role = "admin"
)

// ValidRole reports whether s names one of the enumerated roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleNormalUser, RoleDivisionManager, RoleAdmin:
		return true
	}
	return false
}

// User is the authenticated principal attached to the request context. Role
// and memberships are resolved from the store on every request, so they
// reflect current state rather than the claims minted at token issuance.
type User struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        Role    `json:"role"`
	OUIDs       []int64 `json:"ou_ids,omitempty"`
	DivisionIDs []int64 `json:"division_ids,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsDivisionManager() bool {
	return u.Role == RoleDivisionManager
}

// Claims is the signed token payload: user identity plus the role held at
// issuance time.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator mints and verifies signed tokens.
type TokenGenerator interface {
	GenerateToken(userID string, role Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// AuthResult is what register and login hand back to the transport layer.
type AuthResult struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
	Role   Role   `json:"role"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
)

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// TokenTTL is the fixed validity window for issued tokens.
const TokenTTL = time.Hour
