package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/ijanvdwesz/credential-management/internal/auth"
	"github.com/ijanvdwesz/credential-management/internal/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type stubUserStore struct {
	users     map[int64]*auth.User
	passwords map[string]string
	ids       map[string]int64
	nextID    int64
}

func newStubUserStore() *stubUserStore {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	return &stubUserStore{
		users: map[int64]*auth.User{
			1: {ID: 1, Name: "Norma", Email: "norma@example.com", Role: auth.RoleNormalUser},
		},
		passwords: map[string]string{"norma@example.com": string(hash)},
		ids:       map[string]int64{"norma@example.com": 1},
		nextID:    2,
	}
}

func (s *stubUserStore) GetPasswordForEmail(email string) (string, int64, error) {
	if hash, ok := s.passwords[email]; ok {
		return hash, s.ids[email], nil
	}
	return "", 0, auth.ErrUserNotFound
}

func (s *stubUserStore) GetUserByID(id int64) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func (s *stubUserStore) EmailExists(email string) (bool, error) {
	_, ok := s.passwords[email]
	return ok, nil
}

func (s *stubUserStore) CreateUser(name, email, passwordHash string, role auth.Role) (*auth.User, error) {
	u := &auth.User{ID: s.nextID, Name: name, Email: email, Role: role}
	s.nextID++
	s.users[u.ID] = u
	s.passwords[email] = passwordHash
	s.ids[email] = u.ID
	return u, nil
}

var _ = Describe("Auth Handler", func() {
	var (
		store    *stubUserStore
		tokenGen *auth.JWTTokenGenerator
		handler  *auth.Handler
	)

	BeforeEach(func() {
		store = newStubUserStore()
		tokenGen = auth.NewJWTTokenGenerator("handler-test-secret-32-characters!!", time.Hour)
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(store, tokenGen, bcrypt.MinCost)
		handler = auth.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	postJSON := func(path string, body interface{}, h http.HandlerFunc) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	Describe("POST /api/auth/register", func() {
		It("should create the account and return 201 with a token", func() {
			rec := postJSON("/api/auth/register", map[string]string{
				"name":     "New User",
				"email":    "new@example.com",
				"password": "password123",
			}, handler.Register)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["token"]).NotTo(BeEmpty())
			Expect(body["userId"]).NotTo(BeNil())
		})

		It("should return 409 for a duplicate email", func() {
			rec := postJSON("/api/auth/register", map[string]string{
				"name":     "Duplicate",
				"email":    "norma@example.com",
				"password": "password123",
			}, handler.Register)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("User already exists"))
		})
	})

	Describe("POST /api/auth/login", func() {
		It("should return a token with the stored role", func() {
			rec := postJSON("/api/auth/login", map[string]string{
				"email":    "norma@example.com",
				"password": "correct_password",
			}, handler.Login)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["role"]).To(Equal("normal_user"))
		})

		It("should use one message for wrong password and unknown email", func() {
			wrong := postJSON("/api/auth/login", map[string]string{
				"email":    "norma@example.com",
				"password": "wrong",
			}, handler.Login)
			unknown := postJSON("/api/auth/login", map[string]string{
				"email":    "nobody@example.com",
				"password": "correct_password",
			}, handler.Login)

			Expect(wrong.Code).To(Equal(http.StatusBadRequest))
			Expect(unknown.Code).To(Equal(http.StatusBadRequest))
			Expect(wrong.Body.String()).To(Equal(unknown.Body.String()))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Header().Set("X-Resolved-Role", string(u.Role))
				w.WriteHeader(http.StatusOK)
			}))
		})

		request := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/credentials", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			return rec
		}

		It("should return 401 without a token", func() {
			rec := request("")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("Not Authorized"))
		})

		It("should return 401 for a malformed header", func() {
			rec := request("Token abc")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("Invalid token format"))
		})

		It("should return 403 for an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator("handler-test-secret-32-characters!!", time.Hour)
			expiredGen.TokenTTL = -time.Minute
			token, err := expiredGen.GenerateToken("1", auth.RoleNormalUser)
			Expect(err).NotTo(HaveOccurred())

			rec := request("Bearer " + token)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring("Token expired"))
		})

		It("should return 403 for a token signed with another secret", func() {
			otherGen := auth.NewJWTTokenGenerator("some-other-secret-that-is-32-chars!", time.Hour)
			token, err := otherGen.GenerateToken("1", auth.RoleNormalUser)
			Expect(err).NotTo(HaveOccurred())

			rec := request("Bearer " + token)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring("Invalid token"))
		})

		It("should resolve the principal from the store, not the claims", func() {
			// Token minted while the user was a normal_user; the store has
			// since promoted them.
			token, err := tokenGen.GenerateToken("1", auth.RoleNormalUser)
			Expect(err).NotTo(HaveOccurred())
			store.users[1].Role = auth.RoleAdmin

			rec := request("Bearer " + token)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("X-Resolved-Role")).To(Equal("admin"))
		})

		It("should return 401 when the token's user no longer exists", func() {
			token, err := tokenGen.GenerateToken("1", auth.RoleNormalUser)
			Expect(err).NotTo(HaveOccurred())
			delete(store.users, 1)

			rec := request("Bearer " + token)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("User not found"))
		})
	})
})
