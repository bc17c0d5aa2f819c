package auth

import (
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/ijanvdwesz/credential-management/pkg/logger"
)

var _ = ginkgo.Describe("Permits", func() {
	ginkgo.It("should allow any role when the set is empty", func() {
		gomega.Expect(Permits(RoleNormalUser, AnyAuthenticated)).To(gomega.BeTrue())
		gomega.Expect(Permits(RoleDivisionManager, AnyAuthenticated)).To(gomega.BeTrue())
		gomega.Expect(Permits(RoleAdmin, AnyAuthenticated)).To(gomega.BeTrue())
	})

	ginkgo.It("should restrict AdminOnly to admins", func() {
		gomega.Expect(Permits(RoleAdmin, AdminOnly)).To(gomega.BeTrue())
		gomega.Expect(Permits(RoleDivisionManager, AdminOnly)).To(gomega.BeFalse())
		gomega.Expect(Permits(RoleNormalUser, AdminOnly)).To(gomega.BeFalse())
	})

	ginkgo.It("should allow managers and admins for ManagersAndAdmin", func() {
		gomega.Expect(Permits(RoleAdmin, ManagersAndAdmin)).To(gomega.BeTrue())
		gomega.Expect(Permits(RoleDivisionManager, ManagersAndAdmin)).To(gomega.BeTrue())
		gomega.Expect(Permits(RoleNormalUser, ManagersAndAdmin)).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("RoleGate", func() {
	var (
		gate *RoleGate
		next http.Handler
	)

	ginkgo.BeforeEach(func() {
		gate = NewRoleGate(logger.L())
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	requestAs := func(u *User) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if u != nil {
			req = req.WithContext(ContextWithUser(req.Context(), u))
		}
		return req
	}

	ginkgo.Context("when no user is attached to the context", func() {
		ginkgo.It("should respond 401", func() {
			rec := httptest.NewRecorder()

			gate.RequireAdmin()(next).ServeHTTP(rec, requestAs(nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Context("when the role is insufficient", func() {
		ginkgo.It("should respond 403 with the admin denial body", func() {
			rec := httptest.NewRecorder()
			u := &User{ID: 1, Role: RoleNormalUser}

			gate.RequireAdmin()(next).ServeHTTP(rec, requestAs(u))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Access denied. Admins only."))
		})

		ginkgo.It("should deny normal users on manager routes", func() {
			rec := httptest.NewRecorder()
			u := &User{ID: 1, Role: RoleNormalUser}

			gate.RequireManager()(next).ServeHTTP(rec, requestAs(u))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Division Managers"))
		})
	})

	ginkgo.Context("when the role satisfies the set", func() {
		ginkgo.It("should pass admins through an admin gate", func() {
			rec := httptest.NewRecorder()
			u := &User{ID: 2, Role: RoleAdmin}

			gate.RequireAdmin()(next).ServeHTTP(rec, requestAs(u))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should pass division managers through a manager gate", func() {
			rec := httptest.NewRecorder()
			u := &User{ID: 3, Role: RoleDivisionManager}

			gate.RequireManager()(next).ServeHTTP(rec, requestAs(u))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})
