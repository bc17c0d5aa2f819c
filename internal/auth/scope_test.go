package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("ScopeResolver", func() {
	var resolver *ScopeResolver

	ginkgo.BeforeEach(func() {
		resolver = NewScopeResolver()
	})

	ginkgo.Describe("AuthorizedDivisionIDs", func() {
		ginkgo.It("should be unrestricted for admins", func() {
			admin := &User{ID: 1, Role: RoleAdmin}

			_, unrestricted := resolver.AuthorizedDivisionIDs(admin)

			gomega.Expect(unrestricted).To(gomega.BeTrue())
		})

		ginkgo.It("should return exactly the stored division memberships", func() {
			manager := &User{ID: 2, Role: RoleDivisionManager, DivisionIDs: []int64{10, 11}}

			ids, unrestricted := resolver.AuthorizedDivisionIDs(manager)

			gomega.Expect(unrestricted).To(gomega.BeFalse())
			gomega.Expect(ids).To(gomega.Equal([]int64{10, 11}))
		})

		ginkgo.It("should not expand OU memberships into divisions", func() {
			u := &User{ID: 3, Role: RoleNormalUser, OUIDs: []int64{1}, DivisionIDs: nil}

			ids, unrestricted := resolver.AuthorizedDivisionIDs(u)

			gomega.Expect(unrestricted).To(gomega.BeFalse())
			gomega.Expect(ids).To(gomega.BeEmpty())
		})

		ginkgo.It("should treat a nil principal as no scope", func() {
			ids, unrestricted := resolver.AuthorizedDivisionIDs(nil)

			gomega.Expect(unrestricted).To(gomega.BeFalse())
			gomega.Expect(ids).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("IsDivisionInScope", func() {
		ginkgo.It("should accept any division for admins", func() {
			admin := &User{ID: 1, Role: RoleAdmin}

			gomega.Expect(resolver.IsDivisionInScope(admin, 999)).To(gomega.BeTrue())
		})

		ginkgo.It("should accept member divisions and reject others", func() {
			u := &User{ID: 2, Role: RoleNormalUser, DivisionIDs: []int64{10}}

			gomega.Expect(resolver.IsDivisionInScope(u, 10)).To(gomega.BeTrue())
			gomega.Expect(resolver.IsDivisionInScope(u, 11)).To(gomega.BeFalse())
		})
	})
})
