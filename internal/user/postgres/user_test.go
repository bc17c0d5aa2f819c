package postgres_test

import (
	"testing"

	"github.com/ijanvdwesz/credential-management/internal/user"
	userPostgres "github.com/ijanvdwesz/credential-management/internal/user/postgres"

	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		db      *gorm.DB
		repo    user.RepositoryAPI
		norma   *userDatamodel.User
		hq      *ouDatamodel.OU
		finance *divisionDatamodel.Division
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&ouDatamodel.OU{},
			&divisionDatamodel.Division{},
			&userDatamodel.User{},
			&userDatamodel.UserOU{},
			&userDatamodel.UserDivision{},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(userDatamodel.RegisterJoinTables(db)).To(Succeed())

		hq = &ouDatamodel.OU{Name: "HQ"}
		Expect(db.Create(hq).Error).To(Succeed())
		finance = &divisionDatamodel.Division{Name: "Finance", OUID: hq.ID}
		Expect(db.Create(finance).Error).To(Succeed())

		norma = &userDatamodel.User{
			Name:         "Norma",
			Email:        "norma@example.com",
			PasswordHash: "x",
			Role:         "normal_user",
		}
		Expect(db.Create(norma).Error).To(Succeed())

		repo = userPostgres.NewUserRepository(db)
	})

	Describe("GetByID", func() {
		It("should populate memberships", func() {
			Expect(repo.AddOU(norma.ID, hq.ID)).To(Succeed())
			Expect(repo.AddDivision(norma.ID, finance.ID)).To(Succeed())

			got, err := repo.GetByID(norma.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
			Expect(got.OUs).To(HaveLen(1))
			Expect(got.OUs[0].Name).To(Equal("HQ"))
			Expect(got.Divisions).To(HaveLen(1))
			Expect(got.Divisions[0].Name).To(Equal("Finance"))
		})

		It("should return nil for an unknown id", func() {
			got, err := repo.GetByID(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("membership set semantics", func() {
		It("should not duplicate a membership on repeated assignment", func() {
			Expect(repo.AddDivision(norma.ID, finance.ID)).To(Succeed())
			Expect(repo.AddDivision(norma.ID, finance.ID)).To(Succeed())

			var count int64
			err := db.Model(&userDatamodel.UserDivision{}).
				Where("user_id = ?", norma.ID).Count(&count).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("should remove exactly the named pair", func() {
			Expect(repo.AddDivision(norma.ID, finance.ID)).To(Succeed())

			Expect(repo.RemoveDivision(norma.ID, finance.ID)).To(Succeed())

			got, err := repo.GetByID(norma.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Divisions).To(BeEmpty())
		})

		It("should tolerate removing an absent membership", func() {
			Expect(repo.RemoveOU(norma.ID, hq.ID)).To(Succeed())
		})
	})

	Describe("UpdateRole", func() {
		It("should persist the new role", func() {
			Expect(repo.UpdateRole(norma.ID, "admin")).To(Succeed())

			got, err := repo.GetByID(norma.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Role).To(Equal("admin"))
		})
	})

	Describe("existence checks", func() {
		It("should report divisions and OUs", func() {
			exists, err := repo.DivisionExists(finance.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.OUExists(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
