package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	credentialDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/credential"
	divisionDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/division"
	ouDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/ou"
	userDatamodel "github.com/ijanvdwesz/credential-management/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}
		if err := userDatamodel.RegisterJoinTables(db); err != nil {
			log.Fatalf("failed to register membership join tables: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_divisions", "user_ous", "credentials", "divisions", "ous", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		admin := &userDatamodel.User{
			Name:         "Admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         "admin",
		}
		if err := firstOrCreateUser(db, admin); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}

		manager := &userDatamodel.User{
			Name:         "Finance Manager",
			Email:        "manager@example.com",
			PasswordHash: string(hash),
			Role:         "division_manager",
		}
		if err := firstOrCreateUser(db, manager); err != nil {
			log.Fatalf("failed to seed manager user: %v", err)
		}

		hq := &ouDatamodel.OU{Name: "HQ"}
		if err := db.Where("name = ?", hq.Name).FirstOrCreate(hq).Error; err != nil {
			log.Fatalf("failed to seed OU: %v", err)
		}

		finance := &divisionDatamodel.Division{Name: "Finance", OUID: hq.ID}
		if err := db.Where("name = ? AND ou_id = ?", finance.Name, hq.ID).FirstOrCreate(finance).Error; err != nil {
			log.Fatalf("failed to seed division: %v", err)
		}

		svc := &credentialDatamodel.Credential{
			Username:    "svc1",
			Password:    "s3cret",
			Description: "Finance reporting service account",
			Place:       "reporting.internal",
			DivisionID:  finance.ID,
		}
		if err := db.Where("username = ? AND division_id = ?", svc.Username, finance.ID).FirstOrCreate(svc).Error; err != nil {
			log.Fatalf("failed to seed credential: %v", err)
		}

		memberships := []interface{}{
			&userDatamodel.UserOU{UserID: manager.ID, OUID: hq.ID},
			&userDatamodel.UserDivision{UserID: manager.ID, DivisionID: finance.ID},
		}
		for _, m := range memberships {
			if err := db.FirstOrCreate(m).Error; err != nil {
				log.Fatalf("failed to seed membership: %v", err)
			}
		}

		fmt.Println("Seeded admin@example.com and manager@example.com (password: changeme)")
		fmt.Println("Seeded OU HQ, division Finance, credential svc1")
	},
}

func firstOrCreateUser(db *gorm.DB, u *userDatamodel.User) error {
	return db.Where("email = ?", u.Email).FirstOrCreate(u).Error
}
