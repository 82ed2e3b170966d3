package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-tracker/internal/auth"
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

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUsers := []struct {
			Email      string
			Name       string
			Role       string
			Department string
		}{
			{"sari.manager@mail.com", "Sari Wijaya", "manager", "Operations"},
			{"budi@mail.com", "Budi Santoso", "employee", "Engineering"},
			{"dewi@mail.com", "Dewi Lestari", "employee", "Engineering"},
			{"agus@mail.com", "Agus Pratama", "employee", "Finance"},
		}

		for _, u := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Println("user already exists, skipping:", u.Email)
				continue
			}

			employeeID := auth.NewEmployeeID()
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, employee_id, department, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, now(), now())",
				u.Email, u.Name, string(hash), u.Role, employeeID, u.Department,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s (%s)\n", u.Role, u.Email, employeeID)
		}

		fmt.Println("Seed data loaded successfully")
	},
}
