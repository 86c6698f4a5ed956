// Command seed provisions initial accounts in the JSON store so a fresh
// deployment has an administrator to log in with. Existing usernames are
// left untouched.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/repository"
)

type seedUser struct {
	record   models.UserRecord
	password string
}

func main() {
	dataDir := flag.String("data-dir", "./data", "JSON store data directory")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin account (required)")
	withSamples := flag.Bool("samples", false, "also seed one account per workflow role")
	flag.Parse()

	if *adminPassword == "" {
		flag.Usage()
		os.Exit(2)
	}

	store, err := repository.NewStore(*dataDir, nil)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	users := repository.NewUserRepository(store)
	ctx := context.Background()

	seeds := []seedUser{
		{models.UserRecord{Username: "admin", FullName: "System Administrator", Role: models.RoleAdmin}, *adminPassword},
	}
	if *withSamples {
		seeds = append(seeds,
			seedUser{models.UserRecord{
				Username:         "applicant1",
				FullName:         "Somchai Wongsa",
				Role:             models.RoleApplicant,
				TitleName:        "Dr.",
				AcademicPosition: "Assistant Professor",
				Department:       "Computer Science",
				Faculty:          "Science",
			}, "password"},
			seedUser{models.UserRecord{Username: "staff1", FullName: "Administration Staff", Role: models.RoleAdministration}, "password"},
			seedUser{models.UserRecord{Username: "research1", FullName: "Research Reviewer", Role: models.RoleResearch}, "password"},
			seedUser{models.UserRecord{Username: "committee1", FullName: "Committee Member", Role: models.RoleCommittee}, "password"},
		)
	}

	for _, seed := range seeds {
		if _, err := users.FindByUsername(ctx, seed.record.Username); err == nil {
			fmt.Printf("skip %s: already exists\n", seed.record.Username)
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			log.Fatalf("check %s: %v", seed.record.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password for %s: %v", seed.record.Username, err)
		}
		record := seed.record
		record.PasswordHash = string(hash)
		if err := users.Create(ctx, &record); err != nil {
			log.Fatalf("create %s: %v", seed.record.Username, err)
		}
		fmt.Printf("created %s (%s)\n", record.Username, record.Role)
	}
}
