package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkarahan/storeaudit/internal/api"
	"github.com/mkarahan/storeaudit/internal/services"
	"github.com/mkarahan/storeaudit/internal/utils"
)

func seedID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// seedIfEmpty bootstraps an admin account plus a small working catalog
// so a fresh deployment is usable without manual inserts. It is a no-op
// once the admin account exists.
func seedIfEmpty(store api.Datastore) error {
	email := utils.SafeEnv("AUDIT_ADMIN_EMAIL", "admin@example.com")
	if store.FindUserByEmail(email) != nil {
		return nil
	}

	password := utils.SafeEnv("AUDIT_ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now().UTC()
	store.AddUser(&api.User{
		ID:          "u" + seedID(),
		Email:       email,
		PassHash:    hash,
		DisplayName: "Administrator",
		Role:        string(services.RoleAdmin),
		CreatedAt:   now,
	})

	store.AddStore(&api.Store{ID: seedID(), Name: "Downtown Branch", Address: "1 Main St", IsActive: true, CreatedAt: now})
	store.AddStore(&api.Store{ID: seedID(), Name: "Riverside Branch", Address: "42 River Rd", IsActive: true, CreatedAt: now})

	store.AddTemplate(&api.FormTemplate{
		ID:       seedID(),
		Title:    "Hygiene Inspection",
		IsActive: true,
		Categories: []api.Category{
			{
				CategoryID: seedID(),
				Name:       "General",
				Order:      1,
				Questions: []api.Question{
					{
						QuestionID: seedID(),
						Text:       "Is the floor clean?",
						Type:       string(services.QuestionMultipleChoice),
						Order:      1,
						Options: []api.Option{
							{Text: "Yes", Score: 5},
							{Text: "Partially", Score: 2},
							{Text: "No", Score: 0},
						},
					},
					{
						QuestionID: seedID(),
						Text:       "Inspection notes",
						Type:       string(services.QuestionText),
						Order:      2,
					},
				},
			},
		},
	})

	log.Printf("seeded admin account %s with sample catalog", email)
	return nil
}
