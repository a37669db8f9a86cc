// Command seed creates demo users with zero-balance accounts. Handy
// for local development and manual API testing.
package main

import (
	"context"
	"errors"
	"log"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/services/user"
)

var demoUsers = []models.CreateUserInput{
	{Username: "alice", Email: "alice@example.com", Password: "alice-demo-pass"},
	{Username: "bob", Email: "bob@example.com", Password: "bob-demo-pass"},
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if err := repositories.CloseDB(); err != nil {
			log.Printf("failed to close database connection: %v", err)
		}
	}()

	svc := user.NewService(repositories.NewUserRepository(repositories.DB))
	ctx := context.Background()

	for _, input := range demoUsers {
		created, err := svc.Register(ctx, &input)
		if err != nil {
			if errors.Is(err, user.ErrDuplicateUser) {
				log.Printf("user %q already exists, skipping", input.Username)
				continue
			}
			log.Fatalf("failed to seed user %q: %v", input.Username, err)
		}
		log.Printf("seeded user %q with account %d", created.Username, created.Account.ID)
	}
}
