// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"pulse/internal/config"
	"pulse/internal/database"
	"pulse/internal/seed"
)

func main() {
	users := flag.Int("users", 20, "Number of users to create")
	postsPerUser := flag.Int("posts-per-user", 5, "Posts created per user")
	maxInteractions := flag.Int("max-interactions", 8, "Max likes/favorites per post")
	maxComments := flag.Int("max-comments", 4, "Max comments per post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Users = *users
	opts.PostsPerUser = *postsPerUser
	opts.MaxInteractions = *maxInteractions
	opts.MaxComments = *maxComments

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
