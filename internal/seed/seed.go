package seed

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"pulse/internal/models"
	"pulse/internal/repository"
	"pulse/internal/service"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users           int
	PostsPerUser    int
	MaxInteractions int // per post, split across likes and favorites
	MaxComments     int // per post
	MaxDays         int // spread of post timestamps
}

// DefaultOptions returns a moderately busy dataset.
func DefaultOptions() Options {
	return Options{
		Users:           20,
		PostsPerUser:    5,
		MaxInteractions: 8,
		MaxComments:     4,
		MaxDays:         90,
	}
}

// Run populates the database with demo users, posts, interactions, and
// comments. Interactions go through the services so the post counters
// and notifications stay consistent with real traffic.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	factory := NewFactory(db)

	notificationSvc := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	interactionSvc := service.NewInteractionService(repository.NewInteractionRepository(db), notificationSvc)
	commentSvc := service.NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		notificationSvc,
	)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := factory.CreatePost(user, opts.MaxDays)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		n := factory.rng.Intn(opts.MaxInteractions + 1)
		for i := 0; i < n; i++ {
			actor := users[factory.rng.Intn(len(users))]
			kind := models.KindLike
			if factory.rng.Intn(3) == 0 {
				kind = models.KindFavorite
			}
			// Duplicate picks are no-ops, which is fine here.
			if _, _, err := interactionSvc.AddInteraction(ctx, service.InteractionInput{
				UserID: actor.ID,
				PostID: post.ID,
				Kind:   kind,
			}); err != nil {
				return fmt.Errorf("seed interaction: %w", err)
			}
		}

		c := factory.rng.Intn(opts.MaxComments + 1)
		for i := 0; i < c; i++ {
			actor := users[factory.rng.Intn(len(users))]
			if _, err := commentSvc.CreateComment(ctx, service.CreateCommentInput{
				UserID: actor.ID,
				PostID: post.ID,
				Text:   factory.CommentText(),
			}); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return nil
}
