package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulse/internal/models"
	"pulse/internal/observability"
	"pulse/internal/repository"
)

// InteractionService applies like and favorite mutations and triggers
// the notification fan-out for successful additions.
type InteractionService struct {
	interactions  repository.InteractionRepository
	notifications *NotificationService
}

func NewInteractionService(interactions repository.InteractionRepository, notifications *NotificationService) *InteractionService {
	return &InteractionService{interactions: interactions, notifications: notifications}
}

type InteractionInput struct {
	UserID uint
	PostID uint
	Kind   models.InteractionKind
}

func notificationType(kind models.InteractionKind) models.NotificationType {
	if kind == models.KindFavorite {
		return models.NotificationFavorite
	}
	return models.NotificationLike
}

// AddInteraction records a like or favorite. Repeating an existing
// interaction returns the original row with created=false, moves no
// counter, and emits no notification.
func (s *InteractionService) AddInteraction(ctx context.Context, in InteractionInput) (*models.Interaction, bool, error) {
	if !in.Kind.Valid() {
		return nil, false, models.NewValidationError("Unknown interaction kind")
	}

	row, authorID, created, err := s.interactions.Add(ctx, in.UserID, in.PostID, in.Kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, false, models.NewInternalError(err)
	}
	if !created {
		return row, false, nil
	}

	observability.InteractionsTotal.WithLabelValues(string(in.Kind), "add").Inc()

	// The counter mutation is committed at this point; the notification
	// is downstream and best-effort.
	s.notifications.Record(ctx, RecordInput{
		RecipientID: authorID,
		ActorID:     in.UserID,
		Type:        notificationType(in.Kind),
		PostID:      in.PostID,
	})
	return row, true, nil
}

// RemoveInteraction deletes a like or favorite. Removing an absent
// interaction is a no-op, even when the post itself is gone. Removals
// never notify.
func (s *InteractionService) RemoveInteraction(ctx context.Context, in InteractionInput) (bool, error) {
	if !in.Kind.Valid() {
		return false, models.NewValidationError("Unknown interaction kind")
	}

	removed, err := s.interactions.Remove(ctx, in.UserID, in.PostID, in.Kind)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if removed {
		observability.InteractionsTotal.WithLabelValues(string(in.Kind), "remove").Inc()
	}
	return removed, nil
}
