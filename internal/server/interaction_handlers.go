package server

import (
	"github.com/gofiber/fiber/v2"

	"pulse/internal/models"
	"pulse/internal/service"
)

func (s *Server) addInteraction(c *fiber.Ctx, kind models.InteractionKind) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	row, created, err := s.interactionService.AddInteraction(c.UserContext(), service.InteractionInput{
		UserID: currentUserID(c),
		PostID: postID,
		Kind:   kind,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(row)
}

func (s *Server) removeInteraction(c *fiber.Ctx, kind models.InteractionKind) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	removed, err := s.interactionService.RemoveInteraction(c.UserContext(), service.InteractionInput{
		UserID: currentUserID(c),
		PostID: postID,
		Kind:   kind,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// LikePost records a like on a post. Liking twice is a no-op that
// returns the existing row.
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.addInteraction(c, models.KindLike)
}

// UnlikePost removes a like. Removing an absent like succeeds with
// removed=false.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	return s.removeInteraction(c, models.KindLike)
}

// FavoritePost records a favorite (bookmark) on a post.
func (s *Server) FavoritePost(c *fiber.Ctx) error {
	return s.addInteraction(c, models.KindFavorite)
}

// UnfavoritePost removes a favorite.
func (s *Server) UnfavoritePost(c *fiber.Ctx) error {
	return s.removeInteraction(c, models.KindFavorite)
}
