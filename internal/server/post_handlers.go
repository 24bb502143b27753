package server

import (
	"github.com/gofiber/fiber/v2"

	"pulse/internal/models"
	"pulse/internal/service"
)

// GetPosts returns a page of posts, newest first by default (public).
// Query params: page, limit, sort (latest|popular), author_id.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	in := service.ListPostsInput{
		Page:     page,
		Limit:    limit,
		Sort:     c.Query("sort"),
		ViewerID: viewerID(c),
	}
	if authorID := c.QueryInt("author_id", 0); authorID > 0 {
		id := uint(authorID)
		in.AuthorID = &id
	}

	result, err := s.postService.ListPosts(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetPost returns a single post with viewer-scoped flags (public).
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, viewerID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost creates a new post owned by the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits a post's title and content (author only).
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost deletes a post and everything hanging off it (author only).
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyFavorites lists the authenticated user's favorited posts,
// most recently favorited first.
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	result, err := s.postService.ListFavorites(c.UserContext(), currentUserID(c), page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
