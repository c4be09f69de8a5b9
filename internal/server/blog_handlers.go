package server

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
	"inkwell/internal/service"
)

// CreateBlogRequest is the publish payload.
type CreateBlogRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"desc"`
	Banner      string             `json:"banner"`
	Tags        []string           `json:"tags"`
	Content     models.BlogContent `json:"content"`
	Draft       bool               `json:"draft"`
}

// GetBlogRequest identifies a blog by its URL slug.
type GetBlogRequest struct {
	BlogID string `json:"blog_id"`
}

// PageRequest selects one page of a listing.
type PageRequest struct {
	Page int `json:"page"`
}

// SearchBlogsRequest selects blogs by tag, title query or author username.
type SearchBlogsRequest struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	EliminateBlog string `json:"eliminate_blog"`
}

// CreateBlog handles authenticated blog publication
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req CreateBlogRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	blogID, err := s.blogService.Publish(c.UserContext(), service.PublishInput{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Banner:      req.Banner,
		Tags:        req.Tags,
		Content:     req.Content,
		Draft:       req.Draft,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": blogID})
}

// GetBlog returns a blog by slug and records the read
func (s *Server) GetBlog(c *fiber.Ctx) error {
	var req GetBlogRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.BlogID == "" {
		return respondError(c, models.NewValidationError("blog_id", "Blog id is required"))
	}

	blog, err := s.blogService.ReadBlog(c.UserContext(), req.BlogID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"blog": blog})
}

// LatestBlogs returns one page of published blogs, newest first
func (s *Server) LatestBlogs(c *fiber.Ctx) error {
	var req PageRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	blogs, err := s.blogService.Latest(c.UserContext(), req.Page)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"blogs": blogs})
}

// LatestBlogsCount returns the total number of published blogs
func (s *Server) LatestBlogsCount(c *fiber.Ctx) error {
	count, err := s.blogService.LatestCount(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"totalDocs": count})
}

// TrendingBlogs returns the top blogs by reads, likes, then recency
func (s *Server) TrendingBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.Trending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"blogs": blogs})
}

// SearchBlogs returns one page of blogs matching the filter
func (s *Server) SearchBlogs(c *fiber.Ctx) error {
	var req SearchBlogsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	blogs, err := s.blogService.Search(c.UserContext(), service.SearchInput{
		Tag:           req.Tag,
		Query:         req.Query,
		Author:        req.Author,
		Page:          req.Page,
		Limit:         req.Limit,
		ExcludeBlogID: req.EliminateBlog,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"blogs": blogs})
}

// SearchBlogsCount returns the total matches for the filter
func (s *Server) SearchBlogsCount(c *fiber.Ctx) error {
	var req SearchBlogsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	count, err := s.blogService.SearchCount(c.UserContext(), service.SearchInput{
		Tag:    req.Tag,
		Query:  req.Query,
		Author: req.Author,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"totalDocs": count})
}
