package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// PageSize is the fixed page size for latest and search listings.
const PageSize = 5

// MaxSearchUsers caps username search results.
const MaxSearchUsers = 50

const (
	maxDescriptionLen = 200
	maxTags           = 10
	trendingLimit     = 5
)

// PublishInput carries a validated-at-the-boundary create-blog request.
type PublishInput struct {
	AuthorID    uint
	Title       string
	Description string
	Banner      string
	Tags        []string
	Content     models.BlogContent
	Draft       bool
}

// SearchInput selects blogs by one of tag, title query or author username,
// with tag > query > author precedence when several are supplied.
type SearchInput struct {
	Tag           string
	Query         string
	Author        string
	Page          int
	Limit         int
	ExcludeBlogID string
}

// BlogService implements publishing, read accounting and discovery.
type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

// NewBlogService returns a new BlogService.
func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
var whitespaceRun = regexp.MustCompile(`\s+`)

// slugify derives a URL-safe blog id from the title. Characters outside
// [A-Za-z0-9] become spaces, whitespace runs collapse to single hyphens, and
// a random suffix keeps ids collision-resistant without a retry loop.
func slugify(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(title, " ")
	slug = whitespaceRun.ReplaceAllString(strings.TrimSpace(slug), "-")
	return slug + "-" + randomSuffix()
}

// Publish validates and persists a blog, then applies the author-side
// counter update as a best-effort second phase. The blog write is the
// authoritative commit point: a second-phase failure is logged and counted
// but never rolls back the blog or fails the request.
func (s *BlogService) Publish(ctx context.Context, in PublishInput) (string, error) {
	// Validation order is fixed and short-circuits at the first failure.
	if strings.TrimSpace(in.Title) == "" {
		return "", models.NewValidationError("title", "You must provide a title")
	}
	if !in.Draft {
		if in.Description == "" || len(in.Description) > maxDescriptionLen {
			return "", models.NewValidationError("desc",
				fmt.Sprintf("You must provide a blog description under %d characters", maxDescriptionLen))
		}
		if in.Banner == "" {
			return "", models.NewValidationError("banner", "You must provide a blog banner to publish it")
		}
		if len(in.Content.Blocks) == 0 {
			return "", models.NewValidationError("content", "There must be some blog content to publish it")
		}
		if len(in.Tags) == 0 || len(in.Tags) > maxTags {
			return "", models.NewValidationError("tags",
				fmt.Sprintf("Provide tags in order to publish the blog, maximum %d", maxTags))
		}
	}

	tags := make(models.TagList, len(in.Tags))
	for i, t := range in.Tags {
		tags[i] = strings.ToLower(t)
	}

	blog := &models.Blog{
		BlogID:      slugify(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Banner:      in.Banner,
		Tags:        tags,
		Content:     in.Content,
		Draft:       in.Draft,
		AuthorID:    in.AuthorID,
		PublishedAt: time.Now(),
	}

	// First phase: the authoritative content write.
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return "", err
	}

	// Second phase: author counter update, not transactional with the first.
	var postsDelta int64
	if !in.Draft {
		postsDelta = 1
	}
	if err := s.userRepo.ApplyPublish(ctx, in.AuthorID, postsDelta); err != nil {
		observability.SecondaryPhaseFailures.WithLabelValues(observability.PhasePublish).Inc()
		middleware.Logger.ErrorContext(ctx, "author counter update failed after blog commit",
			slog.String("blog_id", blog.BlogID),
			slog.Uint64("author_id", uint64(in.AuthorID)),
			slog.String("error", err.Error()),
		)
	}

	return blog.BlogID, nil
}

// ReadBlog records a read event: the blog counter increment is atomic with
// the fetch, the author counter increment is independent and fire-and-forget.
func (s *BlogService) ReadBlog(ctx context.Context, blogID string) (*models.Blog, error) {
	blog, err := s.blogRepo.IncrementReads(ctx, blogID)
	if err != nil {
		return nil, err
	}
	observability.BlogReadEvents.Inc()

	if err := s.userRepo.IncrementTotalReads(ctx, blog.AuthorID); err != nil {
		observability.SecondaryPhaseFailures.WithLabelValues(observability.PhaseRead).Inc()
		middleware.Logger.ErrorContext(ctx, "author read counter update failed",
			slog.String("blog_id", blogID),
			slog.Uint64("author_id", uint64(blog.AuthorID)),
			slog.String("error", err.Error()),
		)
	}

	return blog, nil
}

// Latest returns one page of published blogs, newest first. Pages beyond the
// available data come back empty rather than failing.
func (s *BlogService) Latest(ctx context.Context, page int) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	return s.blogRepo.Latest(ctx, PageSize, (page-1)*PageSize)
}

// LatestCount returns the total number of published blogs.
func (s *BlogService) LatestCount(ctx context.Context) (int64, error) {
	return s.blogRepo.CountPublished(ctx)
}

// Trending returns the top published blogs by reads, likes, then recency,
// served cache-aside with a short TTL.
func (s *BlogService) Trending(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	err := cache.Aside(ctx, cache.TrendingKey(), &blogs, cache.TrendingTTL, func() error {
		var fetchErr error
		blogs, fetchErr = s.blogRepo.Trending(ctx, trendingLimit)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// buildFilter resolves the single effective criterion with the fixed
// tag > query > author precedence. Combined filtering is intentionally not
// supported.
func (s *BlogService) buildFilter(ctx context.Context, in SearchInput) (repository.BlogFilter, error) {
	switch {
	case in.Tag != "":
		return repository.BlogFilter{
			Tag:           strings.ToLower(in.Tag),
			ExcludeBlogID: in.ExcludeBlogID,
		}, nil
	case in.Query != "":
		return repository.BlogFilter{TitleQuery: in.Query}, nil
	case in.Author != "":
		author, err := s.userRepo.GetByUsername(ctx, in.Author)
		if err != nil {
			return repository.BlogFilter{}, err
		}
		if author == nil {
			return repository.BlogFilter{}, models.NewNotFoundError("User", in.Author)
		}
		return repository.BlogFilter{AuthorID: author.ID}, nil
	default:
		return repository.BlogFilter{}, models.NewValidationError("filter",
			"Provide a tag, query or author to search by")
	}
}

// Search returns one page of published blogs matching the effective filter.
func (s *BlogService) Search(ctx context.Context, in SearchInput) ([]models.Blog, error) {
	filter, err := s.buildFilter(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.Page < 1 {
		in.Page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = PageSize
	}
	return s.blogRepo.Search(ctx, filter, limit, (in.Page-1)*limit)
}

// SearchCount returns the total matches for the effective filter.
func (s *BlogService) SearchCount(ctx context.Context, in SearchInput) (int64, error) {
	filter, err := s.buildFilter(ctx, in)
	if err != nil {
		return 0, err
	}
	return s.blogRepo.CountSearch(ctx, filter)
}

// SearchUsers matches usernames by case-insensitive substring, capped.
func (s *BlogService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("query", "Search query is required")
	}
	return s.userRepo.SearchByUsername(ctx, query, MaxSearchUsers)
}

// GetProfile returns a user's public projection, cache-aside.
func (s *BlogService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, models.NewValidationError("username", "Username is required")
	}

	var user models.User
	err := cache.Aside(ctx, cache.ProfileKey(username), &user, cache.ProfileTTL, func() error {
		found, fetchErr := s.userRepo.GetByUsername(ctx, username)
		if fetchErr != nil {
			return fetchErr
		}
		if found == nil {
			return models.NewNotFoundError("User", username)
		}
		user = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
