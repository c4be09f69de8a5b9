package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogFilter selects published blogs by exactly one criterion. The service
// layer enforces the tag > query > author precedence before building one.
type BlogFilter struct {
	Tag           string
	TitleQuery    string
	AuthorID      uint
	ExcludeBlogID string
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	IncrementReads(ctx context.Context, blogID string) (*models.Blog, error)
	Latest(ctx context.Context, limit, offset int) ([]models.Blog, error)
	CountPublished(ctx context.Context) (int64, error)
	Trending(ctx context.Context, limit int) ([]models.Blog, error)
	Search(ctx context.Context, filter BlogFilter, limit, offset int) ([]models.Blog, error)
	CountSearch(ctx context.Context, filter BlogFilter) (int64, error)
	AggregateAuthorStats(ctx context.Context) ([]AuthorStats, error)
}

// AuthorStats is one author's recomputed counters, derived from the blogs
// table as source of truth. Used by the reconcile pass.
type AuthorStats struct {
	AuthorID   uint
	TotalPosts int64
	TotalReads int64
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create persists the blog. A duplicate slug surfaces as a conflict via the
// unique index rather than a pre-check.
func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(blog).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("Blog id already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// IncrementReads atomically bumps the read counter and returns the updated
// row in a single UPDATE ... RETURNING statement. The author association is
// loaded afterwards.
func (r *blogRepository) IncrementReads(ctx context.Context, blogID string) (*models.Blog, error) {
	var blog models.Blog
	res := r.db.WithContext(ctx).Model(&blog).
		Clauses(clause.Returning{}).
		Where("blog_id = ?", blogID).
		UpdateColumn("total_reads", gorm.Expr("total_reads + ?", 1))
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Blog", blogID)
	}

	if err := r.db.WithContext(ctx).First(&blog.Author, blog.AuthorID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewInternalError(err)
		}
		// Orphaned author reference: return the blog without author fields.
	}
	return &blog, nil
}

func (r *blogRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Blog{}).Where("draft = ?", false)
}

func (r *blogRepository) Latest(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.published(ctx).
		Preload("Author").
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	if err := r.published(ctx).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Trending orders by reads, then likes, then recency. Only the identifying
// fields are selected; description, banner and content stay out of the list.
func (r *blogRepository) Trending(ctx context.Context, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := r.published(ctx).
		Select("id", "blog_id", "title", "published_at", "author_id", "total_reads", "total_likes").
		Preload("Author").
		Order("total_reads DESC, total_likes DESC, published_at DESC").
		Limit(limit).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

// applyFilter narrows the published set by the single effective criterion.
func applyFilter(q *gorm.DB, filter BlogFilter) *gorm.DB {
	switch {
	case filter.Tag != "":
		q = q.Where("tags @> ?", models.TagList{filter.Tag})
		if filter.ExcludeBlogID != "" {
			q = q.Where("blog_id <> ?", filter.ExcludeBlogID)
		}
	case filter.TitleQuery != "":
		q = q.Where("title ILIKE ?", "%"+filter.TitleQuery+"%")
	case filter.AuthorID != 0:
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	return q
}

func (r *blogRepository) Search(ctx context.Context, filter BlogFilter, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := applyFilter(r.published(ctx), filter).
		Preload("Author").
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) CountSearch(ctx context.Context, filter BlogFilter) (int64, error) {
	var count int64
	if err := applyFilter(r.published(ctx), filter).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// AggregateAuthorStats recomputes per-author post and read totals from the
// blogs table. Draft rows count toward reads but not posts, matching the
// publish-time counter rules.
func (r *blogRepository) AggregateAuthorStats(ctx context.Context) ([]AuthorStats, error) {
	var stats []AuthorStats
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Select("author_id, COUNT(*) FILTER (WHERE draft = false) AS total_posts, COALESCE(SUM(total_reads), 0) AS total_reads").
		Group("author_id").
		Scan(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}
