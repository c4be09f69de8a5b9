package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepository_Create_DuplicateSlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "blogs"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Blog{
		BlogID:   "a-tale-abc12",
		Title:    "A Tale",
		AuthorID: 1,
	})

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_IncrementReads(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	updated := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "total_reads", "total_likes", "draft", "published_at"}).
		AddRow(3, "a-tale-abc12", "A Tale", 7, 42, 5, false, time.Now())
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "blogs" SET "total_reads"=total_reads + $1 WHERE blog_id = $2 RETURNING`)).
		WithArgs(1, "a-tale-abc12").
		WillReturnRows(updated)
	mock.ExpectCommit()

	author := sqlmock.NewRows([]string{"id", "fullname", "username"}).
		AddRow(7, "Ada Lovelace", "ada")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(7, 1).
		WillReturnRows(author)

	blog, err := repo.IncrementReads(context.Background(), "a-tale-abc12")
	require.NoError(t, err)
	assert.Equal(t, int64(42), blog.TotalReads)
	assert.Equal(t, "ada", blog.Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_IncrementReads_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	empty := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "total_reads", "total_likes", "draft", "published_at"})
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE "blogs"`).
		WithArgs(1, "missing").
		WillReturnRows(empty)
	mock.ExpectCommit()

	_, err := repo.IncrementReads(context.Background(), "missing")

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestBlogRepository_CountPublished(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs" WHERE draft = $1`)).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := repo.CountPublished(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Latest_FiltersDrafts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "draft", "published_at"}).
		AddRow(1, "newest-abc12", "Newest", 7, false, time.Now()).
		AddRow(2, "older-def34", "Older", 7, false, time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blogs" WHERE draft = $1 ORDER BY published_at DESC LIMIT $2`)).
		WithArgs(false, 5).
		WillReturnRows(rows)

	author := sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "ada")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(7).
		WillReturnRows(author)

	blogs, err := repo.Latest(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "newest-abc12", blogs[0].BlogID)
	assert.Equal(t, "ada", blogs[0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Trending_Order(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "total_reads", "total_likes", "published_at"}).
		AddRow(1, "hot-abc12", "Hot", 7, 500, 40, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY total_reads DESC, total_likes DESC, published_at DESC LIMIT $2`)).
		WithArgs(false, 5).
		WillReturnRows(rows)

	author := sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "ada")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(7).
		WillReturnRows(author)

	blogs, err := repo.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, int64(500), blogs[0].TotalReads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_CountSearch_Tag(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs" WHERE draft = $1 AND tags @> $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSearch(context.Background(), BlogFilter{Tag: "go"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Search_TagExclusion(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "draft", "published_at"})
	mock.ExpectQuery(regexp.QuoteMeta(`tags @> $2 AND blog_id <> $3`)).
		WillReturnRows(rows)

	blogs, err := repo.Search(context.Background(), BlogFilter{Tag: "go", ExcludeBlogID: "current"}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, blogs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Search_Title(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "blog_id", "title", "author_id", "draft", "published_at"})
	mock.ExpectQuery(regexp.QuoteMeta(`title ILIKE $2`)).
		WithArgs(false, "%gopher%", 5).
		WillReturnRows(rows)

	_, err := repo.Search(context.Background(), BlogFilter{TitleQuery: "gopher"}, 5, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_AggregateAuthorStats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)

	rows := sqlmock.NewRows([]string{"author_id", "total_posts", "total_reads"}).
		AddRow(7, 12, 340).
		AddRow(9, 0, 15)
	mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE draft = false\)`).
		WillReturnRows(rows)

	stats, err := repo.AggregateAuthorStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, uint(7), stats[0].AuthorID)
	assert.Equal(t, int64(12), stats[0].TotalPosts)
	assert.Equal(t, int64(340), stats[0].TotalReads)
	assert.NoError(t, mock.ExpectationsWereMet())
}
