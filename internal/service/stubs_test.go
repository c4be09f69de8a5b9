package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/identity"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	usernameExistsFn      func(context.Context, string) (bool, error)
	createFn              func(context.Context, *models.User) error
	searchByUsernameFn    func(context.Context, string, int) ([]models.User, error)
	applyPublishFn        func(context.Context, uint, int64) error
	incrementTotalReadsFn func(context.Context, uint) error
	setCountersFn         func(context.Context, uint, int64, int64) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameExistsFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) SearchByUsername(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchByUsernameFn(ctx, query, limit)
}
func (s *userRepoStub) ApplyPublish(ctx context.Context, authorID uint, postsDelta int64) error {
	return s.applyPublishFn(ctx, authorID, postsDelta)
}
func (s *userRepoStub) IncrementTotalReads(ctx context.Context, userID uint) error {
	return s.incrementTotalReadsFn(ctx, userID)
}
func (s *userRepoStub) SetCounters(ctx context.Context, userID uint, totalPosts, totalReads int64) error {
	return s.setCountersFn(ctx, userID, totalPosts, totalReads)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		usernameExistsFn:      func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn:              func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		searchByUsernameFn:    func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
		applyPublishFn:        func(_ context.Context, _ uint, _ int64) error { return nil },
		incrementTotalReadsFn: func(_ context.Context, _ uint) error { return nil },
		setCountersFn:         func(_ context.Context, _ uint, _, _ int64) error { return nil },
	}
}

// blogRepoStub is a stub for repository.BlogRepository.
type blogRepoStub struct {
	createFn               func(context.Context, *models.Blog) error
	incrementReadsFn       func(context.Context, string) (*models.Blog, error)
	latestFn               func(context.Context, int, int) ([]models.Blog, error)
	countPublishedFn       func(context.Context) (int64, error)
	trendingFn             func(context.Context, int) ([]models.Blog, error)
	searchFn               func(context.Context, repository.BlogFilter, int, int) ([]models.Blog, error)
	countSearchFn          func(context.Context, repository.BlogFilter) (int64, error)
	aggregateAuthorStatsFn func(context.Context) ([]repository.AuthorStats, error)
}

func (s *blogRepoStub) Create(ctx context.Context, blog *models.Blog) error {
	return s.createFn(ctx, blog)
}
func (s *blogRepoStub) IncrementReads(ctx context.Context, blogID string) (*models.Blog, error) {
	return s.incrementReadsFn(ctx, blogID)
}
func (s *blogRepoStub) Latest(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	return s.latestFn(ctx, limit, offset)
}
func (s *blogRepoStub) CountPublished(ctx context.Context) (int64, error) {
	return s.countPublishedFn(ctx)
}
func (s *blogRepoStub) Trending(ctx context.Context, limit int) ([]models.Blog, error) {
	return s.trendingFn(ctx, limit)
}
func (s *blogRepoStub) Search(ctx context.Context, filter repository.BlogFilter, limit, offset int) ([]models.Blog, error) {
	return s.searchFn(ctx, filter, limit, offset)
}
func (s *blogRepoStub) CountSearch(ctx context.Context, filter repository.BlogFilter) (int64, error) {
	return s.countSearchFn(ctx, filter)
}
func (s *blogRepoStub) AggregateAuthorStats(ctx context.Context) ([]repository.AuthorStats, error) {
	return s.aggregateAuthorStatsFn(ctx)
}

func noopBlogRepo() *blogRepoStub {
	return &blogRepoStub{
		createFn:         func(_ context.Context, _ *models.Blog) error { return nil },
		incrementReadsFn: func(_ context.Context, _ string) (*models.Blog, error) { return &models.Blog{}, nil },
		latestFn:         func(_ context.Context, _, _ int) ([]models.Blog, error) { return nil, nil },
		countPublishedFn: func(_ context.Context) (int64, error) { return 0, nil },
		trendingFn:       func(_ context.Context, _ int) ([]models.Blog, error) { return nil, nil },
		searchFn: func(_ context.Context, _ repository.BlogFilter, _, _ int) ([]models.Blog, error) {
			return nil, nil
		},
		countSearchFn:          func(_ context.Context, _ repository.BlogFilter) (int64, error) { return 0, nil },
		aggregateAuthorStatsFn: func(_ context.Context) ([]repository.AuthorStats, error) { return nil, nil },
	}
}

// verifierStub is a stub for identity.Verifier.
type verifierStub struct {
	verifyFn func(context.Context, string) (*identity.Profile, error)
}

func (s *verifierStub) Verify(ctx context.Context, accessToken string) (*identity.Profile, error) {
	return s.verifyFn(ctx, accessToken)
}

// assertValidationError asserts that err is an AppError with code
// VALIDATION_ERROR on the expected field.
func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, field, appErr.Field)
}

// assertErrorCode asserts that err is an AppError carrying the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
