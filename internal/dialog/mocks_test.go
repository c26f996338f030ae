package dialog

import (
	"context"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByChatID(ctx context.Context, chatID string) (*domain.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, chatID string) (*domain.User, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetInviteCode(ctx context.Context, userID uuid.UUID, code *string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

func (m *MockUserRepository) FindByInviteCode(ctx context.Context, code string) (*domain.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) LinkPartners(ctx context.Context, userID, partnerID uuid.UUID) error {
	args := m.Called(ctx, userID, partnerID)
	return args.Error(0)
}

func (m *MockUserRepository) UnlinkPartner(ctx context.Context, userID, partnerID uuid.UUID) error {
	args := m.Called(ctx, userID, partnerID)
	return args.Error(0)
}

// MockMovieRepository mocks the MovieRepository interface
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Insert(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	args := m.Called(ctx, movie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) ListByUsers(ctx context.Context, userIDs []uuid.UUID, categories []domain.Category) ([]domain.Movie, error) {
	args := m.Called(ctx, userIDs, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) Get(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) (*domain.Movie, error) {
	args := m.Called(ctx, movieID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) UpdateTitle(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, title string) error {
	args := m.Called(ctx, movieID, userIDs, title)
	return args.Error(0)
}

func (m *MockMovieRepository) UpdateCategory(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID, category domain.Category) error {
	args := m.Called(ctx, movieID, userIDs, category)
	return args.Error(0)
}

func (m *MockMovieRepository) Delete(ctx context.Context, movieID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, movieID, userIDs)
	return args.Error(0)
}

// MockCatalog mocks catalog.Client
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) SearchByTitle(ctx context.Context, query string) ([]domain.ResultItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultItem), args.Error(1)
}

func (m *MockCatalog) Popular(ctx context.Context) ([]domain.ResultItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultItem), args.Error(1)
}

func (m *MockCatalog) TopRated(ctx context.Context) ([]domain.ResultItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultItem), args.Error(1)
}
