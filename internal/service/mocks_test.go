package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/msomdec/notekeeper/internal/domain"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepoMock) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepoMock) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type NoteRepoMock struct {
	mock.Mock
}

func (m *NoteRepoMock) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepoMock) ListActive(ctx context.Context, order domain.NoteOrder) ([]domain.Note, error) {
	args := m.Called(ctx, order)
	if v := args.Get(0); v != nil {
		return v.([]domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepoMock) QueryActive(ctx context.Context, filter domain.NoteFilter) ([]domain.Note, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Note), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepoMock) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *NoteRepoMock) Update(ctx context.Context, note *domain.Note) (int64, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NoteRepoMock) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, id, at)
	return args.Get(0).(int64), args.Error(1)
}
