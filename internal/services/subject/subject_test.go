package subject

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
	"github.com/magabrotheeeer/enrollment-system/internal/storage/memory"
)

// CacheMock реализует интерфейс subject.Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateAndList(t *testing.T) {
	cache := new(CacheMock)
	svc := New(memory.New(), cache, newNoopLogger())

	_, err := svc.Create(context.Background(), models.DummySubject{
		Code: "CS101", Title: "Computer Science", Units: 3, FeePerUnit: 100,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), models.DummySubject{
		Code: "MATH201", Title: "Calculus", Units: 4, FeePerUnit: 80, FacultyID: "faculty-1",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byFaculty, err := svc.List(context.Background(), "faculty-1")
	require.NoError(t, err)
	require.Len(t, byFaculty, 1)
	assert.Equal(t, "MATH201", byFaculty[0].Code)
}

func TestGet_CacheHit(t *testing.T) {
	cache := new(CacheMock)
	svc := New(memory.New(), cache, newNoopLogger())

	cache.On("Get", "subject:64b2f8f1a2c3d4e5f6a7b8c9", mock.Anything).
		Run(func(args mock.Arguments) {
			subject := args.Get(1).(*models.Subject)
			subject.Code = "CS101"
			subject.Units = 3
			subject.FeePerUnit = 100
		}).
		Return(true, nil)

	subject, err := svc.Get(context.Background(), "64b2f8f1a2c3d4e5f6a7b8c9")
	require.NoError(t, err)
	assert.Equal(t, "CS101", subject.Code)
	cache.AssertExpectations(t)
}

func TestGet_CacheMissReadsStoreAndCaches(t *testing.T) {
	store := memory.New()
	cache := new(CacheMock)
	svc := New(store, cache, newNoopLogger())

	id, err := store.Create(context.Background(), storage.CollectionSubject, models.Subject{
		Code: "CS101", Title: "Computer Science", Units: 3, FeePerUnit: 100,
	})
	require.NoError(t, err)

	cache.On("Get", "subject:"+id, mock.Anything).Return(false, nil)
	cache.On("Set", "subject:"+id, mock.Anything, time.Hour).Return(nil)

	subject, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "CS101", subject.Code)
	cache.AssertExpectations(t)
}

func TestGet_CacheSetFailureDoesNotFailRead(t *testing.T) {
	store := memory.New()
	cache := new(CacheMock)
	svc := New(store, cache, newNoopLogger())

	id, err := store.Create(context.Background(), storage.CollectionSubject, models.Subject{
		Code: "CS101", Title: "Computer Science", Units: 3, FeePerUnit: 100,
	})
	require.NoError(t, err)

	cache.On("Get", "subject:"+id, mock.Anything).Return(false, nil)
	cache.On("Set", "subject:"+id, mock.Anything, time.Hour).Return(errors.New("redis down"))

	subject, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "CS101", subject.Code)
}

func TestGet_Errors(t *testing.T) {
	cache := new(CacheMock)
	svc := New(memory.New(), cache, newNoopLogger())

	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Get(context.Background(), "not-a-hex")
	assert.ErrorIs(t, err, storage.ErrInvalidID)

	_, err = svc.Get(context.Background(), "64b2f8f1a2c3d4e5f6a7b8c9")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
