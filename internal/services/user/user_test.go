package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
	"github.com/magabrotheeeer/enrollment-system/internal/storage/memory"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegister_Success(t *testing.T) {
	svc := New(memory.New(), newNoopLogger())

	id, err := svc.Register(context.Background(), models.DummyUser{
		Name:     "Ivan Petrov",
		Email:    "ivan@example.com",
		Role:     models.RoleStudent,
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	users, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ivan@example.com", users[0].Email)
	assert.True(t, users[0].IsActive, "новый пользователь активен по умолчанию")
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := New(memory.New(), newNoopLogger())

	req := models.DummyUser{
		Name:     "Ivan Petrov",
		Email:    "ivan@example.com",
		Role:     models.RoleStudent,
		Password: "secret",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Another Ivan"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestList_FilterByRole(t *testing.T) {
	svc := New(memory.New(), newNoopLogger())

	for _, u := range []models.DummyUser{
		{Name: "Student One", Email: "s1@example.com", Role: models.RoleStudent, Password: "pw"},
		{Name: "Student Two", Email: "s2@example.com", Role: models.RoleStudent, Password: "pw"},
		{Name: "Cashier", Email: "c1@example.com", Role: models.RoleCashier, Password: "pw"},
	} {
		_, err := svc.Register(context.Background(), u)
		require.NoError(t, err)
	}

	students, err := svc.List(context.Background(), models.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	cashiers, err := svc.List(context.Background(), models.RoleCashier)
	require.NoError(t, err)
	assert.Len(t, cashiers, 1)
}

func TestLogin(t *testing.T) {
	svc := New(memory.New(), newNoopLogger())

	_, err := svc.Register(context.Background(), models.DummyUser{
		Name:     "Ivan Petrov",
		Email:    "ivan@example.com",
		Role:     models.RoleAdmin,
		Password: "secret",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"успешный вход", "ivan@example.com", "secret", nil},
		{"неверный пароль", "ivan@example.com", "wrong", storage.ErrInvalidCredentials},
		{"неизвестный email", "nobody@example.com", "secret", storage.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ivan Petrov", user.Name)
			assert.Equal(t, models.RoleAdmin, user.Role)
		})
	}
}
