package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// setupStorage поднимает MongoDB в контейнере и возвращает подключенное хранилище.
func setupStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
	}

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		_ = mongoContainer.Terminate(context.Background())
	})

	var port nat.Port
	port, err = mongoContainer.MappedPort(ctx, "27017")
	require.NoError(t, err, "failed to get port")

	uri := fmt.Sprintf("mongodb://localhost:%s", port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var st *Storage
	for range 10 {
		st, err = New(ctx, uri, "testdb", 10*time.Second)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")
	t.Cleanup(func() {
		_ = st.Close(context.Background())
	})

	require.NoError(t, st.EnsureIndexes(ctx), "failed to ensure indexes")
	return st
}

func TestStorage_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test requires docker")
	}

	st := setupStorage(t)
	ctx := context.Background()

	t.Run("создание и чтение записи", func(t *testing.T) {
		id, err := st.Create(ctx, storage.CollectionSubject, models.Subject{
			Code: "CS101", Title: "Computer Science", Units: 3, FeePerUnit: 100,
		})
		require.NoError(t, err)

		var subject models.Subject
		err = st.FindOne(ctx, storage.CollectionSubject, storage.Filter{"_id": id}, &subject)
		require.NoError(t, err)
		assert.Equal(t, "CS101", subject.Code)
		assert.Equal(t, id, subject.ID.Hex())
	})

	t.Run("некорректный id", func(t *testing.T) {
		var subject models.Subject
		err := st.FindOne(ctx, storage.CollectionSubject, storage.Filter{"_id": "not-a-hex"}, &subject)
		assert.ErrorIs(t, err, storage.ErrInvalidID)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		var subject models.Subject
		err := st.FindOne(ctx, storage.CollectionSubject, storage.Filter{"_id": "64b2f8f1a2c3d4e5f6a7b8c9"}, &subject)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("уникальный email", func(t *testing.T) {
		_, err := st.Create(ctx, storage.CollectionUser, models.User{Email: "ivan@example.com", Name: "Ivan"})
		require.NoError(t, err)
		_, err = st.Create(ctx, storage.CollectionUser, models.User{Email: "ivan@example.com", Name: "Another"})
		assert.ErrorIs(t, err, storage.ErrEmailTaken)
	})

	t.Run("уникальное зачисление", func(t *testing.T) {
		enrollment := models.Enrollment{StudentID: "student-1", SubjectID: "subj-1", Semester: "2025-1", Status: "enrolled"}
		_, err := st.Create(ctx, storage.CollectionEnrollment, enrollment)
		require.NoError(t, err)
		_, err = st.Create(ctx, storage.CollectionEnrollment, enrollment)
		assert.ErrorIs(t, err, storage.ErrDuplicateEnrollment)
	})

	t.Run("фильтрация списка", func(t *testing.T) {
		_, err := st.Create(ctx, storage.CollectionEnrollment, models.Enrollment{
			StudentID: "student-2", SubjectID: "subj-1", Semester: "2025-1", Status: "enrolled",
		})
		require.NoError(t, err)

		var enrollments []models.Enrollment
		err = st.FindMany(ctx, storage.CollectionEnrollment, storage.Filter{"student_id": "student-2"}, &enrollments)
		require.NoError(t, err)
		require.Len(t, enrollments, 1)
		assert.Equal(t, "student-2", enrollments[0].StudentID)
	})

	t.Run("обновление полей и добавление строк счета", func(t *testing.T) {
		id, err := st.Create(ctx, storage.CollectionBill, models.Bill{
			StudentID: "student-1", Semester: "2025-1",
			Lines:  []models.BillLine{},
			Status: models.BillStatusUnpaid,
		})
		require.NoError(t, err)

		err = st.UpdatePush(ctx, storage.CollectionBill, id, "lines", models.BillLine{
			SubjectID: "subj-1", Description: "Tuition for subject", Amount: 300,
		})
		require.NoError(t, err)

		err = st.UpdateSet(ctx, storage.CollectionBill, id, map[string]any{
			"total": 300.0, "status": models.BillStatusUnpaid, "updated_at": time.Now().UTC(),
		})
		require.NoError(t, err)

		var bill models.Bill
		err = st.FindOne(ctx, storage.CollectionBill, storage.Filter{"_id": id}, &bill)
		require.NoError(t, err)
		require.Len(t, bill.Lines, 1)
		assert.Equal(t, 300.0, bill.Lines[0].Amount)
		assert.Equal(t, 300.0, bill.Total)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, st.Ping(ctx))
	})
}
