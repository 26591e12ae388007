package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/Zandino/Deltapp/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec(`CREATE TABLE clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`).Error)
	return db
}

func TestSaveMissingRowReturnsNotFound(t *testing.T) {
	repo := NewClientRepository(openTestDB(t))

	err := repo.Save(context.Background(), &model.Client{
		ID:        "missing",
		Name:      "Fantôme SARL",
		CreatedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	clients, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clients, "a failed save must not create the row")
}

func TestSaveRewritesExistingRow(t *testing.T) {
	repo := NewClientRepository(openTestDB(t))
	ctx := context.Background()

	original := model.Client{
		ID:        "cl-1",
		Name:      "Durand BTP",
		City:      "Lyon",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Insert(ctx, &original))

	updated := original
	updated.Name = "Durand Bâtiment"
	updated.City = ""
	require.NoError(t, repo.Save(ctx, &updated))

	got, err := repo.Get(ctx, "cl-1")
	require.NoError(t, err)
	assert.Equal(t, "Durand Bâtiment", got.Name)
	assert.Empty(t, got.City, "cleared fields are written back as empty")
}

func TestDeleteMissingRowReturnsNotFound(t *testing.T) {
	repo := NewClientRepository(openTestDB(t))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
