package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

// store is the one generic CRUD base shared by every entity repository.
// Rows are written whole: a mutation either persists the full record or
// fails, there is no partial-write window for readers in this process.
type store[M any] struct {
	db *gorm.DB
}

func newStore[M any](db *gorm.DB) store[M] {
	return store[M]{db: db}
}

func (s store[M]) insert(ctx context.Context, row *M) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s store[M]) find(ctx context.Context, id string) (*M, error) {
	var row M
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// save rewrites every column of an existing row. Unlike gorm's Save it
// refuses to resurrect a deleted record: a missing row is ErrRecordNotFound.
func (s store[M]) save(ctx context.Context, row *M) error {
	res := s.db.WithContext(ctx).Model(row).Select("*").Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s store[M]) remove(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// list returns rows in insertion order.
func (s store[M]) list(ctx context.Context) ([]M, error) {
	var rows []M
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// nextSequence increments and returns the named counter. Identifiers issued
// this way are never reused within a store lifetime, though the sequence is
// not gap-free across deletions.
func nextSequence(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`INSERT INTO sequences (name, value) VALUES (?, 0) ON CONFLICT (name) DO NOTHING`,
			name,
		).Error; err != nil {
			return err
		}
		return tx.Raw(
			`UPDATE sequences SET value = value + 1 WHERE name = ? RETURNING value`,
			name,
		).Scan(&value).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func unmarshalJSON[T any](raw string, fallback T) T {
	if raw == "" {
		return fallback
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fallback
	}
	return value
}
