package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type UserRepository struct {
	store[userRow]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{store: newStore[userRow](db), db: db}
}

type userRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email"`
	Name         string    `gorm:"column:name"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

func toUserRow(u *model.User) userRow {
	return userRow{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func toUserModel(row userRow) model.User {
	return model.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Phone:        row.Phone,
		Role:         model.UserRole(row.Role),
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	row := toUserRow(u)
	return r.insert(ctx, &row)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*model.User, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	u := toUserModel(*row)
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, err
	}
	u := toUserModel(row)
	return &u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *model.User) error {
	row := toUserRow(u)
	return r.save(ctx, &row)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.User, 0, len(rows))
	for _, row := range rows {
		result = append(result, toUserModel(row))
	}
	return result, nil
}
