package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "userhub/backend/internal/models/gorm"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

type UserRepositoryGORM struct {
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{db: db}
}

// List returns all users, newest first
func (r *UserRepositoryGORM) List(ctx context.Context) ([]gormModels.User, error) {
	var users []gormModels.User

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by primary key
func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// Create inserts user and fills in its ID and timestamps
func (r *UserRepositoryGORM) Create(ctx context.Context, user *gormModels.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := emailAvailable(tx, user.Email, ""); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return translate(err, "failed to create user")
		}
		return nil
	})
}

// Update overwrites name and email of an existing user and returns the stored row
func (r *UserRepositoryGORM) Update(ctx context.Context, id, name, email string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to fetch user: %w", err)
		}

		if err := emailAvailable(tx, email, id); err != nil {
			return err
		}

		user.Name = name
		user.Email = email
		if err := tx.Save(&user).Error; err != nil {
			return translate(err, "failed to update user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Delete removes a user by ID
func (r *UserRepositoryGORM) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&gormModels.User{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// emailAvailable fails with ErrEmailTaken if another user owns email
func emailAvailable(tx *gorm.DB, email, exceptID string) error {
	var count int64

	q := tx.Model(&gormModels.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

// translate maps a unique violation that slipped past emailAvailable
func translate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return fmt.Errorf("%s: %w", msg, err)
}
