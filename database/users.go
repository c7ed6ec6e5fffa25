package database

import (
	"context"
	"errors"

	"projecthub/apierr"
	"projecthub/models"

	"gorm.io/gorm"
)

const emailTaken = "Email already registered"

func createUser(tx *gorm.DB, user *models.User) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apierr.Conflict(emailTaken)
	}

	if err := tx.Omit("Projects").Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierr.Conflict(emailTaken)
		}
		return err
	}
	return nil
}

// CreateUser inserts user, rejecting a taken email with a Conflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createUser(tx, user)
	})
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user. Tasks assigned to them become unassigned and
// their project memberships are dropped; nothing else is deleted.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if isNotFound(err) {
				return apierr.NotFound("User not found")
			}
			return err
		}

		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", user.ID).Update("assigned_to", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Projects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
