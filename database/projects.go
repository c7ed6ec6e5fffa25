package database

import (
	"context"

	"projecthub/apierr"
	"projecthub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// resolveMembers loads the users with the given ids. Ids that match no user
// are dropped.
func resolveMembers(tx *gorm.DB, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := tx.Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func preloadMembers(tx *gorm.DB) *gorm.DB {
	return tx.Preload("TeamMembers", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.id")
	})
}

func findProject(tx *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	if err := preloadMembers(tx).First(&project, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// CreateProject inserts project with the members among memberIDs that exist.
func (s *Store) CreateProject(ctx context.Context, project *models.Project, memberIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members, err := resolveMembers(tx, memberIDs)
		if err != nil {
			return err
		}
		project.TeamMembers = members
		if err := tx.Omit("TeamMembers.*", "Tasks").Create(project).Error; err != nil {
			return err
		}
		loaded, err := findProject(tx, project.ID)
		if err != nil {
			return err
		}
		*project = *loaded
		return nil
	})
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := preloadMembers(s.db.WithContext(ctx)).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) ProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	return findProject(s.db.WithContext(ctx), id)
}

// UpdateProject applies patch. A supplied membership list replaces the whole
// set; updated_at is refreshed on every update.
func (s *Store) UpdateProject(ctx context.Context, id uint, patch models.ProjectPatch) (*models.Project, error) {
	var updated *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := findProject(tx, id)
		if err != nil {
			return err
		}

		patch.Apply(project)
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}

		if ids, ok := patch.MemberIDs(); ok {
			members, err := resolveMembers(tx, ids)
			if err != nil {
				return err
			}
			association := tx.Model(project).Association("TeamMembers")
			if len(members) == 0 {
				err = association.Clear()
			} else {
				err = association.Replace(members)
			}
			if err != nil {
				return err
			}
		}

		updated, err = findProject(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes the project together with its tasks and membership
// rows.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if isNotFound(err) {
				return apierr.NotFound("Project not found")
			}
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Association("TeamMembers").Clear(); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
