package database

import (
	"context"

	"projecthub/apierr"
	"projecthub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func checkProjectExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apierr.NotFound("Project not found")
	}
	return nil
}

func checkAssigneeExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apierr.NotFound("Assigned user not found")
	}
	return nil
}

func findTask(tx *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	if err := tx.First(&task, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("Task not found")
		}
		return nil, err
	}
	return &task, nil
}

// CreateTask inserts task after checking that its project and assignee exist.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkProjectExists(tx, task.ProjectID); err != nil {
			return err
		}
		if task.AssignedTo != nil {
			if err := checkAssigneeExists(tx, *task.AssignedTo); err != nil {
				return err
			}
		}
		if task.Status == "" {
			task.Status = models.StatusToDo
		}
		return tx.Omit(clause.Associations).Create(task).Error
	})
}

func (s *Store) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Model(&models.Task{})
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	tasks := []models.Task{}
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) TaskByID(ctx context.Context, id uint) (*models.Task, error) {
	return findTask(s.db.WithContext(ctx), id)
}

// UpdateTask loads the task, lets authorize veto the change, validates the
// new assignee and saves. Nothing is written when any step fails.
func (s *Store) UpdateTask(ctx context.Context, id uint, patch models.TaskPatch, authorize func(*models.Task) error) (*models.Task, error) {
	var updated *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, id)
		if err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(task); err != nil {
				return err
			}
		}
		if err := patch.Validate(); err != nil {
			return apierr.Validation(err.Error(), err)
		}
		if assignee, ok := patch.AssignedTo.Get(); ok {
			if err := checkAssigneeExists(tx, assignee); err != nil {
				return err
			}
		}

		patch.Apply(task)
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findTask(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(task).Error
	})
}
