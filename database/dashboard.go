package database

import (
	"context"
	"time"

	"projecthub/models"

	"gorm.io/gorm"
)

// Summary aggregates project and task counts. A task is overdue when its
// deadline is before now and it is not done.
func (s *Store) Summary(ctx context.Context, now time.Time) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{
		TasksByStatus: make(map[models.TaskStatus]int64, len(models.TaskStatuses)),
	}
	for _, status := range models.TaskStatuses {
		summary.TasksByStatus[status] = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Count(&summary.TotalProjects).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Count(&summary.TotalTasks).Error; err != nil {
			return err
		}

		var rows []struct {
			Status models.TaskStatus
			Count  int64
		}
		if err := tx.Model(&models.Task{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			summary.TasksByStatus[row.Status] = row.Count
		}

		return tx.Model(&models.Task{}).
			Where("deadline IS NOT NULL AND deadline < ? AND status <> ?", now.UTC(), models.StatusDone).
			Count(&summary.OverdueTasks).Error
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
