package models

type DashboardSummary struct {
	TotalProjects int64                `json:"total_projects"`
	TotalTasks    int64                `json:"total_tasks"`
	TasksByStatus map[TaskStatus]int64 `json:"tasks_by_status"`
	OverdueTasks  int64                `json:"overdue_tasks"`
}
