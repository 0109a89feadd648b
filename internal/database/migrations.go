package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/logging"
)

// AddIndexes adds indexes for the columns the API filters on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_project_id", "project_id"},
		{"tasks", "idx_tasks_assigned_to_id", "assigned_to_id"},
		{"tasks", "idx_tasks_assigned_by_id", "assigned_by_id"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		{"projects", "idx_projects_manager_id", "manager_id"},
		{"projects", "idx_projects_status", "status"},

		{"users", "idx_users_role", "role"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logging.L().Debug().Str("index", idx.name).Str("table", idx.table).Msg("created index")
	}

	return nil
}
