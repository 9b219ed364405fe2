package fieldmigrate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/asana"
)

const (
	taskListerMissingMessageConstant   = "task lister not configured"
	fieldCoverageMessageConstant       = "old field coverage"
	noValuesToMigrateWarningConstant   = "no fetched task has the old field set; no updates will occur"
	logFieldTasksWithOldFieldConstant  = "tasks_with_old_field"
	logFieldTasksWithOldValueConstant  = "tasks_with_old_value"
	logFieldTotalTasksConstant         = "total_tasks"
	logFieldOldFieldIdentifierConstant = "old_field_id"
)

// TaskLister returns every task of a project.
type TaskLister interface {
	ListProjectTasks(executionContext context.Context, projectID string) ([]asana.Task, error)
}

// TaskFetcher retrieves the project task list and reports how many tasks carry the old field.
type TaskFetcher struct {
	logger *zap.Logger
	lister TaskLister
}

var errTaskListerMissing = errors.New(taskListerMissingMessageConstant)

// NewTaskFetcher constructs a TaskFetcher.
func NewTaskFetcher(logger *zap.Logger, lister TaskLister) (*TaskFetcher, error) {
	if lister == nil {
		return nil, errTaskListerMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskFetcher{logger: logger, lister: lister}, nil
}

// Fetch lists the tasks of projectID and summarizes oldFieldID coverage. A zero value
// count only produces a warning.
func (fetcher *TaskFetcher) Fetch(executionContext context.Context, projectID string, oldFieldID string) ([]asana.Task, asana.FieldCoverage, error) {
	tasks, listError := fetcher.lister.ListProjectTasks(executionContext, projectID)
	if listError != nil {
		return nil, asana.FieldCoverage{}, listError
	}

	coverage := asana.SummarizeFieldCoverage(tasks, oldFieldID)
	fetcher.logger.Info(
		fieldCoverageMessageConstant,
		zap.String(logFieldOldFieldIdentifierConstant, oldFieldID),
		zap.Int(logFieldTotalTasksConstant, coverage.TotalTasks),
		zap.Int(logFieldTasksWithOldFieldConstant, coverage.TasksWithField),
		zap.Int(logFieldTasksWithOldValueConstant, coverage.TasksWithValue),
	)
	if coverage.TasksWithValue == 0 {
		fetcher.logger.Warn(noValuesToMigrateWarningConstant, zap.String(logFieldOldFieldIdentifierConstant, oldFieldID))
	}

	return tasks, coverage, nil
}
