package fieldmigrate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/asana"
)

const (
	customFieldWriterMissingMessageConstant = "custom field writer not configured"
	taskUpdatedMessageConstant              = "task updated"
	taskUpdateFailedMessageConstant         = "task update failed"
)

// CustomFieldWriter writes one enum custom field on one task.
type CustomFieldWriter interface {
	UpdateTaskCustomField(executionContext context.Context, taskID string, customFieldID string, enumValueID string) error
}

// TaskUpdater applies the new field value to a task and reports the outcome.
type TaskUpdater interface {
	UpdateTask(executionContext context.Context, task asana.Task, newFieldID string, newValueID string) UpdateOutcome
}

// UpdateOutcome reports whether a single task update succeeded. Failure holds the cause
// when Succeeded is false.
type UpdateOutcome struct {
	Succeeded bool
	Failure   error
}

// RemoteTaskUpdater issues task updates through a CustomFieldWriter. Failed updates are
// logged and returned as outcomes, never as errors.
type RemoteTaskUpdater struct {
	logger *zap.Logger
	writer CustomFieldWriter
}

var errCustomFieldWriterMissing = errors.New(customFieldWriterMissingMessageConstant)

// NewRemoteTaskUpdater constructs a RemoteTaskUpdater.
func NewRemoteTaskUpdater(logger *zap.Logger, writer CustomFieldWriter) (*RemoteTaskUpdater, error) {
	if writer == nil {
		return nil, errCustomFieldWriterMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTaskUpdater{logger: logger, writer: writer}, nil
}

// UpdateTask sets newFieldID to newValueID on task.
func (updater *RemoteTaskUpdater) UpdateTask(executionContext context.Context, task asana.Task, newFieldID string, newValueID string) UpdateOutcome {
	updateError := updater.writer.UpdateTaskCustomField(executionContext, task.ID, newFieldID, newValueID)
	if updateError != nil {
		updater.logger.Error(
			taskUpdateFailedMessageConstant,
			zap.String(logFieldTaskIdentifierConstant, task.ID),
			zap.String(logFieldTaskNameConstant, task.Name),
			zap.String(logFieldNewValueConstant, newValueID),
			zap.Error(updateError),
		)
		return UpdateOutcome{Succeeded: false, Failure: updateError}
	}

	updater.logger.Info(
		taskUpdatedMessageConstant,
		zap.String(logFieldTaskIdentifierConstant, task.ID),
		zap.String(logFieldTaskNameConstant, task.Name),
		zap.String(logFieldNewValueConstant, newValueID),
	)
	return UpdateOutcome{Succeeded: true}
}
