package fieldmigrate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/asana"
	"github.com/temirov/fieldmigrate/internal/mapping"
)

const (
	requiredValueMessageConstant        = "value required"
	distinctFieldsMessageConstant       = "must differ from old_field_id"
	invalidInputErrorTemplateConstant   = "%s: %s"
	taskUpdaterMissingMessageConstant   = "task updater not configured"
	mappingLoadErrorTemplateConstant    = "mapping load failed: %w"
	taskFetchErrorTemplateConstant      = "task fetch failed: %w"
	updatePauseErrorTemplateConstant    = "migration interrupted: %w"
	mappingLoadedMessageConstant        = "mapping loaded"
	migrationStartedMessageConstant     = "migration started"
	migrationCompletedMessageConstant   = "migration completed"
	skipNoCustomFieldsMessageConstant   = "skipping task without custom fields"
	skipOldFieldAbsentMessageConstant   = "skipping task without old field"
	skipOldFieldUnsetMessageConstant    = "skipping task with unset old field"
	skipValueUnmappedMessageConstant    = "skipping task with unmapped old value"
	dryRunUpdateMessageConstant         = "dry run: task would be updated"
	logFieldTaskIdentifierConstant      = "task_id"
	logFieldTaskNameConstant            = "task_name"
	logFieldOldValueConstant            = "old_value"
	logFieldNewValueConstant            = "new_value"
	logFieldNewFieldIdentifierConstant  = "new_field_id"
	logFieldProjectIdentifierConstant   = "project_id"
	logFieldMappingFileConstant         = "mapping_file"
	logFieldMappingEntriesConstant      = "mapping_entries"
	logFieldDryRunConstant              = "dry_run"
	logFieldTasksFetchedConstant        = "tasks_fetched"
	logFieldAttemptedUpdatesConstant    = "attempted_updates"
	logFieldSucceededUpdatesConstant    = "succeeded_updates"
	logFieldPlannedUpdatesConstant      = "planned_updates"
	logFieldSkippedTasksConstant        = "skipped_tasks"
	projectIdentifierFieldNameConstant  = "project_id"
	oldFieldIdentifierFieldNameConstant = "old_field_id"
	newFieldIdentifierFieldNameConstant = "new_field_id"
	mappingFilePathFieldNameConstant    = "mapping_file"
)

// InvalidInputError describes migration option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// MappingLoader reads the old-to-new mapping table from a file path.
type MappingLoader func(filePath string) (mapping.Table, error)

// ServiceDependencies describes the collaborators of Service.
type ServiceDependencies struct {
	Logger        *zap.Logger
	TaskLister    TaskLister
	TaskUpdater   TaskUpdater
	MappingLoader MappingLoader
	Pauser        Pauser
}

// MigrationOptions configures one migration run.
type MigrationOptions struct {
	ProjectID       string
	OldFieldID      string
	NewFieldID      string
	MappingFilePath string
	UpdateDelay     time.Duration
	DryRun          bool
}

// SkipCounts tallies tasks that were not updated, by reason.
type SkipCounts struct {
	NoCustomFields int
	OldFieldAbsent int
	OldFieldUnset  int
	ValueNotMapped int
}

// Total returns the number of skipped tasks.
func (counts SkipCounts) Total() int {
	return counts.NoCustomFields + counts.OldFieldAbsent + counts.OldFieldUnset + counts.ValueNotMapped
}

// MigrationResult holds the counters of a single run.
type MigrationResult struct {
	Coverage         asana.FieldCoverage
	Skipped          SkipCounts
	PlannedUpdates   int
	AttemptedUpdates int
	SucceededUpdates int
}

// Service drives the migration: it loads the mapping, fetches the project tasks once,
// and visits each task sequentially in fetch order.
type Service struct {
	logger        *zap.Logger
	fetcher       *TaskFetcher
	updater       TaskUpdater
	mappingLoader MappingLoader
	pause         Pauser
}

var errTaskUpdaterMissing = errors.New(taskUpdaterMissingMessageConstant)

// NewService constructs a Service with the provided dependencies. MappingLoader defaults
// to mapping.LoadFile and Pauser to ContextPause.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.TaskUpdater == nil {
		return nil, errTaskUpdaterMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher, fetcherError := NewTaskFetcher(logger, dependencies.TaskLister)
	if fetcherError != nil {
		return nil, fetcherError
	}

	mappingLoader := dependencies.MappingLoader
	if mappingLoader == nil {
		mappingLoader = mapping.LoadFile
	}

	pause := dependencies.Pauser
	if pause == nil {
		pause = ContextPause
	}

	return &Service{
		logger:        logger,
		fetcher:       fetcher,
		updater:       dependencies.TaskUpdater,
		mappingLoader: mappingLoader,
		pause:         pause,
	}, nil
}

// Execute performs one migration run and returns its counters. Mapping and fetch
// failures abort the run; individual update failures are only counted.
func (service *Service) Execute(executionContext context.Context, options MigrationOptions) (MigrationResult, error) {
	if validationError := validateOptions(options); validationError != nil {
		return MigrationResult{}, validationError
	}

	table, loadError := service.mappingLoader(options.MappingFilePath)
	if loadError != nil {
		return MigrationResult{}, fmt.Errorf(mappingLoadErrorTemplateConstant, loadError)
	}
	service.logger.Info(
		mappingLoadedMessageConstant,
		zap.String(logFieldMappingFileConstant, options.MappingFilePath),
		zap.Int(logFieldMappingEntriesConstant, len(table)),
	)

	service.logger.Info(
		migrationStartedMessageConstant,
		zap.String(logFieldProjectIdentifierConstant, options.ProjectID),
		zap.String(logFieldOldFieldIdentifierConstant, options.OldFieldID),
		zap.String(logFieldNewFieldIdentifierConstant, options.NewFieldID),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	tasks, coverage, fetchError := service.fetcher.Fetch(executionContext, options.ProjectID, options.OldFieldID)
	if fetchError != nil {
		return MigrationResult{}, fmt.Errorf(taskFetchErrorTemplateConstant, fetchError)
	}

	result := MigrationResult{Coverage: coverage}
	for _, task := range tasks {
		decision := classifyTask(task, options.OldFieldID, table)
		if decision.disposition != dispositionUpdate {
			service.recordSkip(&result, task, decision)
			continue
		}

		if options.DryRun {
			result.PlannedUpdates++
			service.logger.Info(
				dryRunUpdateMessageConstant,
				zap.String(logFieldTaskIdentifierConstant, task.ID),
				zap.String(logFieldTaskNameConstant, task.Name),
				zap.String(logFieldOldValueConstant, decision.oldValue),
				zap.String(logFieldNewValueConstant, decision.newValue),
			)
			continue
		}

		result.AttemptedUpdates++
		outcome := service.updater.UpdateTask(executionContext, task, options.NewFieldID, decision.newValue)
		if outcome.Succeeded {
			result.SucceededUpdates++
		}

		if pauseError := service.pause(executionContext, options.UpdateDelay); pauseError != nil {
			service.logCompletion(result)
			return result, fmt.Errorf(updatePauseErrorTemplateConstant, pauseError)
		}
	}

	service.logCompletion(result)
	return result, nil
}

func (service *Service) recordSkip(result *MigrationResult, task asana.Task, decision taskDecision) {
	taskFields := []zap.Field{
		zap.String(logFieldTaskIdentifierConstant, task.ID),
		zap.String(logFieldTaskNameConstant, task.Name),
	}

	switch decision.disposition {
	case dispositionNoCustomFields:
		result.Skipped.NoCustomFields++
		service.logger.Info(skipNoCustomFieldsMessageConstant, taskFields...)
	case dispositionOldFieldAbsent:
		result.Skipped.OldFieldAbsent++
		service.logger.Debug(skipOldFieldAbsentMessageConstant, taskFields...)
	case dispositionOldFieldUnset:
		result.Skipped.OldFieldUnset++
		service.logger.Info(skipOldFieldUnsetMessageConstant, taskFields...)
	case dispositionValueNotMapped:
		result.Skipped.ValueNotMapped++
		service.logger.Info(skipValueUnmappedMessageConstant, append(taskFields, zap.String(logFieldOldValueConstant, decision.oldValue))...)
	}
}

func (service *Service) logCompletion(result MigrationResult) {
	service.logger.Info(
		migrationCompletedMessageConstant,
		zap.Int(logFieldTasksFetchedConstant, result.Coverage.TotalTasks),
		zap.Int(logFieldAttemptedUpdatesConstant, result.AttemptedUpdates),
		zap.Int(logFieldSucceededUpdatesConstant, result.SucceededUpdates),
		zap.Int(logFieldPlannedUpdatesConstant, result.PlannedUpdates),
		zap.Int(logFieldSkippedTasksConstant, result.Skipped.Total()),
	)
}

func validateOptions(options MigrationOptions) error {
	requiredValues := []struct {
		fieldName string
		value     string
	}{
		{fieldName: projectIdentifierFieldNameConstant, value: options.ProjectID},
		{fieldName: oldFieldIdentifierFieldNameConstant, value: options.OldFieldID},
		{fieldName: newFieldIdentifierFieldNameConstant, value: options.NewFieldID},
		{fieldName: mappingFilePathFieldNameConstant, value: options.MappingFilePath},
	}
	for _, requiredValue := range requiredValues {
		if len(strings.TrimSpace(requiredValue.value)) == 0 {
			return InvalidInputError{FieldName: requiredValue.fieldName, Message: requiredValueMessageConstant}
		}
	}

	if strings.TrimSpace(options.OldFieldID) == strings.TrimSpace(options.NewFieldID) {
		return InvalidInputError{FieldName: newFieldIdentifierFieldNameConstant, Message: distinctFieldsMessageConstant}
	}

	return nil
}
