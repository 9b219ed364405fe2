package fieldmigrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/credentials"
)

const (
	commandUseConstant                      = "migrate"
	commandShortDescriptionConstant         = "Copy enum values from an old custom field to a new one"
	commandLongDescriptionConstant          = "migrate fetches every task of a project, translates the selected option of the old custom field through a CSV mapping (old_value,new_value), and writes the result to the new custom field one task at a time."
	unexpectedArgumentsErrorMessageConstant = "migrate does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "field migration failed: %w"
	tokenSourceParseErrorTemplateConstant   = "invalid token source: %w"
	projectFlagNameConstant                 = "project"
	projectFlagUsageConstant                = "Project identifier whose tasks are migrated"
	oldFieldFlagNameConstant                = "old-field"
	oldFieldFlagUsageConstant               = "Identifier of the custom field to read"
	newFieldFlagNameConstant                = "new-field"
	newFieldFlagUsageConstant               = "Identifier of the custom field to write"
	mappingFlagNameConstant                 = "mapping"
	mappingFlagUsageConstant                = "Path to the CSV file with old_value,new_value columns"
	tokenSourceFlagNameConstant             = "token-source"
	tokenSourceFlagUsageConstant            = "Access token source (env:NAME or file:/path)"
	dryRunFlagNameConstant                  = "dry-run"
	dryRunFlagUsageConstant                 = "Log the planned updates without sending them"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current migration configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the migrate command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ServiceResolver       ServiceResolver
}

type commandSettings struct {
	options  MigrationOptions
	settings ServiceSettings
}

// Build constructs the migrate command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(projectFlagNameConstant, "", projectFlagUsageConstant)
	command.Flags().String(oldFieldFlagNameConstant, "", oldFieldFlagUsageConstant)
	command.Flags().String(newFieldFlagNameConstant, "", newFieldFlagUsageConstant)
	command.Flags().String(mappingFlagNameConstant, "", mappingFlagUsageConstant)
	command.Flags().String(tokenSourceFlagNameConstant, "", tokenSourceFlagUsageConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	resolved, settingsError := builder.resolveSettings(command)
	if settingsError != nil {
		return settingsError
	}

	if validationError := validateOptions(resolved.options); validationError != nil {
		return validationError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	logger := builder.resolveLogger()
	serviceResolver := builder.ServiceResolver
	if serviceResolver == nil {
		serviceResolver = &DefaultServiceResolver{}
	}

	executor, resolveError := serviceResolver.Resolve(executionContext, logger, resolved.settings)
	if resolveError != nil {
		return resolveError
	}

	if _, executionError := executor.Execute(executionContext, resolved.options); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) resolveSettings(command *cobra.Command) (commandSettings, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: projectFlagNameConstant, target: &configuration.ProjectID},
		{flagName: oldFieldFlagNameConstant, target: &configuration.OldFieldID},
		{flagName: newFieldFlagNameConstant, target: &configuration.NewFieldID},
		{flagName: mappingFlagNameConstant, target: &configuration.MappingFile},
		{flagName: tokenSourceFlagNameConstant, target: &configuration.TokenSource},
	}
	for _, override := range stringOverrides {
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return commandSettings{}, flagError
		}
		if len(strings.TrimSpace(flagValue)) > 0 {
			*override.target = flagValue
		}
	}

	if command.Flags().Changed(dryRunFlagNameConstant) {
		dryRunValue, dryRunError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunError != nil {
			return commandSettings{}, dryRunError
		}
		configuration.DryRun = dryRunValue
	}

	configuration = configuration.Sanitize()

	tokenSource, tokenSourceError := credentials.ParseTokenSource(configuration.TokenSource)
	if tokenSourceError != nil {
		return commandSettings{}, fmt.Errorf(tokenSourceParseErrorTemplateConstant, tokenSourceError)
	}

	return commandSettings{
		options: MigrationOptions{
			ProjectID:       configuration.ProjectID,
			OldFieldID:      configuration.OldFieldID,
			NewFieldID:      configuration.NewFieldID,
			MappingFilePath: configuration.MappingFile,
			UpdateDelay:     configuration.UpdateDelay,
			DryRun:          configuration.DryRun,
		},
		settings: ServiceSettings{
			TokenSource:    tokenSource,
			ServiceBaseURL: configuration.ServiceBaseURL,
			PageSize:       configuration.PageSize,
		},
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
