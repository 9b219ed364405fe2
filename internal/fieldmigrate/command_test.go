package fieldmigrate_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/credentials"
	"github.com/temirov/fieldmigrate/internal/fieldmigrate"
)

const (
	configuredProjectConstant     = "1200"
	configuredOldFieldConstant    = "3300"
	configuredNewFieldConstant    = "4400"
	configuredMappingFileConstant = "/tmp/configured.csv"
	flagProjectConstant           = "9900"
	flagMappingFileConstant       = "/tmp/flag.csv"
	flagTokenSourceConstant       = "file:/tmp/token"
)

type recordingExecutor struct {
	executionError error
	options        []fieldmigrate.MigrationOptions
}

func (executor *recordingExecutor) Execute(_ context.Context, options fieldmigrate.MigrationOptions) (fieldmigrate.MigrationResult, error) {
	executor.options = append(executor.options, options)
	return fieldmigrate.MigrationResult{}, executor.executionError
}

type recordingResolver struct {
	executor     *recordingExecutor
	resolveError error
	settings     []fieldmigrate.ServiceSettings
}

func (resolver *recordingResolver) Resolve(_ context.Context, _ *zap.Logger, settings fieldmigrate.ServiceSettings) (fieldmigrate.MigrationExecutor, error) {
	resolver.settings = append(resolver.settings, settings)
	if resolver.resolveError != nil {
		return nil, resolver.resolveError
	}
	return resolver.executor, nil
}

func configuredMigration() fieldmigrate.CommandConfiguration {
	configuration := fieldmigrate.DefaultCommandConfiguration()
	configuration.ProjectID = configuredProjectConstant
	configuration.OldFieldID = configuredOldFieldConstant
	configuration.NewFieldID = configuredNewFieldConstant
	configuration.MappingFile = configuredMappingFileConstant
	return configuration
}

func TestMigrateCommandRunScenarios(testInstance *testing.T) {
	testCases := []struct {
		name                string
		configuration       fieldmigrate.CommandConfiguration
		arguments           []string
		expectError         bool
		expectResolve       bool
		expectedOptions     fieldmigrate.MigrationOptions
		expectedTokenSource credentials.TokenSource
	}{
		{
			name:          "uses_configuration_values",
			configuration: configuredMigration(),
			arguments:     []string{},
			expectResolve: true,
			expectedOptions: fieldmigrate.MigrationOptions{
				ProjectID:       configuredProjectConstant,
				OldFieldID:      configuredOldFieldConstant,
				NewFieldID:      configuredNewFieldConstant,
				MappingFilePath: configuredMappingFileConstant,
				UpdateDelay:     fieldmigrate.DefaultUpdateDelay,
			},
			expectedTokenSource: credentials.TokenSource{Type: credentials.TokenSourceTypeEnvironment, Reference: "ASANA_ACCESS_TOKEN"},
		},
		{
			name:          "flags_override_configuration",
			configuration: configuredMigration(),
			arguments: []string{
				"--project", flagProjectConstant,
				"--mapping", flagMappingFileConstant,
				"--token-source", flagTokenSourceConstant,
				"--dry-run",
			},
			expectResolve: true,
			expectedOptions: fieldmigrate.MigrationOptions{
				ProjectID:       flagProjectConstant,
				OldFieldID:      configuredOldFieldConstant,
				NewFieldID:      configuredNewFieldConstant,
				MappingFilePath: flagMappingFileConstant,
				UpdateDelay:     fieldmigrate.DefaultUpdateDelay,
				DryRun:          true,
			},
			expectedTokenSource: credentials.TokenSource{Type: credentials.TokenSourceTypeFile, Reference: "/tmp/token"},
		},
		{
			name:          "missing_required_values_fail_before_resolving",
			configuration: fieldmigrate.DefaultCommandConfiguration(),
			arguments:     []string{"--project", flagProjectConstant},
			expectError:   true,
			expectResolve: false,
		},
		{
			name:          "identical_fields_fail_before_resolving",
			configuration: configuredMigration(),
			arguments:     []string{"--new-field", configuredOldFieldConstant},
			expectError:   true,
			expectResolve: false,
		},
		{
			name:          "unsupported_token_source_fails",
			configuration: configuredMigration(),
			arguments:     []string{"--token-source", "vault:secret"},
			expectError:   true,
			expectResolve: false,
		},
		{
			name:          "positional_arguments_rejected",
			configuration: configuredMigration(),
			arguments:     []string{"unexpected"},
			expectError:   true,
			expectResolve: false,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			executor := &recordingExecutor{}
			resolver := &recordingResolver{executor: executor}
			builder := fieldmigrate.CommandBuilder{
				LoggerProvider: func() *zap.Logger { return zap.NewNop() },
				ConfigurationProvider: func() fieldmigrate.CommandConfiguration {
					return testCase.configuration
				},
				ServiceResolver: resolver,
			}

			command, buildError := builder.Build()
			require.NoError(subtest, buildError)
			command.SetArgs(testCase.arguments)
			command.SetOut(io.Discard)
			command.SetErr(io.Discard)
			command.SilenceUsage = true

			executionError := command.ExecuteContext(context.Background())
			if testCase.expectError {
				require.Error(subtest, executionError)
			} else {
				require.NoError(subtest, executionError)
			}

			if !testCase.expectResolve {
				require.Empty(subtest, resolver.settings)
				require.Empty(subtest, executor.options)
				return
			}

			require.Len(subtest, resolver.settings, 1)
			require.Equal(subtest, testCase.expectedTokenSource, resolver.settings[0].TokenSource)
			require.Len(subtest, executor.options, 1)
			require.Equal(subtest, testCase.expectedOptions, executor.options[0])
		})
	}
}

func TestMigrateCommandPropagatesFailures(testInstance *testing.T) {
	resolveFailure := errors.New("token missing")
	executionFailure := errors.New("fetch failed")

	testCases := []struct {
		name          string
		resolveError  error
		executeError  error
		expectedCause error
	}{
		{name: "resolve_failure", resolveError: resolveFailure, expectedCause: resolveFailure},
		{name: "execution_failure", executeError: executionFailure, expectedCause: executionFailure},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			resolver := &recordingResolver{
				executor:     &recordingExecutor{executionError: testCase.executeError},
				resolveError: testCase.resolveError,
			}
			builder := fieldmigrate.CommandBuilder{
				ConfigurationProvider: configuredMigration,
				ServiceResolver:       resolver,
			}

			command, buildError := builder.Build()
			require.NoError(subtest, buildError)
			command.SetArgs([]string{})
			command.SetOut(io.Discard)
			command.SetErr(io.Discard)

			executionError := command.ExecuteContext(context.Background())
			require.ErrorIs(subtest, executionError, testCase.expectedCause)
		})
	}
}

func TestMigrateCommandKeepsConfiguredDelay(testInstance *testing.T) {
	testInstance.Parallel()

	executor := &recordingExecutor{}
	builder := fieldmigrate.CommandBuilder{
		ConfigurationProvider: func() fieldmigrate.CommandConfiguration {
			configuration := configuredMigration()
			configuration.UpdateDelay = 2 * time.Second
			return configuration
		},
		ServiceResolver: &recordingResolver{executor: executor},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs([]string{})

	require.NoError(testInstance, command.ExecuteContext(context.Background()))
	require.Len(testInstance, executor.options, 1)
	require.Equal(testInstance, 2*time.Second, executor.options[0].UpdateDelay)
}
