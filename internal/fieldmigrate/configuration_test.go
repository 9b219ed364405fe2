package fieldmigrate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fieldmigrate/internal/asana"
	"github.com/temirov/fieldmigrate/internal/fieldmigrate"
)

const configurationPrefixConstant = "tools.migrate"

func TestDefaultCommandConfiguration(testInstance *testing.T) {
	testInstance.Parallel()

	configuration := fieldmigrate.DefaultCommandConfiguration()
	require.Equal(testInstance, fieldmigrate.DefaultTokenSource, configuration.TokenSource)
	require.Equal(testInstance, asana.DefaultBaseURL, configuration.ServiceBaseURL)
	require.Equal(testInstance, asana.DefaultPageSize, configuration.PageSize)
	require.Equal(testInstance, 200*time.Millisecond, configuration.UpdateDelay)
	require.False(testInstance, configuration.DryRun)
}

func TestDefaultConfigurationValuesRegistersEveryKey(testInstance *testing.T) {
	testInstance.Parallel()

	values := fieldmigrate.DefaultConfigurationValues(configurationPrefixConstant)
	require.Equal(testInstance, map[string]any{
		"tools.migrate.token_source":     fieldmigrate.DefaultTokenSource,
		"tools.migrate.project_id":       "",
		"tools.migrate.old_field_id":     "",
		"tools.migrate.new_field_id":     "",
		"tools.migrate.mapping_file":     "",
		"tools.migrate.service_base_url": asana.DefaultBaseURL,
		"tools.migrate.page_size":        asana.DefaultPageSize,
		"tools.migrate.update_delay":     "200ms",
		"tools.migrate.dry_run":          false,
	}, values)

	unprefixed := fieldmigrate.DefaultConfigurationValues("")
	require.Contains(testInstance, unprefixed, "project_id")
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name     string
		input    fieldmigrate.CommandConfiguration
		expected fieldmigrate.CommandConfiguration
	}{
		{
			name: "trims_values",
			input: fieldmigrate.CommandConfiguration{
				TokenSource:    " file:/tmp/token ",
				ProjectID:      " 123 ",
				OldFieldID:     " 456 ",
				NewFieldID:     " 789 ",
				MappingFile:    " /tmp/mapping.csv ",
				ServiceBaseURL: " http://localhost:8080 ",
				PageSize:       50,
				UpdateDelay:    time.Second,
				DryRun:         true,
			},
			expected: fieldmigrate.CommandConfiguration{
				TokenSource:    "file:/tmp/token",
				ProjectID:      "123",
				OldFieldID:     "456",
				NewFieldID:     "789",
				MappingFile:    "/tmp/mapping.csv",
				ServiceBaseURL: "http://localhost:8080",
				PageSize:       50,
				UpdateDelay:    time.Second,
				DryRun:         true,
			},
		},
		{
			name: "restores_defaults",
			input: fieldmigrate.CommandConfiguration{
				PageSize:    -1,
				UpdateDelay: -time.Second,
			},
			expected: fieldmigrate.CommandConfiguration{
				TokenSource:    fieldmigrate.DefaultTokenSource,
				ServiceBaseURL: asana.DefaultBaseURL,
				PageSize:       asana.DefaultPageSize,
				UpdateDelay:    0,
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()
			require.Equal(subtest, testCase.expected, testCase.input.Sanitize())
		})
	}
}
