package fieldmigrate

import (
	"strings"
	"time"

	"github.com/temirov/fieldmigrate/internal/asana"
	pathutils "github.com/temirov/fieldmigrate/internal/utils/path"
)

const (
	// DefaultTokenSource names the environment variable holding the access token.
	DefaultTokenSource = "env:ASANA_ACCESS_TOKEN"
	// DefaultUpdateDelay is the fixed pause after every attempted update.
	DefaultUpdateDelay = 200 * time.Millisecond

	configurationKeySeparatorConstant = "."
	tokenSourceKeyConstant            = "token_source"
	projectIdentifierKeyConstant      = "project_id"
	oldFieldIdentifierKeyConstant     = "old_field_id"
	newFieldIdentifierKeyConstant     = "new_field_id"
	mappingFileKeyConstant            = "mapping_file"
	serviceBaseURLKeyConstant         = "service_base_url"
	pageSizeKeyConstant               = "page_size"
	updateDelayKeyConstant            = "update_delay"
	dryRunKeyConstant                 = "dry_run"
)

var migrationConfigurationHomeExpander = pathutils.NewHomeExpander()

// CommandConfiguration captures persisted configuration for the custom field migration.
type CommandConfiguration struct {
	TokenSource    string        `mapstructure:"token_source"`
	ProjectID      string        `mapstructure:"project_id"`
	OldFieldID     string        `mapstructure:"old_field_id"`
	NewFieldID     string        `mapstructure:"new_field_id"`
	MappingFile    string        `mapstructure:"mapping_file"`
	ServiceBaseURL string        `mapstructure:"service_base_url"`
	PageSize       int           `mapstructure:"page_size"`
	UpdateDelay    time.Duration `mapstructure:"update_delay"`
	DryRun         bool          `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns baseline configuration values for the migration.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		TokenSource:    DefaultTokenSource,
		ServiceBaseURL: asana.DefaultBaseURL,
		PageSize:       asana.DefaultPageSize,
		UpdateDelay:    DefaultUpdateDelay,
	}
}

// DefaultConfigurationValues flattens DefaultCommandConfiguration into Viper keys under prefix.
// Required keys are registered with empty values so environment variables bind to them.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := strings.TrimSpace(prefix)
	if len(keyPrefix) > 0 {
		keyPrefix += configurationKeySeparatorConstant
	}

	return map[string]any{
		keyPrefix + tokenSourceKeyConstant:        defaults.TokenSource,
		keyPrefix + projectIdentifierKeyConstant:  defaults.ProjectID,
		keyPrefix + oldFieldIdentifierKeyConstant: defaults.OldFieldID,
		keyPrefix + newFieldIdentifierKeyConstant: defaults.NewFieldID,
		keyPrefix + mappingFileKeyConstant:        defaults.MappingFile,
		keyPrefix + serviceBaseURLKeyConstant:     defaults.ServiceBaseURL,
		keyPrefix + pageSizeKeyConstant:           defaults.PageSize,
		keyPrefix + updateDelayKeyConstant:        defaults.UpdateDelay.String(),
		keyPrefix + dryRunKeyConstant:             defaults.DryRun,
	}
}

// Sanitize trims configured values, expands the mapping file path, and restores defaults
// for unusable numeric values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	if len(sanitized.TokenSource) == 0 {
		sanitized.TokenSource = defaults.TokenSource
	}
	sanitized.ProjectID = strings.TrimSpace(configuration.ProjectID)
	sanitized.OldFieldID = strings.TrimSpace(configuration.OldFieldID)
	sanitized.NewFieldID = strings.TrimSpace(configuration.NewFieldID)
	sanitized.MappingFile = migrationConfigurationHomeExpander.Expand(configuration.MappingFile)
	sanitized.ServiceBaseURL = strings.TrimSpace(configuration.ServiceBaseURL)
	if len(sanitized.ServiceBaseURL) == 0 {
		sanitized.ServiceBaseURL = defaults.ServiceBaseURL
	}
	if sanitized.PageSize <= 0 {
		sanitized.PageSize = defaults.PageSize
	}
	if sanitized.UpdateDelay < 0 {
		sanitized.UpdateDelay = 0
	}

	return sanitized
}
