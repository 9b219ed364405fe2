package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Print the effective migration configuration"
	configurationCommandLongDescriptionConstant  = "config renders the tools.migrate section after embedded defaults, the configuration file, and environment overrides are applied. The token source is shown; the token itself is never read."
	configurationRenderErrorTemplateConstant     = "unable to render configuration: %w"
	configurationWriteErrorTemplateConstant      = "unable to write configuration: %w"
)

type migrationConfigurationView struct {
	TokenSource    string `yaml:"token_source"`
	ProjectID      string `yaml:"project_id"`
	OldFieldID     string `yaml:"old_field_id"`
	NewFieldID     string `yaml:"new_field_id"`
	MappingFile    string `yaml:"mapping_file"`
	ServiceBaseURL string `yaml:"service_base_url"`
	PageSize       int    `yaml:"page_size"`
	UpdateDelay    string `yaml:"update_delay"`
	DryRun         bool   `yaml:"dry_run"`
}

type toolsConfigurationView struct {
	Migrate migrationConfigurationView `yaml:"migrate"`
}

type configurationView struct {
	Tools toolsConfigurationView `yaml:"tools"`
}

func (application *Application) buildConfigurationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		Long:  configurationCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			renderedConfiguration, renderError := application.renderMigrationConfiguration()
			if renderError != nil {
				return renderError
			}
			if _, writeError := command.OutOrStdout().Write(renderedConfiguration); writeError != nil {
				return fmt.Errorf(configurationWriteErrorTemplateConstant, writeError)
			}
			return nil
		},
	}
}

func (application *Application) renderMigrationConfiguration() ([]byte, error) {
	migration := application.configuration.Tools.Migrate.Sanitize()
	view := configurationView{
		Tools: toolsConfigurationView{
			Migrate: migrationConfigurationView{
				TokenSource:    migration.TokenSource,
				ProjectID:      migration.ProjectID,
				OldFieldID:     migration.OldFieldID,
				NewFieldID:     migration.NewFieldID,
				MappingFile:    migration.MappingFile,
				ServiceBaseURL: migration.ServiceBaseURL,
				PageSize:       migration.PageSize,
				UpdateDelay:    migration.UpdateDelay.String(),
				DryRun:         migration.DryRun,
			},
		},
	}

	renderedConfiguration, marshalError := yaml.Marshal(view)
	if marshalError != nil {
		return nil, fmt.Errorf(configurationRenderErrorTemplateConstant, marshalError)
	}
	return renderedConfiguration, nil
}
