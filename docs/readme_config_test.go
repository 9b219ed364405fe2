package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fieldmigrate/internal/credentials"
	"github.com/temirov/fieldmigrate/internal/fieldmigrate"
	"github.com/temirov/fieldmigrate/internal/mapping"
	"github.com/temirov/fieldmigrate/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	csvFenceStartConstant            = "```csv"
	fenceEndConstant                 = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "readme-config.yaml"
	readmeEnvironmentPrefixConstant  = "READMEFIELDMIGRATE"
	parentDirectoryReferenceConstant = ".."
	expectedMappingEntryCount        = 2
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing fence start"
	missingEndFenceMessageConstant   = "README example missing fence end"
)

type readmeApplicationConfiguration struct {
	Common readmeCommonConfiguration `mapstructure:"common"`
	Tools  readmeToolsConfiguration  `mapstructure:"tools"`
}

type readmeCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

type readmeToolsConfiguration struct {
	Migrate fieldmigrate.CommandConfiguration `mapstructure:"migrate"`
}

func readReadme(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)
	return string(contentBytes)
}

func extractFencedBlock(testInstance *testing.T, contentText string, fenceStart string, anchorIndex int) string {
	testInstance.Helper()

	fenceStartIndex := strings.LastIndex(contentText[:anchorIndex+len(fenceStart)], fenceStart)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	bodyStartIndex := fenceStartIndex + len(fenceStart)
	fenceEndRelativeIndex := strings.Index(contentText[bodyStartIndex:], fenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[bodyStartIndex : bodyStartIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationExampleLoads(testInstance *testing.T) {
	contentText := readReadme(testInstance)

	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)
	snippetContent := extractFencedBlock(testInstance, contentText, yamlFenceStartConstant, headerIndex)

	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(snippetContent), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", readmeEnvironmentPrefixConstant, nil)
	var configuration readmeApplicationConfiguration
	_, loadError := loader.LoadConfiguration(snippetPath, nil, &configuration)
	require.NoError(testInstance, loadError)

	_, loggerError := utils.NewLoggerFactory().CreateLogger(utils.LogLevel(configuration.Common.LogLevel), utils.LogFormat(configuration.Common.LogFormat))
	require.NoError(testInstance, loggerError)

	migration := configuration.Tools.Migrate
	require.NotEmpty(testInstance, migration.ProjectID)
	require.NotEmpty(testInstance, migration.OldFieldID)
	require.NotEmpty(testInstance, migration.NewFieldID)
	require.NotEqual(testInstance, migration.OldFieldID, migration.NewFieldID)
	require.NotEmpty(testInstance, migration.MappingFile)
	require.Equal(testInstance, fieldmigrate.DefaultUpdateDelay, migration.UpdateDelay)
	require.Equal(testInstance, fieldmigrate.DefaultCommandConfiguration().PageSize, migration.PageSize)

	_, tokenSourceError := credentials.ParseTokenSource(migration.TokenSource)
	require.NoError(testInstance, tokenSourceError)
}

func TestReadmeMappingExampleParses(testInstance *testing.T) {
	contentText := readReadme(testInstance)

	csvIndex := strings.Index(contentText, csvFenceStartConstant)
	require.NotEqual(testInstance, -1, csvIndex, missingStartFenceMessageConstant)
	snippetContent := extractFencedBlock(testInstance, contentText, csvFenceStartConstant, csvIndex)

	table, parseError := mapping.Parse(strings.NewReader(snippetContent))
	require.NoError(testInstance, parseError)
	require.Len(testInstance, table, expectedMappingEntryCount)
}
