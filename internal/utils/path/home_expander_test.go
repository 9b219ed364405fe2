package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/fieldmigrate/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeDirectory := filepath.Join(string(filepath.Separator), "home", "tester")
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})

	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "tilde_only", candidate: "~", expectedPath: homeDirectory},
		{name: "tilde_prefix", candidate: "~/mappings/values.csv", expectedPath: filepath.Join(homeDirectory, "mappings", "values.csv")},
		{name: "absolute_path", candidate: "/tmp/values.csv", expectedPath: "/tmp/values.csv"},
		{name: "whitespace_trimmed", candidate: "  values.csv  ", expectedPath: "values.csv"},
		{name: "other_user_untouched", candidate: "~other/values.csv", expectedPath: "~other/values.csv"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidate))
		})
	}
}

func TestHomeExpanderProviderFailure(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/values.csv", expander.Expand("~/values.csv"))
}
