package asana_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fieldmigrate/internal/asana"
)

func TestTaskFindCustomFieldReturnsFirstMatch(testInstance *testing.T) {
	task := asana.Task{
		ID: "1",
		CustomFields: []asana.CustomField{
			{ID: "other", EnumValue: &asana.EnumValue{ID: "x"}},
			{ID: "old", EnumValue: &asana.EnumValue{ID: "first"}},
			{ID: "old", EnumValue: &asana.EnumValue{ID: "second"}},
		},
	}

	customField, found := task.FindCustomField("old")
	require.True(testInstance, found)
	selectedValue, selected := customField.SelectedValueID()
	require.True(testInstance, selected)
	require.Equal(testInstance, "first", selectedValue)

	_, found = task.FindCustomField("missing")
	require.False(testInstance, found)
}

func TestCustomFieldSelectedValueID(testInstance *testing.T) {
	testCases := []struct {
		name          string
		field         asana.CustomField
		expectedValue string
		expectedFound bool
	}{
		{name: "unset", field: asana.CustomField{ID: "old"}},
		{name: "empty_identifier", field: asana.CustomField{ID: "old", EnumValue: &asana.EnumValue{}}},
		{name: "selected", field: asana.CustomField{ID: "old", EnumValue: &asana.EnumValue{ID: "101"}}, expectedValue: "101", expectedFound: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			selectedValue, found := testCase.field.SelectedValueID()
			require.Equal(testInstance, testCase.expectedFound, found)
			require.Equal(testInstance, testCase.expectedValue, selectedValue)
		})
	}
}

func TestSummarizeFieldCoverage(testInstance *testing.T) {
	tasks := []asana.Task{
		{ID: "a", CustomFields: []asana.CustomField{{ID: "old", EnumValue: &asana.EnumValue{ID: "101"}}}},
		{ID: "b"},
		{ID: "c", CustomFields: []asana.CustomField{{ID: "old"}}},
		{ID: "d", CustomFields: []asana.CustomField{{ID: "new", EnumValue: &asana.EnumValue{ID: "201"}}}},
	}

	coverage := asana.SummarizeFieldCoverage(tasks, "old")
	require.Equal(testInstance, asana.FieldCoverage{TotalTasks: 4, TasksWithField: 2, TasksWithValue: 1}, coverage)

	require.Equal(testInstance, asana.FieldCoverage{}, asana.SummarizeFieldCoverage(nil, "old"))
}
