package fieldmigrate

import (
	"github.com/temirov/fieldmigrate/internal/asana"
	"github.com/temirov/fieldmigrate/internal/mapping"
)

type taskDisposition int

const (
	dispositionNoCustomFields taskDisposition = iota
	dispositionOldFieldAbsent
	dispositionOldFieldUnset
	dispositionValueNotMapped
	dispositionUpdate
)

type taskDecision struct {
	disposition taskDisposition
	oldValue    string
	newValue    string
}

// classifyTask evaluates the checks in order; only dispositionUpdate leads to an update.
// The first custom field entry matching oldFieldID is the one inspected.
func classifyTask(task asana.Task, oldFieldID string, table mapping.Table) taskDecision {
	if len(task.CustomFields) == 0 {
		return taskDecision{disposition: dispositionNoCustomFields}
	}

	oldField, found := task.FindCustomField(oldFieldID)
	if !found {
		return taskDecision{disposition: dispositionOldFieldAbsent}
	}

	oldValue, selected := oldField.SelectedValueID()
	if !selected {
		return taskDecision{disposition: dispositionOldFieldUnset}
	}

	newValue, mapped := table.Lookup(oldValue)
	if !mapped {
		return taskDecision{disposition: dispositionValueNotMapped, oldValue: oldValue}
	}

	return taskDecision{disposition: dispositionUpdate, oldValue: oldValue, newValue: newValue}
}
