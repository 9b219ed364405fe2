package asana

// Task is the subset of a remote task the migration reads.
type Task struct {
	ID           string        `json:"gid"`
	Name         string        `json:"name"`
	CustomFields []CustomField `json:"custom_fields"`
}

// CustomField is one custom field entry attached to a task.
// A nil EnumValue means the field is present but unset.
type CustomField struct {
	ID        string     `json:"gid"`
	Name      string     `json:"name,omitempty"`
	EnumValue *EnumValue `json:"enum_value"`
}

// EnumValue is the selected option of a single-select custom field.
type EnumValue struct {
	ID   string `json:"gid"`
	Name string `json:"name,omitempty"`
}

// FindCustomField returns the first custom field entry whose identifier equals fieldID.
func (task Task) FindCustomField(fieldID string) (CustomField, bool) {
	for _, customField := range task.CustomFields {
		if customField.ID == fieldID {
			return customField, true
		}
	}
	return CustomField{}, false
}

// SelectedValueID returns the identifier of the selected enum option, if any.
func (field CustomField) SelectedValueID() (string, bool) {
	if field.EnumValue == nil || len(field.EnumValue.ID) == 0 {
		return "", false
	}
	return field.EnumValue.ID, true
}

// FieldCoverage counts how many tasks carry a custom field and how many have it set.
type FieldCoverage struct {
	TotalTasks     int
	TasksWithField int
	TasksWithValue int
}

// SummarizeFieldCoverage computes FieldCoverage for fieldID across tasks.
func SummarizeFieldCoverage(tasks []Task, fieldID string) FieldCoverage {
	coverage := FieldCoverage{TotalTasks: len(tasks)}
	for _, task := range tasks {
		customField, found := task.FindCustomField(fieldID)
		if !found {
			continue
		}
		coverage.TasksWithField++
		if _, selected := customField.SelectedValueID(); selected {
			coverage.TasksWithValue++
		}
	}
	return coverage
}

type taskListResponse struct {
	Data     []Task    `json:"data"`
	NextPage *nextPage `json:"next_page"`
}

type nextPage struct {
	Offset string `json:"offset"`
}

type taskUpdateRequest struct {
	Data taskUpdateData `json:"data"`
}

type taskUpdateData struct {
	CustomFields map[string]string `json:"custom_fields"`
}
