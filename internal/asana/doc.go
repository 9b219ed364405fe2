// Package asana is a small REST client for the task tracking API consumed by the
// field migration.
//
// TaskService pages through the tasks of a project using the next_page offset
// cursor and writes a single enum custom field on one task. Non-success responses
// surface as RemoteError values carrying the response body.
package asana
