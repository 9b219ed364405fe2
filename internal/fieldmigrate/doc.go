// Package fieldmigrate moves the selected options of one enum custom field to another
// across all tasks of a project.
//
// Service is the sequential driver: it loads the CSV mapping, fetches the project
// tasks once through TaskFetcher, classifies every task, and hands qualifying tasks
// to a TaskUpdater with a fixed pause after each attempt. CommandBuilder exposes the
// workflow as the migrate Cobra command.
package fieldmigrate
