// Package credentials resolves the access token used against the task tracking API
// from environment variables or files.
package credentials
