package fieldmigrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/fieldmigrate/internal/asana"
	"github.com/temirov/fieldmigrate/internal/credentials"
)

const (
	tokenResolutionErrorTemplateConstant = "unable to resolve access token from %s: %w"
)

// MigrationExecutor runs a migration.
type MigrationExecutor interface {
	Execute(executionContext context.Context, options MigrationOptions) (MigrationResult, error)
}

// ServiceSettings carries the connection settings a resolver needs to build an executor.
type ServiceSettings struct {
	TokenSource    credentials.TokenSource
	ServiceBaseURL string
	PageSize       int
}

// ServiceResolver creates migration executors for the command.
type ServiceResolver interface {
	Resolve(executionContext context.Context, logger *zap.Logger, settings ServiceSettings) (MigrationExecutor, error)
}

// DefaultServiceResolver wires the REST task service, the remote updater, and the driver.
type DefaultServiceResolver struct {
	HTTPClient        asana.HTTPClient
	EnvironmentLookup credentials.EnvironmentLookup
	FileReader        credentials.FileReader
	TokenResolver     credentials.TokenResolver
}

// Resolve resolves the access token and builds a Service backed by the REST API.
func (resolver *DefaultServiceResolver) Resolve(executionContext context.Context, logger *zap.Logger, settings ServiceSettings) (MigrationExecutor, error) {
	tokenResolver := resolver.TokenResolver
	if tokenResolver == nil {
		tokenResolver = credentials.NewTokenResolver(resolver.EnvironmentLookup, resolver.FileReader)
	}

	accessToken, tokenError := tokenResolver.ResolveToken(executionContext, settings.TokenSource)
	if tokenError != nil {
		return nil, fmt.Errorf(tokenResolutionErrorTemplateConstant, settings.TokenSource, tokenError)
	}

	taskService, taskServiceError := asana.NewTaskService(logger, resolver.HTTPClient, asana.ServiceConfiguration{
		BaseURL:     settings.ServiceBaseURL,
		PageSize:    settings.PageSize,
		AccessToken: accessToken,
	})
	if taskServiceError != nil {
		return nil, taskServiceError
	}

	taskUpdater, taskUpdaterError := NewRemoteTaskUpdater(logger, taskService)
	if taskUpdaterError != nil {
		return nil, taskUpdaterError
	}

	return NewService(ServiceDependencies{
		Logger:      logger,
		TaskLister:  taskService,
		TaskUpdater: taskUpdater,
	})
}
