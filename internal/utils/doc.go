// Package utils exposes reusable helpers consumed by the fieldmigrate commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// FIELDMIGRATE_* environment variables through Viper. LoggerFactory builds the
// zap loggers every service receives.
package utils
