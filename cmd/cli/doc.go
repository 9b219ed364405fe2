// Package cli constructs the fieldmigrate command-line interface, wiring the
// Cobra command hierarchy, the Viper configuration loader, and structured
// zap logging. Execute builds a fresh application and runs the root command.
package cli
