package config

// LoggingConfig configures internal/application/logging's StdoutLogger,
// grounded on the teacher's config/logging.go (rotation fields dropped:
// this agent's logger always writes JSON lines to stdout, per spec.md's
// ambient logging section — there is no file-output mode to rotate).
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
