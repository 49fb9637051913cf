package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// 1. production -> INFO
	// 2. development -> DEBUG
	// else -> INFO
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"ZAP_LOGGER_SERVICE_NAME"`

	// EnableTracing enriches log entries with trace and span IDs taken
	// from the context passed to the *WithContext logging methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"ZAP_LOGGER_ENABLE_TRACING"`
}
