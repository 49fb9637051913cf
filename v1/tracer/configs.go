package tracer

type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment (e.g. "production", "staging").
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. When false the provider
	// only records spans in-process, which is what tests want.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
