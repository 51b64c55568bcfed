package config

const defaultServiceName = "finance-tracker"

type TracingConfig struct {
	Service string `yaml:"service-name"`
	On      bool   `yaml:"enabled"`
}

func (s *TracingConfig) ServiceName() string {
	return s.Service
}

func (s *TracingConfig) Enabled() bool {
	return s.On
}

func (s *TracingConfig) applyDefaults() {
	if s.Service == "" {
		s.Service = defaultServiceName
	}
}
