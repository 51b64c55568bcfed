package config

import "fmt"

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	defaultMaxYear = 2025
)

type AppConfig struct {
	StoreName string `yaml:"store"`
	YearLimit int    `yaml:"max-year"`
}

func (s *AppConfig) Store() string {
	return s.StoreName
}

// MaxYear is the highest year accepted when asking for a net income period.
func (s *AppConfig) MaxYear() int {
	return s.YearLimit
}

func (s *AppConfig) applyDefaults() {
	if s.StoreName == "" {
		s.StoreName = StorePostgres
	}
	if s.YearLimit == 0 {
		s.YearLimit = defaultMaxYear
	}
}

func (s *AppConfig) validate() error {
	switch s.StoreName {
	case StorePostgres, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", s.StoreName)
	}
	if s.YearLimit < 1 {
		return fmt.Errorf("max-year must be positive, got %d", s.YearLimit)
	}
	return nil
}
