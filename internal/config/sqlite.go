package config

type SQLiteConfig struct {
	FilePath string `yaml:"path"`
}

func (s *SQLiteConfig) Path() string {
	return s.FilePath
}
