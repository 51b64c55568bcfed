package config

import (
	"net"
	"net/url"
	"strconv"
)

type PostgresConfig struct {
	Hostname string `yaml:"host"`
	PortNum  int    `yaml:"port"`
	Db       string `yaml:"db"`
	User     string `yaml:"username"`
	Pswd     string `yaml:"password"`
	SSL      string `yaml:"sslmode"`
	MaxConns int    `yaml:"max-open-conns"`
}

func (s *PostgresConfig) Host() string {
	return s.Hostname
}

func (s *PostgresConfig) Database() string {
	return s.Db
}

func (s *PostgresConfig) Username() string {
	return s.User
}

func (s *PostgresConfig) Password() string {
	return s.Pswd
}

func (s *PostgresConfig) MaxOpenConns() int {
	return s.MaxConns
}

// DSN is a postgres:// URL; every part is escaped, so empty or unusual
// credentials cannot shift the remaining parameters.
func (s *PostgresConfig) DSN() string {
	port := s.PortNum
	if port == 0 {
		port = 5432
	}
	ssl := s.SSL
	if ssl == "" {
		ssl = "disable"
	}

	user := url.User(s.User)
	if s.Pswd != "" {
		user = url.UserPassword(s.User, s.Pswd)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     net.JoinHostPort(s.Hostname, strconv.Itoa(port)),
		Path:     "/" + s.Db,
		RawQuery: url.Values{"sslmode": {ssl}}.Encode(),
	}
	return dsn.String()
}
