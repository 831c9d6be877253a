package db

type Config struct {
	// Dialect is one of postgres, mysql or sqlite3. Common aliases are accepted.
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`
	DSN     string `conf:"dsn" yaml:"dsn" json:"dsn"`
}
