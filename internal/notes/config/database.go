package config

import (
	"fmt"
	"time"

	"gonotepad/pkg/db/redis"
)

// Драйверы хранилища.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig выбирает хранилище заметок.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"sqlite"`
}

// SQLiteConfig содержит путь к файлу базы.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"NOTES_SQLITE_PATH" env-default:"notes.db"`
}

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host          string `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"0.0.0.0"`
	Port          int    `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5433"`
	User          string `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password      string `yaml:"password" env:"NOTES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database      string `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"notes"`
	MinConn       int    `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"NOTES_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/notes"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host      string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port      int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize  int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   time.Duration `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"5s"`
	KeyPrefix string        `yaml:"key_prefix" env:"NOTES_REDIS_KEY_PREFIX" env-default:"notes:"`
}

// ClientConfig преобразует настройки в конфигурацию общего клиента Redis.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
