package config

import "time"

// ResilienceConfig настраивает Circuit Breaker для удаленных хранилищ (postgres, redis).
// Операции не повторяются: ошибка бэкенда сразу возвращается вызывающему.
// BreakerThreshold 0 отключает защиту.
type ResilienceConfig struct {
	BreakerThreshold int           `yaml:"breaker_threshold" env:"NOTES_BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" env:"NOTES_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerSuccesses int           `yaml:"breaker_successes" env:"NOTES_BREAKER_SUCCESSES" env-default:"2"`
}

// Enabled сообщает, нужно ли оборачивать удаленное хранилище.
func (r *ResilienceConfig) Enabled() bool {
	return r.BreakerThreshold > 0
}
