package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию сервиса
type AppConfig struct {
	ServerPort  string
	KafkaBroker string
	KafkaTopic  string
	GinMode     string
	Database    DatabaseConfig
	Logging     LoggerConfig
	Cutter      CutterConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// CutterConfig содержит настройки работы с плоттером
type CutterConfig struct {
	// PollIntervalMs — интервал опроса статуса по умолчанию, мс.
	PollIntervalMs int
	// ChunkSize — размер порции при передаче задания, байты.
	ChunkSize int
	// StatusTimeoutMs — таймаут чтения ответа статуса, мс.
	StatusTimeoutMs int
	// Segments — качество аппроксимации дуг при извлечении контуров.
	Segments int
	// AllowUnknown разрешает запуск передачи из состояния unknown
	// (устройство отвечает на обнаружение, но не на протокол статуса).
	AllowUnknown bool
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort:  getEnv("APP_PORT", "8082"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "cutter_events"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Username: getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "root"),
			DBName:   getEnv("DB_NAME", "cutter_db"),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
		Cutter: CutterConfig{
			PollIntervalMs:  getEnvAsInt("CUTTER_POLL_INTERVAL", 1000),
			ChunkSize:       getEnvAsInt("CUTTER_CHUNK_SIZE", 8192),
			StatusTimeoutMs: getEnvAsInt("CUTTER_STATUS_TIMEOUT", 500),
			Segments:        getEnvAsInt("CUTTER_SEGMENTS", 32),
			AllowUnknown:    getEnvAsBool("CUTTER_ALLOW_UNKNOWN", true),
		},
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
