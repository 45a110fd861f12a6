package graphtec

import (
	"os"
	"strconv"
	"strings"
)

// Config хранит модель конфигурации библиотеки
type Config struct {
	// Offset — смещение начала резки на носителе, дюймы.
	Offset [2]float64
	// Border — отступ рамки вокруг габаритов платы; (0,0) отключает рамку.
	Border [2]float64
	// Matrix — матрица преобразования координат 2x2.
	Matrix [4]float64
	// Speeds и Forces задают проходы: i-й проход режет со Speeds[i] и Forces[i].
	Speeds []float64
	Forces []float64
	// Merge включает слияние мелкой геометрии с порогами MergeThreshold.
	Merge          bool
	MergeThreshold [2]float64
	// CutMode 0 — оптимизированные отрезки, 1 — замкнутые контуры.
	CutMode int
	// Segments — число отрезков аппроксимации полной окружности.
	Segments int
	// ChunkSize — размер порции при передаче задания, байты.
	ChunkSize int
	// StatusTimeoutMs — таймаут чтения ответа статуса, мс.
	StatusTimeoutMs int
	LogLevel        string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Offset:          getEnvAsPair("G2G_OFFSET", [2]float64{1.0, 4.5}),
		Border:          getEnvAsPair("G2G_BORDER", [2]float64{0, 0}),
		Matrix:          getEnvAsMatrix("G2G_MATRIX", [4]float64{1, 0, 0, 1}),
		Speeds:          getEnvAsFloats("G2G_SPEED", []float64{2, 2}),
		Forces:          getEnvAsFloats("G2G_FORCE", []float64{8, 30}),
		Merge:           getEnvAsBool("G2G_MERGE", false),
		MergeThreshold:  getEnvAsPair("G2G_MERGE_THRESH", [2]float64{0.014, 0.009}),
		CutMode:         getEnvAsInt("G2G_CUT_MODE", 0),
		Segments:        getEnvAsInt("G2G_SEGMENTS", 32),
		ChunkSize:       getEnvAsInt("G2G_CHUNK_SIZE", 8192),
		StatusTimeoutMs: getEnvAsInt("G2G_STATUS_TIMEOUT", 500),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Floats разбирает список чисел, разделенных запятыми.
func Floats(s string) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	val, _ := strconv.ParseBool(value)
	return val
}

func getEnvAsFloats(key string, fallback []float64) []float64 {
	if vals, err := Floats(getEnv(key, "")); err == nil && len(vals) > 0 {
		return vals
	}
	return fallback
}

func getEnvAsPair(key string, fallback [2]float64) [2]float64 {
	if vals, err := Floats(getEnv(key, "")); err == nil && len(vals) >= 2 {
		return [2]float64{vals[0], vals[1]}
	}
	return fallback
}

func getEnvAsMatrix(key string, fallback [4]float64) [4]float64 {
	if vals, err := Floats(getEnv(key, "")); err == nil && len(vals) >= 4 {
		return [4]float64{vals[0], vals[1], vals[2], vals[3]}
	}
	return fallback
}
