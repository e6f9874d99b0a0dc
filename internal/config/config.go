// Paquete config — carga y validación de la configuración del Portal de
// Cumplimiento desde variables de entorno.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Versión de la aplicación, se fija en build con -ldflags.
var Version = "dev"

// Config contiene todos los parámetros de configuración del portal.
type Config struct {
	// --- Servidor ---

	// Puerto del servidor HTTP
	Port int
	// Nivel de logging (debug, info, warn, error)
	LogLevel slog.Level
	// Formato de logs (json, text)
	LogFormat string

	// --- API de reportería ---

	// URL base del backend de reportería
	APIURL string
	// Timeout de los requests hacia el backend
	APITimeout time.Duration

	// --- Sesión ---

	// Clave de cifrado de la cookie de sesión (base64 o passphrase)
	SessionKey string
	// Marcar las cookies como Secure (solo HTTPS)
	CookieSecure bool

	// --- Alertas ---

	// Intervalo del sondeo de alertas no leídas
	AlertPollInterval time.Duration
	// Ventana en días para reportes próximos a vencer
	DiasAlertaVencimiento int

	// --- Caché de catálogos ---

	// Cantidad máxima de entradas en el caché de catálogos
	CacheSize int
	// Tiempo de vida de cada entrada del caché
	CacheTTL time.Duration

	// --- CORS y rate limiting ---

	// Orígenes permitidos para CORS (separados por coma)
	CORSOrigins []string
	// Requests por minuto permitidos por IP
	RateLimit int

	// --- Observabilidad ---

	// Intervalo de verificación de dependencias topologymetrics
	DephealthCheckInterval time.Duration
	// Grupo del servicio en las métricas topologymetrics
	DephealthGroup string

	// --- Graceful shutdown ---

	// Timeout del graceful shutdown del servidor HTTP
	ShutdownTimeout time.Duration
}

// Load carga la configuración desde variables de entorno, valida los
// campos obligatorios y devuelve Config o un error.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Servidor ---

	// PC_PORT — puerto del servidor HTTP (por defecto 8080)
	cfg.Port, err = getEnvInt("PC_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("PC_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PC_PORT: valor %d fuera del rango 1-65535", cfg.Port)
	}

	// PC_LOG_LEVEL — nivel de logging (por defecto info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PC_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PC_LOG_LEVEL: %w", err)
	}

	// PC_LOG_FORMAT — formato de logs (por defecto json)
	cfg.LogFormat = getEnvDefault("PC_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PC_LOG_FORMAT: valor inválido %q, permitidos: json, text", cfg.LogFormat)
	}

	// --- API de reportería ---

	// PC_API_URL — obligatoria
	cfg.APIURL, err = getEnvRequired("PC_API_URL")
	if err != nil {
		return nil, err
	}
	// Quitamos el trailing slash
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	// PC_API_TIMEOUT — timeout de requests al backend (por defecto 30s)
	cfg.APITimeout, err = getEnvDuration("PC_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PC_API_TIMEOUT: %w", err)
	}

	// --- Sesión ---

	// PC_SESSION_KEY — opcional; vacía genera una clave aleatoria por
	// proceso (las sesiones no sobreviven un reinicio)
	cfg.SessionKey = getEnvDefault("PC_SESSION_KEY", "")

	// PC_COOKIE_SECURE — cookies Secure (por defecto false)
	cfg.CookieSecure, err = getEnvBool("PC_COOKIE_SECURE", false)
	if err != nil {
		return nil, fmt.Errorf("PC_COOKIE_SECURE: %w", err)
	}

	// --- Alertas ---

	// PC_ALERT_POLL_INTERVAL — intervalo del sondeo de alertas (por defecto 60s)
	cfg.AlertPollInterval, err = getEnvDuration("PC_ALERT_POLL_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PC_ALERT_POLL_INTERVAL: %w", err)
	}

	// PC_DIAS_ALERTA_VENCIMIENTO — ventana de próximos a vencer (por defecto 7)
	cfg.DiasAlertaVencimiento, err = getEnvInt("PC_DIAS_ALERTA_VENCIMIENTO", 7)
	if err != nil {
		return nil, fmt.Errorf("PC_DIAS_ALERTA_VENCIMIENTO: %w", err)
	}
	if cfg.DiasAlertaVencimiento < 1 || cfg.DiasAlertaVencimiento > 90 {
		return nil, fmt.Errorf("PC_DIAS_ALERTA_VENCIMIENTO: valor %d fuera del rango 1-90", cfg.DiasAlertaVencimiento)
	}

	// --- Caché de catálogos ---

	// PC_CACHE_SIZE — entradas máximas del caché (por defecto 128)
	cfg.CacheSize, err = getEnvInt("PC_CACHE_SIZE", 128)
	if err != nil {
		return nil, fmt.Errorf("PC_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("PC_CACHE_SIZE: el valor debe ser positivo, se recibió %d", cfg.CacheSize)
	}

	// PC_CACHE_TTL — tiempo de vida del caché (por defecto 5m)
	cfg.CacheTTL, err = getEnvDuration("PC_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PC_CACHE_TTL: %w", err)
	}

	// --- CORS y rate limiting ---

	// PC_CORS_ORIGINS — orígenes permitidos (por defecto ninguno)
	cfg.CORSOrigins = parseCSV(getEnvDefault("PC_CORS_ORIGINS", ""))

	// PC_RATE_LIMIT — requests por minuto por IP (por defecto 300)
	cfg.RateLimit, err = getEnvInt("PC_RATE_LIMIT", 300)
	if err != nil {
		return nil, fmt.Errorf("PC_RATE_LIMIT: %w", err)
	}
	if cfg.RateLimit < 1 {
		return nil, fmt.Errorf("PC_RATE_LIMIT: el valor debe ser positivo, se recibió %d", cfg.RateLimit)
	}

	// --- Observabilidad ---

	// PC_DEPHEALTH_CHECK_INTERVAL — verificación de dependencias (por defecto 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("PC_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PC_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// PC_DEPHEALTH_GROUP — grupo en las métricas de dependencias
	cfg.DephealthGroup = getEnvDefault("PC_DEPHEALTH_GROUP", "sirec")

	// --- Graceful shutdown ---

	// PC_SHUTDOWN_TIMEOUT — timeout de graceful shutdown (por defecto 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("PC_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PC_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger configura el logger slog global a partir de la configuración.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Funciones auxiliares ---

// getEnvRequired devuelve el valor de la variable de entorno o un error
// si no está definida.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: variable de entorno obligatoria no definida", key)
	}
	return val, nil
}

// getEnvDefault devuelve el valor de la variable de entorno o el valor
// por defecto.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt devuelve el valor entero de la variable de entorno o el
// valor por defecto.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("entero inválido: %q", val)
	}
	return n, nil
}

// getEnvBool devuelve el valor booleano de la variable de entorno o el
// valor por defecto.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("booleano inválido: %q", val)
	}
	return b, nil
}

// getEnvDuration devuelve un time.Duration desde la variable de entorno
// o el valor por defecto.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("duración inválida: %q (use el formato Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel convierte la cadena de nivel de logging en slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("nivel inválido %q, permitidos: debug, info, warn, error", level)
	}
}

// parseCSV separa una cadena por comas en un slice de cadenas.
// Se eliminan los espacios alrededor y se ignoran los elementos vacíos.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
