package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs define variables de entorno para la duración del test.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs devuelve el conjunto mínimo de variables obligatorias.
func minimalEnvs() map[string]string {
	return map[string]string{
		"PC_API_URL": "http://api.sirec.gov.co",
	}
}

func TestLoad_ConfigMinima(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() devolvió error: %v", err)
	}

	// Verificamos los valores por defecto
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, se espera 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, se espera Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, se espera json", cfg.LogFormat)
	}
	if cfg.APIURL != "http://api.sirec.gov.co" {
		t.Errorf("APIURL = %q, se espera http://api.sirec.gov.co", cfg.APIURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("APITimeout = %v, se espera 30s", cfg.APITimeout)
	}
	if cfg.SessionKey != "" {
		t.Errorf("SessionKey = %q, se espera vacía", cfg.SessionKey)
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure = true, se espera false")
	}
	if cfg.AlertPollInterval != 60*time.Second {
		t.Errorf("AlertPollInterval = %v, se espera 60s", cfg.AlertPollInterval)
	}
	if cfg.DiasAlertaVencimiento != 7 {
		t.Errorf("DiasAlertaVencimiento = %d, se espera 7", cfg.DiasAlertaVencimiento)
	}
	if cfg.CacheSize != 128 {
		t.Errorf("CacheSize = %d, se espera 128", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, se espera 5m", cfg.CacheTTL)
	}
	if cfg.RateLimit != 300 {
		t.Errorf("RateLimit = %d, se espera 300", cfg.RateLimit)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, se espera 15s", cfg.DephealthCheckInterval)
	}
	if cfg.DephealthGroup != "sirec" {
		t.Errorf("DephealthGroup = %q, se espera sirec", cfg.DephealthGroup)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, se espera 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_ValoresPersonalizados(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_PORT"] = "9090"
	envs["PC_LOG_LEVEL"] = "debug"
	envs["PC_LOG_FORMAT"] = "text"
	envs["PC_API_TIMEOUT"] = "10s"
	envs["PC_SESSION_KEY"] = "clave-de-prueba"
	envs["PC_COOKIE_SECURE"] = "true"
	envs["PC_ALERT_POLL_INTERVAL"] = "30s"
	envs["PC_DIAS_ALERTA_VENCIMIENTO"] = "15"
	envs["PC_CACHE_SIZE"] = "64"
	envs["PC_CACHE_TTL"] = "1m"
	envs["PC_CORS_ORIGINS"] = "https://portal.sirec.gov.co, https://intranet.sirec.gov.co"
	envs["PC_RATE_LIMIT"] = "100"
	envs["PC_SHUTDOWN_TIMEOUT"] = "10s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() devolvió error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, se espera 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, se espera Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, se espera text", cfg.LogFormat)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %v, se espera 10s", cfg.APITimeout)
	}
	if cfg.SessionKey != "clave-de-prueba" {
		t.Errorf("SessionKey = %q, se espera clave-de-prueba", cfg.SessionKey)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false, se espera true")
	}
	if cfg.AlertPollInterval != 30*time.Second {
		t.Errorf("AlertPollInterval = %v, se espera 30s", cfg.AlertPollInterval)
	}
	if cfg.DiasAlertaVencimiento != 15 {
		t.Errorf("DiasAlertaVencimiento = %d, se espera 15", cfg.DiasAlertaVencimiento)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, se espera 64", cfg.CacheSize)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, se espera 1m", cfg.CacheTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://portal.sirec.gov.co" {
		t.Errorf("CORSOrigins = %v, se esperaban 2 orígenes", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 100 {
		t.Errorf("RateLimit = %d, se espera 100", cfg.RateLimit)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, se espera 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_APIURLObligatoria(t *testing.T) {
	t.Setenv("PC_API_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error sin PC_API_URL")
	}
}

func TestLoad_APIURLTrailingSlash(t *testing.T) {
	t.Setenv("PC_API_URL", "http://api.sirec.gov.co/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() devolvió error: %v", err)
	}
	if cfg.APIURL != "http://api.sirec.gov.co" {
		t.Errorf("APIURL = %q, se espera sin trailing slash", cfg.APIURL)
	}
}

func TestLoad_PuertoInvalido(t *testing.T) {
	tests := []struct {
		nombre string
		valor  string
	}{
		{"cero", "0"},
		{"negativo", "-1"},
		{"fuera de rango", "70000"},
		{"no numérico", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			envs := minimalEnvs()
			envs["PC_PORT"] = tt.valor
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Errorf("Load() no devolvió error con PC_PORT=%q", tt.valor)
			}
		})
	}
}

func TestLoad_NivelDeLogInvalido(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_LOG_LEVEL"] = "verbose"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error con PC_LOG_LEVEL=verbose")
	}
}

func TestLoad_FormatoDeLogInvalido(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_LOG_FORMAT"] = "xml"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error con PC_LOG_FORMAT=xml")
	}
}

func TestLoad_DuracionInvalida(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_ALERT_POLL_INTERVAL"] = "abc"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error con PC_ALERT_POLL_INTERVAL=abc")
	}
}

func TestLoad_DiasAlertaInvalidos(t *testing.T) {
	tests := []struct {
		nombre string
		valor  string
	}{
		{"cero", "0"},
		{"demasiado grande", "120"},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			envs := minimalEnvs()
			envs["PC_DIAS_ALERTA_VENCIMIENTO"] = tt.valor
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Errorf("Load() no devolvió error con PC_DIAS_ALERTA_VENCIMIENTO=%q", tt.valor)
			}
		})
	}
}

func TestLoad_CacheSizeInvalido(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_CACHE_SIZE"] = "0"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error con PC_CACHE_SIZE=0")
	}
}

func TestLoad_CookieSecureInvalido(t *testing.T) {
	envs := minimalEnvs()
	envs["PC_COOKIE_SECURE"] = "quizás"
	setEnvs(t, envs)

	if _, err := Load(); err == nil {
		t.Error("Load() no devolvió error con PC_COOKIE_SECURE inválido")
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		nombre  string
		formato string
	}{
		{"json", "json"},
		{"text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: tt.formato,
			}
			if logger := SetupLogger(cfg); logger == nil {
				t.Error("SetupLogger() devolvió nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		entrada  string
		esperado []string
	}{
		{"", nil},
		{"https://a.gov.co", []string{"https://a.gov.co"}},
		{"https://a.gov.co, https://b.gov.co", []string{"https://a.gov.co", "https://b.gov.co"}},
		{"https://a.gov.co,,https://b.gov.co,", []string{"https://a.gov.co", "https://b.gov.co"}},
		{" a , b , c ", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.entrada, func(t *testing.T) {
			resultado := parseCSV(tt.entrada)
			if len(resultado) != len(tt.esperado) {
				t.Fatalf("parseCSV(%q) = %v (len %d), se espera %v (len %d)",
					tt.entrada, resultado, len(resultado), tt.esperado, len(tt.esperado))
			}
			for i, v := range resultado {
				if v != tt.esperado[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, se espera %q", tt.entrada, i, v, tt.esperado[i])
				}
			}
		})
	}
}
