package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del panel (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Registro RegistroConfig
	Panel    PanelConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP del panel.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; vacío = sin CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CORSCredentials indica si el navegador puede enviar la cookie de sesión en peticiones
// cross-origin. Con el comodín "*" no se permiten credenciales.
func (c HTTPConfig) CORSCredentials() bool {
	if c.CORSOrigins == "" {
		return false
	}
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if strings.TrimSpace(o) == "*" {
			return false
		}
	}
	return true
}

// RegistroConfig apunta al servidor de registros (productos, ventas, reportes).
// Todas las rutas del servidor se resuelven contra BaseURL.
type RegistroConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PanelConfig parámetros de presentación y de las sesiones del operador.
type PanelConfig struct {
	LowStockThreshold int           // stock <= umbral se marca como bajo en el inventario
	SessionIdle       time.Duration // sesiones sin actividad se cierran tras este tiempo
	DocsPath          string        // ruta al swagger.json servido en /docs
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, REGISTRO_BASE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "panel-catalogos"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8090),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", ""),
		},
		Registro: RegistroConfig{
			BaseURL: strings.TrimRight(getString(v, "REGISTRO_BASE_URL", "http://localhost:3001/api"), "/"),
			Timeout: time.Duration(getInt(v, "REGISTRO_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Panel: PanelConfig{
			LowStockThreshold: getInt(v, "PANEL_LOW_STOCK_THRESHOLD", 5),
			SessionIdle:       time.Duration(getInt(v, "PANEL_SESSION_IDLE_MINUTES", 120)) * time.Minute,
			DocsPath:          getString(v, "PANEL_DOCS_PATH", "./docs/swagger.json"),
		},
	}

	u, err := url.Parse(cfg.Registro.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("REGISTRO_BASE_URL inválida: %q", cfg.Registro.BaseURL)
	}
	if cfg.Registro.Timeout <= 0 {
		return nil, fmt.Errorf("REGISTRO_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
