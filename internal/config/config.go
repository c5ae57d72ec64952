// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Printer    PrinterConfig    `mapstructure:"printer"`
	Rasterizer RasterizerConfig `mapstructure:"rasterizer"`
	Discovery  DiscoveryConfig  `mapstructure:"discovery"`
	Security   SecurityConfig   `mapstructure:"security"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	App        AppConfig        `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	TLS          TLSConfig     `mapstructure:"tls"`
}

// TLSConfig represents TLS configuration
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// StorageConfig selects where the printer and client documents live
type StorageConfig struct {
	Driver       string        `mapstructure:"driver"` // file | postgres
	DataDir      string        `mapstructure:"data_dir"`
	UploadDir    string        `mapstructure:"upload_dir"`
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// AuthConfig controls the client auth gate
type AuthConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	AdminToken string `mapstructure:"admin_token"`
}

// PrinterConfig holds dispatch and rendering settings
type PrinterConfig struct {
	MaxPerRole       int           `mapstructure:"max_per_role"`
	DefaultPort      int           `mapstructure:"default_port"`
	ProbeTimeout     time.Duration `mapstructure:"probe_timeout"`
	ExecuteTimeout   time.Duration `mapstructure:"execute_timeout"`
	Transport        string        `mapstructure:"transport"` // raw | structured
	ProbeBeforePrint bool          `mapstructure:"probe_before_print"`
	PaperWidthChars  int           `mapstructure:"paper_width_chars"`
	PaperWidthDots   int           `mapstructure:"paper_width_dots"`
	DefaultPrinter   string        `mapstructure:"default_printer"`
	ClosingLine      string        `mapstructure:"closing_line"`
	TestMessage      string        `mapstructure:"test_message"`
}

// RasterizerConfig configures document to image conversion. PDFs go
// through pdftoppm, HTML and SVG documents through headless Chrome.
type RasterizerConfig struct {
	PdftoppmPath string        `mapstructure:"pdftoppm_path"`
	ChromePath   string        `mapstructure:"chrome_path"`
	DPI          int           `mapstructure:"dpi"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// DiscoveryConfig configures the network printer scanner
type DiscoveryConfig struct {
	Networks []string      `mapstructure:"networks"`
	Ports    []int         `mapstructure:"ports"`
	Workers  int           `mapstructure:"workers"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// Load loads configuration from the command line, file and environment variables
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("printer-service", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to config.yaml")
	flags.String("server.port", "", "HTTP listen port")
	flags.Bool("auth.enabled", false, "require x-client-id / x-print-key on privileged routes")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/printer-service")
	}

	// Environment variable support
	v.SetEnvPrefix("PRINTER_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Only flags the operator actually passed override file and env values
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" && f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8085")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.tls.enabled", false)

	// Storage defaults
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.data_dir", "./data")
	v.SetDefault("storage.upload_dir", "./uploads")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.max_open_conns", 10)
	v.SetDefault("storage.max_idle_conns", 2)
	v.SetDefault("storage.max_lifetime", "5m")

	// Auth defaults
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.admin_token", "")

	// Printer defaults
	v.SetDefault("printer.max_per_role", 3)
	v.SetDefault("printer.default_port", 9100)
	v.SetDefault("printer.probe_timeout", "1500ms")
	v.SetDefault("printer.execute_timeout", "10s")
	v.SetDefault("printer.transport", "raw")
	v.SetDefault("printer.probe_before_print", false)
	v.SetDefault("printer.paper_width_chars", 48)
	v.SetDefault("printer.paper_width_dots", 576)
	v.SetDefault("printer.default_printer", "")
	v.SetDefault("printer.closing_line", "Thank you!")
	v.SetDefault("printer.test_message", "Printer test OK")

	// Rasterizer defaults
	v.SetDefault("rasterizer.pdftoppm_path", "pdftoppm")
	v.SetDefault("rasterizer.chrome_path", "")
	v.SetDefault("rasterizer.dpi", 203)
	v.SetDefault("rasterizer.timeout", "30s")

	// Discovery defaults
	v.SetDefault("discovery.networks", []string{})
	v.SetDefault("discovery.ports", []int{9100})
	v.SetDefault("discovery.workers", 50)
	v.SetDefault("discovery.timeout", "300ms")

	// Security defaults
	v.SetDefault("security.allowed_origins", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// App defaults
	v.SetDefault("app.name", "printer-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch config.Storage.Driver {
	case "file":
		if config.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the file driver")
		}
	case "postgres":
		if config.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of: [file postgres]")
	}

	if config.Printer.MaxPerRole <= 0 {
		return fmt.Errorf("printer.max_per_role must be positive")
	}
	if config.Printer.ProbeTimeout <= 0 {
		return fmt.Errorf("printer.probe_timeout must be positive")
	}
	if config.Printer.PaperWidthChars < 32 {
		return fmt.Errorf("printer.paper_width_chars must be at least 32")
	}
	if config.Printer.PaperWidthDots%8 != 0 || config.Printer.PaperWidthDots <= 0 {
		return fmt.Errorf("printer.paper_width_dots must be a positive multiple of 8")
	}

	validTransports := []string{"raw", "structured"}
	if !contains(validTransports, config.Printer.Transport) {
		return fmt.Errorf("printer.transport must be one of: %v", validTransports)
	}

	if config.Rasterizer.DPI <= 0 {
		return fmt.Errorf("rasterizer.dpi must be positive")
	}

	validEnvs := []string{"development", "staging", "production", "test"}
	if !contains(validEnvs, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.IsDevelopment()
}
