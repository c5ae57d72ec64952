// internal/utils/logger.go
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"printer-service/internal/config"
)

const defaultLogFile = "./logs/printer-service.log"

// NewLogger builds the process logger from the logging section
func NewLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	sink, err := newWriteSyncer(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create write syncer: %w", err)
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// newWriteSyncer maps the output setting to stdout, stderr or a rotated file
func newWriteSyncer(cfg *config.LoggingConfig) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}

	path := cfg.Output
	if path == "" {
		path = defaultLogFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   cfg.Compress,
	}), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// PrinterLogger scopes log lines to one registered printer
type PrinterLogger struct {
	*zap.Logger
}

// NewPrinterLogger creates a printer-specific logger
func NewPrinterLogger(base *zap.Logger, printerID, name, role string) *PrinterLogger {
	return &PrinterLogger{Logger: base.With(
		zap.String("printer_id", printerID),
		zap.String("printer_name", name),
		zap.String("role", role),
		zap.String("component", "printer"),
	)}
}

// LogDispatch records the outcome of one print job
func (pl *PrinterLogger) LogDispatch(mode, endpoint string, bytesWritten int64, duration time.Duration, err error) {
	fields := []zap.Field{
		zap.String("mode", mode),
		zap.String("endpoint", endpoint),
		zap.Int64("bytes_written", bytesWritten),
		zap.Duration("duration", duration),
		zap.Bool("success", err == nil),
	}
	if err != nil {
		pl.Warn("Print job failed", append(fields, zap.Error(err))...)
		return
	}
	pl.Info("Print job delivered", fields...)
}

// LogProbe records a reachability check at debug level
func (pl *PrinterLogger) LogProbe(endpoint string, online bool, duration time.Duration) {
	pl.Debug("Printer probed",
		zap.String("endpoint", endpoint),
		zap.Bool("online", online),
		zap.Duration("duration", duration),
	)
}

// ServiceLogger provides service-level logging functionality
type ServiceLogger struct {
	*zap.Logger
	serviceName string
}

// NewServiceLogger creates a service-specific logger
func NewServiceLogger(base *zap.Logger, serviceName string) *ServiceLogger {
	return &ServiceLogger{
		Logger:      base.With(zap.String("service", serviceName), zap.String("component", "service")),
		serviceName: serviceName,
	}
}

// LogServiceStart logs service startup
func (sl *ServiceLogger) LogServiceStart(version, serverID string, cfg interface{}) {
	sl.Info("Service starting",
		zap.String("version", version),
		zap.String("server_id", serverID),
		zap.Any("config", cfg),
	)
}

// LogServiceStop logs service shutdown
func (sl *ServiceLogger) LogServiceStop(reason string) {
	sl.Info("Service stopping", zap.String("reason", reason))
}

// LogAPIRequest logs HTTP API requests, escalating the level with the status code
func (sl *ServiceLogger) LogAPIRequest(method, path, userAgent, clientIP string, statusCode int, duration time.Duration) {
	level := zapcore.InfoLevel
	if statusCode >= 400 {
		level = zapcore.WarnLevel
	}
	if statusCode >= 500 {
		level = zapcore.ErrorLevel
	}

	if ce := sl.Check(level, "API request"); ce != nil {
		ce.Write(
			zap.String("method", method),
			zap.String("path", path),
			zap.String("user_agent", userAgent),
			zap.String("client_ip", clientIP),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		)
	}
}

// AuditLogger records registry mutations and dispatches
type AuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger creates an audit-specific logger
func NewAuditLogger(base *zap.Logger) *AuditLogger {
	return &AuditLogger{logger: base.With(zap.String("component", "audit"))}
}

// LogPrinterSaved logs a printer create or update
func (al *AuditLogger) LogPrinterSaved(printerID, role string, created bool) {
	al.logger.Info("Printer saved",
		zap.String("printer_id", printerID),
		zap.String("role", role),
		zap.Bool("created", created),
		zap.String("action", "save_printer"),
	)
}

// LogPrinterDeleted logs a printer removal
func (al *AuditLogger) LogPrinterDeleted(printerID string) {
	al.logger.Info("Printer deleted",
		zap.String("printer_id", printerID),
		zap.String("action", "delete_printer"),
	)
}

// LogClientRegistered logs a client registration; the pin is never logged
func (al *AuditLogger) LogClientRegistered(clientID, role string) {
	al.logger.Info("Client registered",
		zap.String("client_id", clientID),
		zap.String("role", role),
		zap.String("action", "register_client"),
	)
}

// LogDispatch logs who printed what where
func (al *AuditLogger) LogDispatch(clientID, printerID, mode string, success bool) {
	al.logger.Info("Print dispatch",
		zap.String("client_id", clientID),
		zap.String("printer_id", printerID),
		zap.String("mode", mode),
		zap.Bool("success", success),
		zap.String("action", "dispatch"),
	)
}

// SecurityLogger provides security-related logging
type SecurityLogger struct {
	logger *zap.Logger
}

// NewSecurityLogger creates a security-specific logger
func NewSecurityLogger(base *zap.Logger) *SecurityLogger {
	return &SecurityLogger{logger: base.With(zap.String("component", "security"))}
}

// LogAuthAttempt logs authentication attempts. reason stays in the log and
// is never echoed back to the caller.
func (sl *SecurityLogger) LogAuthAttempt(clientID, clientIP, userAgent string, success bool, reason string) {
	level := zapcore.InfoLevel
	if !success {
		level = zapcore.WarnLevel
	}

	if ce := sl.logger.Check(level, "Authentication attempt"); ce != nil {
		ce.Write(
			zap.String("client_id", clientID),
			zap.String("client_ip", clientIP),
			zap.String("user_agent", userAgent),
			zap.Bool("success", success),
			zap.String("reason", reason),
			zap.String("action", "auth_attempt"),
		)
	}
}

// LoggerWithRequestID adds request ID to logger
func LoggerWithRequestID(logger *zap.Logger, requestID string) *zap.Logger {
	return logger.With(zap.String("request_id", requestID))
}

// CloseLogger flushes buffered entries
func CloseLogger(logger *zap.Logger) error {
	return logger.Sync()
}
