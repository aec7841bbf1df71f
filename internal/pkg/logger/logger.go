package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New - создание логгера. Неизвестный уровень трактуется как info,
// уровень debug включает консольный формат с цветными уровнями
func New(level string) (*zap.Logger, error) {
	return build(level, []string{"stdout"})
}

func build(level string, outputs []string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if zapLevel == zapcore.DebugLevel {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build(zap.Fields(zap.String("service", "geoquery")))
}

// Component - дочерний логгер для подсистемы
func Component(log *zap.Logger, name string) *zap.Logger {
	return log.Named(name).With(zap.String("component", name))
}
