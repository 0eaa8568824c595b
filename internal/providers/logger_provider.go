package providers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"cpd/internal/structures"
)

type TypeEnum string

const (
	TypeApp  = "app"
	TypeGet  = "get"
	TypePost = "post"
)

// GetLogTypeByRequestType routes mutating HTTP methods to the write log,
// everything else to the read log.
func GetLogTypeByRequestType(method string) TypeEnum {
	switch method {
	case "POST", "PUT", "DELETE":
		return TypePost
	default:
		return TypeGet
	}
}

type Logger interface {
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Errorf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(conf.Logger.Dir, 0o755); err != nil {
		return nil, err
	}

	mode := os.FileMode(conf.Logger.Mode)
	appFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "app.log"), mode)
	if err != nil {
		return nil, err
	}
	accessFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "access.log"), mode)
	if err != nil {
		appFile.Close()
		return nil, err
	}

	appWriter := zerolog.MultiLevelWriter(appFile)
	accessWriter := zerolog.MultiLevelWriter(accessFile)
	if conf.Debug {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		appWriter = zerolog.MultiLevelWriter(appFile, console)
		accessWriter = zerolog.MultiLevelWriter(accessFile, console)
	}

	return &LogProvider{
		app:    zerolog.New(appWriter).Level(level).With().Timestamp().Logger(),
		access: zerolog.New(accessWriter).Level(level).With().Timestamp().Logger(),
		files:  []*os.File{appFile, accessFile},
	}, nil
}

func openLogFile(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
}

func (l *LogProvider) byType(t TypeEnum) *zerolog.Logger {
	if t == TypeApp {
		return &l.app
	}
	return &l.access
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.byType(t).Debug().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.byType(t).Info().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.byType(t).Warn().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.byType(t).Error().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.byType(t).Fatal().Str("type", string(t)).Msgf(format, args...)
}

func (l *LogProvider) Close() {
	for _, f := range l.files {
		_ = f.Close()
	}
}
