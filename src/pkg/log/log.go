package log

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log wraps logrus behind the (context, message, scope, meta) signature used
// across usecases and gateways.
type Log struct {
	AppName string
	Logger  *logrus.Logger
}

var logger Log

// InitLogger configures the singleton from viper (log.level, app.name).
func InitLogger(v *viper.Viper) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = Log{
		AppName: v.GetString("app.name"),
		Logger:  l,
	}
}

func GetLogger() Log {
	return logger
}

func (l Log) fields(context, scope, meta string) logrus.Fields {
	_, file, line, _ := runtime.Caller(2)
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
		"file":    file,
		"line":    line,
	}
}

func (l Log) Info(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Info(message)
}

func (l Log) Warn(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Warn(message)
}

func (l Log) Error(context, message, scope, meta string) {
	if l.Logger == nil {
		return
	}
	l.Logger.WithFields(l.fields(context, scope, meta)).Error(message)
}
