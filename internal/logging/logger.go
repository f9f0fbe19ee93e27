package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

type LoggerService interface {
	Debug(value string)
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

// Logger writes structured logs through logrus and mirrors warnings, errors
// and success summaries to Telegram when a notifier is configured.
type Logger struct {
	log      *logrus.Logger
	telegram *TelegramNotifier
}

func NewLogger(telegram *TelegramNotifier) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
	}
	return &Logger{log: log, telegram: telegram}
}

func (l *Logger) Debug(value string) {
	l.log.Debug(value)
}

func (l *Logger) Log(value string) {
	l.log.Info(value)
}

func (l *Logger) LogError(value string, err error) {
	if err != nil {
		l.log.WithError(err).Error(value)
		l.telegram.Notify(iconError, "ERROR", value+": "+err.Error())
		return
	}
	l.log.Error(value)
	l.telegram.Notify(iconError, "ERROR", value)
}

func (l *Logger) LogWarning(value string) {
	l.log.Warn(value)
	l.telegram.Notify(iconWarning, "WARNING", value)
}

func (l *Logger) LogSuccess(value string) {
	l.log.Info(value)
	l.telegram.Notify(iconSuccess, "SUCCESS", value)
}
