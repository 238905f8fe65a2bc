// pkg/logger/global.go
package logger

import (
	"fmt"
	"os"
)

var globalLogger *Logger

func InitGlobal(opts Options) error {
	l, err := NewLogger(opts)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// SetGlobal подменяет глобальный логгер (используется в тестах)
func SetGlobal(l *Logger) {
	globalLogger = l
}

func GetLogger() *Logger {
	return globalLogger
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debug(format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, v...)
	}
}

// Fatal завершает процесс даже если логгер еще не инициализирован
func Fatal(format string, v ...interface{}) {
	if globalLogger != nil {
		globalLogger.Fatal(format, v...)
		return
	}
	fmt.Fprintf(os.Stderr, "[FATAL] "+format+"\n", v...)
	os.Exit(1)
}

func Close() {
	if globalLogger != nil {
		globalLogger.Close()
	}
}
