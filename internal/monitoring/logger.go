// Package monitoring держит общий логгер конвейера.
package monitoring

import "log"

// Logf диагностический логгер. По умолчанию log.Printf; тесты могут заглушить его через SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger подменяет логгер. nil выключает вывод.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
