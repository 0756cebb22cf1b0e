package log

import (
	"bytes"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDebugLogger returns logs as string by the *Messages methods.
// Reading messages also clears the related buffer.
func NewDebugLogger() DebugLogger {
	l := &debugLogger{
		all:          newMemoryBuffer(),
		debug:        newMemoryBuffer(),
		info:         newMemoryBuffer(),
		warn:         newMemoryBuffer(),
		err:          newMemoryBuffer(),
		warnAndError: newMemoryBuffer(),
	}

	cores := zapcore.NewTee(
		memoryCore(l.all, func(level zapcore.Level) bool { return true }),
		memoryCore(l.debug, func(level zapcore.Level) bool { return level == DebugLevel }),
		memoryCore(l.info, func(level zapcore.Level) bool { return level == InfoLevel }),
		memoryCore(l.warn, func(level zapcore.Level) bool { return level == WarnLevel }),
		memoryCore(l.err, func(level zapcore.Level) bool { return level == ErrorLevel }),
		memoryCore(l.warnAndError, func(level zapcore.Level) bool { return level >= WarnLevel }),
	)
	l.zapLogger = loggerFromZap(zap.New(cores))
	return l
}

type debugLogger struct {
	*zapLogger
	all          *memoryBuffer
	debug        *memoryBuffer
	info         *memoryBuffer
	warn         *memoryBuffer
	err          *memoryBuffer
	warnAndError *memoryBuffer
}

func (l *debugLogger) Truncate() {
	for _, b := range l.buffers() {
		b.readAll()
	}
}

func (l *debugLogger) AllMessages() string {
	return l.all.readAll()
}

func (l *debugLogger) DebugMessages() string {
	return l.debug.readAll()
}

func (l *debugLogger) InfoMessages() string {
	return l.info.readAll()
}

func (l *debugLogger) WarnMessages() string {
	return l.warn.readAll()
}

func (l *debugLogger) ErrorMessages() string {
	return l.err.readAll()
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.warnAndError.readAll()
}

func (l *debugLogger) buffers() []*memoryBuffer {
	return []*memoryBuffer{l.all, l.debug, l.info, l.warn, l.err, l.warnAndError}
}

func memoryCore(buffer *memoryBuffer, enabled func(zapcore.Level) bool) zapcore.Core {
	return zapcore.NewCore(consoleEncoder(), zapcore.AddSync(buffer), zap.LevelEnablerFunc(enabled))
}

type memoryBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func newMemoryBuffer() *memoryBuffer {
	return &memoryBuffer{}
}

func (b *memoryBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *memoryBuffer) readAll() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	out := b.buf.String()
	b.buf.Reset()
	return out
}
