// Package logging configures the zap logger shared by the client, the relay
// server and the master directory.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It discards everything until Init is
// called, so tests stay quiet.
var Log = zap.NewNop().Sugar()

// Options selects where log lines go.
type Options struct {
	File  string // rolling file; empty writes to stderr
	Level string // debug, info, warn, error
}

// Init builds the console-encoded logger described by opts and installs it
// as Log.
func Init(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return err
		}
	}

	var ws zapcore.WriteSyncer
	if opts.File != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	} else {
		ws = zapcore.Lock(os.Stderr)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)

	Log = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// Named returns a child of Log tagged with name, e.g. "room" or "client".
func Named(name string) *zap.SugaredLogger {
	return Log.Named(name)
}

// Sync flushes buffered log lines.
func Sync() {
	_ = Log.Sync()
}
