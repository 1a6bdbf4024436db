// Package logsvc provides the application logger: structured zap output
// with optional Rollbar forwarding of errors outside DEV.
package logsvc

import (
	"strings"

	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap"

	"github.com/edulab/peerreview/core"
)

type Logger struct {
	sl *zap.SugaredLogger
	rb *rollbar.Client
}

var _ core.Logger = (*Logger)(nil)

// NewLogger builds the process logger. Rollbar forwarding is active only
// when a token is configured and the app is not in debug mode.
func NewLogger(conf *core.Config) *Logger {
	var zl *zap.Logger
	var err error
	if conf.Debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		zl = zap.NewNop()
	}

	l := &Logger{sl: zl.Sugar().Named(conf.AppName)}
	if conf.RollbarToken != "" && !conf.Debug {
		l.rb = rollbar.NewAsync(
			conf.RollbarToken,
			strings.ToLower(conf.Env),
			conf.Build,
			"", /* serverHost */
			"github.com/edulab/peerreview",
		)
	}
	return l
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log(l.sl.Debugw, msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log(l.sl.Infow, msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log(l.sl.Warnw, msg, args) }

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(l.sl.Errorw, msg, args)
	l.report(rollbar.ERR, msg, args)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	if l.rb != nil {
		l.rb.Wait()
	}
	l.log(l.sl.Fatalw, msg, args) // exits
}

// Close flushes buffered log entries and pending Rollbar payloads.
func (l *Logger) Close() error {
	if l.rb != nil {
		if err := l.rb.Close(); err != nil {
			return err
		}
	}
	return l.sl.Sync()
}

func (l *Logger) log(fn func(string, ...interface{}), msg string, args []interface{}) {
	if len(args) == 0 {
		fn(msg)
		return
	}
	if err := firstError(args); err != nil {
		fn(msg, "error", err)
		return
	}
	fn(msg, "details", args)
}

func (l *Logger) report(level, msg string, args []interface{}) {
	if l.rb == nil {
		return
	}
	if err := firstError(args); err != nil {
		l.rb.Error(err)
		return
	}
	l.rb.Message(level, msg)
}

func firstError(args []interface{}) error {
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			return err
		}
	}
	return nil
}
