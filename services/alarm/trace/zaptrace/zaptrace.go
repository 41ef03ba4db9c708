// Package zaptrace reports supervisor activity through zap on host builds.
package zaptrace

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"buzzalarm-go/services/alarm/buzzer"
	"buzzalarm-go/types"
)

// NewConsole builds a console-encoded logger writing to w.
func NewConsole(level zapcore.LevelEnabler, w io.Writer, options ...zap.Option) *zap.Logger {
	if level == nil {
		level = zap.InfoLevel
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		TimeKey:          "time",
		NameKey:          "logger",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, options...)
}

// ParseLevel maps a level name to a zap level; unknown names give Info.
func ParseLevel(s string) (zapcore.Level, bool) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, false
	}
	return l, true
}

// Observer logs every transition. Entering an alarm state is a warning.
type Observer struct {
	log *zap.Logger
}

func NewObserver(l *zap.Logger) *Observer {
	return &Observer{log: l.Named("supervisor")}
}

func (o *Observer) Transition(step uint32, from, to types.State) {
	fields := []zap.Field{
		zap.Uint32("tick", step),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	}
	switch to {
	case types.StatePreAlarm, types.StateAlarm:
		o.log.Warn("transition", fields...)
	default:
		o.log.Info("transition", fields...)
	}
}

// Driver wraps a tone driver and logs every call at debug level.
type Driver struct {
	next buzzer.Driver
	log  *zap.Logger
}

func NewDriver(next buzzer.Driver, l *zap.Logger) *Driver {
	return &Driver{next: next, log: l.Named("buzzer")}
}

func (d *Driver) Drive(t types.Tone, v types.Volume) {
	d.log.Debug("drive", zap.Stringer("tone", t), zap.Stringer("volume", v))
	d.next.Drive(t, v)
}

func (d *Driver) Stop() {
	d.log.Debug("stop")
	d.next.Stop()
}
