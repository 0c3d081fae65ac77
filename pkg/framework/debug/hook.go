package debug

import (
	"github.com/sirupsen/logrus"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
)

// HostHook forwards log entries to the host's clap.log capability so they
// show up in the host's own console.
type HostHook struct {
	log    *extension.HostLog
	levels []logrus.Level
}

// NewHostHook returns nil when log is nil, i.e. the host offers no log.
// Entries below minLevel are not forwarded.
func NewHostHook(log *extension.HostLog, minLevel LogLevel) *HostHook {
	if log == nil {
		return nil
	}
	var levels []logrus.Level
	for _, lvl := range logrus.AllLevels {
		if lvl <= minLevel.logrus() {
			levels = append(levels, lvl)
		}
	}
	return &HostHook{log: log, levels: levels}
}

// Levels implements logrus.Hook.
func (h *HostHook) Levels() []logrus.Level { return h.levels }

// Fire implements logrus.Hook.
func (h *HostHook) Fire(e *logrus.Entry) error {
	msg := e.Message
	if c, ok := e.Data["component"].(string); ok && c != "" {
		msg = "[" + c + "] " + msg
	}
	h.log.Log(Severity(e.Level), msg)
	return nil
}

// Severity maps a logrus level to the closest host log severity.
func Severity(l logrus.Level) clap.LogSeverity {
	switch l {
	case logrus.TraceLevel, logrus.DebugLevel:
		return clap.LogDebug
	case logrus.InfoLevel:
		return clap.LogInfo
	case logrus.WarnLevel:
		return clap.LogWarning
	case logrus.ErrorLevel:
		return clap.LogError
	default:
		return clap.LogFatal
	}
}
