package journal

import (
	"strings"

	"github.com/divwatch/divwatch/internal/model"
)

// NormalizeLevel converts assorted severity spellings to the journal's
// closed label set. Anything unrecognized maps to INFO.
func NormalizeLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "DBG", "TRACE":
		return model.LevelDebug
	case "INFO", "INFORMATION", "INF":
		return model.LevelInfo
	case "WARNING", "WARN", "WRN":
		return model.LevelWarning
	case "ERROR", "ERR":
		return model.LevelError
	case "CRITICAL", "CRIT", "FATAL":
		return model.LevelCritical
	default:
		return model.LevelInfo
	}
}
