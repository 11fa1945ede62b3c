package model

import "time"

// Shared defaults used by the CLI and packages.
const (
	DefaultPaceDelay       = 500 * time.Millisecond
	DefaultJournalFilename = "system.log"
	DefaultAPIPort         = 3000
)
