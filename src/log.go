package loc

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger shared by cmd/gen and cmd/view. The teacher
// repo declared charmbracelet/log as a dependency but never wired it up
// anywhere; this is that wiring, replacing the teacher's C-era
// text_color_set/dw_printf colour-coded printf scheme with a leveled,
// structured logger.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// SetLogLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to Logger, falling back to info on an unrecognized name.
func SetLogLevel(name string) {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		lvl = log.InfoLevel
	}
	Logger.SetLevel(lvl)
}
