package parameter

// Debug Logging
const (
	// LogDir is the directory debug logs are written to, relative to the working directory
	LogDir = "logs"

	// LogFileName is the active debug log file
	LogFileName = "wireview.log"

	// MaxLogSize triggers rotation of the active log when exceeded (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
