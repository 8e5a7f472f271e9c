package shader

import (
	"log/slog"
	"os"
)

// shaderLogLevel controls debug logging for the build pipeline.
// Default is LevelInfo, which suppresses Debug messages.
var shaderLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the build pipeline.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		shaderLogLevel.Set(slog.LevelDebug)
	} else {
		shaderLogLevel.Set(slog.LevelInfo)
	}
}

// defaultLogger is shared by pipelines built without WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: shaderLogLevel}))
