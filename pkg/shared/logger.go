package shared

import "go.uber.org/zap"

// ResolveLogger returns logger, or a no-op logger when it is nil.
func ResolveLogger(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
