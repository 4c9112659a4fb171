//go:build !linux

package notify

import "go.uber.org/zap"

// New returns Nop: desktop notifications are only posted on Linux.
func New(log *zap.Logger) Notifier {
	if log != nil {
		log.Debug("desktop notifications not supported on this platform")
	}
	return Nop{}
}
