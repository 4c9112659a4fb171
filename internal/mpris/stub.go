//go:build !linux

package mpris

import "go.uber.org/zap"

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Session, _ string, _ *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// SetSession is a no-op on non-Linux platforms.
func (a *Adapter) SetSession(_ Session, _ string) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
