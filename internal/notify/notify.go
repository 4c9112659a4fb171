// Package notify posts desktop notifications about preview sessions.
package notify

const (
	appName      = "Reel Preview"
	desktopEntry = "reelpreview"

	// iconName is a freedesktop icon-theme name shown next to every
	// notification.
	iconName = "video-x-generic"
)

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name or image path, empty for the default
	Timeout    int32  // ms; -1 server default, 0 never expires
	ReplacesID uint32 // id of a notification to replace, 0 for a new one
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify posts n and returns its id. A notifier without a notification
	// service returns 0 and no error.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Nop is a Notifier that drops everything.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }

func (Nop) Close(uint32) error { return nil }
