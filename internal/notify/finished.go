package notify

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/reelpreview/internal/playback"
	"github.com/llehouerou/reelpreview/internal/timeline"
)

const finishedTimeout = 5000 // ms

// FinishedListener posts a desktop notification each time a preview plays
// through to the end. Repeated runs replace the previous notification.
type FinishedListener struct {
	n     Notifier
	title string
	log   *zap.Logger

	mu     sync.Mutex
	lastID uint32
}

// NewFinishedListener returns a playback.Listener posting through n.
func NewFinishedListener(n Notifier, title string, log *zap.Logger) *FinishedListener {
	if log == nil {
		log = zap.NewNop()
	}
	return &FinishedListener{n: n, title: title, log: log}
}

// OnEvent implements playback.Listener. Posting happens off the session
// lock since D-Bus calls block.
func (l *FinishedListener) OnEvent(e playback.Event) {
	if e.Kind != playback.EventFinished {
		return
	}
	notif := finishedNotification(l.title, e.Snapshot)
	go l.post(notif)
}

func (l *FinishedListener) post(notif Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	notif.ReplacesID = l.lastID
	id, err := l.n.Notify(notif)
	if err != nil {
		l.log.Debug("desktop notification failed", zap.Error(err))
		return
	}
	l.lastID = id
}

func finishedNotification(title string, snap playback.Snapshot) Notification {
	if title == "" {
		title = "Reel"
	}
	return Notification{
		Title:   title + " finished",
		Body:    fmt.Sprintf("%d steps, %s", snap.Count, timeline.FormatClock(snap.Total)),
		Timeout: finishedTimeout,
		Urgency: UrgencyLow,
	}
}
