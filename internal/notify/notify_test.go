package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/reelpreview/internal/playback"
)

func TestUrgency_MatchesFreedesktopLevels(t *testing.T) {
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}

	id, err := n.Notify(Notification{Title: "x"})
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, n.Close(7))
}

func TestFinishedNotification(t *testing.T) {
	snap := playback.Snapshot{Count: 5, Total: 69 * time.Second}

	n := finishedNotification("Makeover", snap)
	assert.Equal(t, "Makeover finished", n.Title)
	assert.Equal(t, "5 steps, 1:09", n.Body)
	assert.Equal(t, int32(finishedTimeout), n.Timeout)

	assert.Equal(t, "Reel finished", finishedNotification("", snap).Title)
}
