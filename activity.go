package recon

import (
	"fmt"
	"time"
)

// Activity is one entry of an [ActivityLog].
type Activity struct {
	Time    time.Time
	Message string
}

// String returns the entry as "15:04 - message".
func (a Activity) String() string {
	return fmt.Sprintf("%s - %s", a.Time.Format("15:04"), a.Message)
}

// ActivityLog narrates what happened during a session: uploads, runs, exports.
// Its zero value is ready to use.
type ActivityLog struct {
	entries []Activity
	now     func() time.Time
}

// Add records a message at the current time.
func (l *ActivityLog) Add(format string, args ...any) {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.entries = append(l.entries, Activity{Time: now(), Message: fmt.Sprintf(format, args...)})
}

// Entries returns the log, newest first.
func (l *ActivityLog) Entries() []Activity {
	out := make([]Activity, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of entries.
func (l *ActivityLog) Len() int { return len(l.entries) }
