package agentlog

import (
	cring "container/ring"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Ring is a fixed-capacity in-memory log sink. The agent has no
// log-shipping pipeline of its own, so the conductor retrieves recent
// history by issuing the get_logs command, which reads straight out of
// this buffer (see Dump and the rpc package's "get_logs" case).
type Ring struct {
	capacity int

	mu  sync.Mutex
	buf *cring.Ring
}

func NewRing(capacity int) *Ring {
	return &Ring{
		buf:      cring.New(capacity),
		capacity: capacity,
	}
}

// Println renders v the way the standard library's log.Logger would and
// advances the ring by one slot, overwriting the oldest retained line
// once the buffer has wrapped.
func (l *Ring) Println(v ...interface{}) {
	line := formatLogLine(time.Now(), v...)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf = l.buf.Next()
	l.buf.Value = line
}

// formatLogLine lays out a timestamp-prefixed line without going through
// fmt's time formatting, matching the cheap integer-append style the rest
// of this package uses for its own log prologue.
func formatLogLine(t time.Time, v ...interface{}) string {
	var buf []byte

	year, month, day := t.Date()
	buf = strconv.AppendInt(buf, int64(year), 10)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, int64(month), 10)
	buf = append(buf, '/')
	buf = strconv.AppendInt(buf, int64(day), 10)
	buf = append(buf, ' ')

	hour, min, sec := t.Clock()
	buf = strconv.AppendInt(buf, int64(hour), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(min), 10)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(sec), 10)
	buf = append(buf, ' ')

	buf = append(buf, fmt.Sprintln(v...)...)
	return string(buf)
}

// Dump returns the retained log lines oldest first. Slots that have never
// been written (buffer not yet full) are skipped rather than returned as
// empty strings.
func (l *Ring) Dump() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]string, 0, l.capacity)

	l.buf.Next().Do(func(v interface{}) {
		if v == nil {
			return
		}
		res = append(res, v.(string))
	})

	return res
}
