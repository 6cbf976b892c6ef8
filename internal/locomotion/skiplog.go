package locomotion

import (
	"log"
	"time"
)

// skipLog reports silent skips at most once per second per key.
type skipLog struct {
	last map[string]time.Time
	now  func() time.Time
}

func newSkipLog() *skipLog {
	return &skipLog{last: make(map[string]time.Time), now: time.Now}
}

func (s *skipLog) printf(key, format string, args ...any) {
	if s == nil {
		return
	}
	t := s.now()
	if prev, ok := s.last[key]; ok && t.Sub(prev) < time.Second {
		return
	}
	s.last[key] = t
	log.Printf("Locomotion: "+format, args...)
}
