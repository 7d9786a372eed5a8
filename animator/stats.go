package animator

import "time"

// Stats describes an animator's work so far.
type Stats struct {
	Ticks   int64
	Skipped int64
	Regrids int64

	Points     int
	Links      int
	Generation uint64

	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration

	// LastFrame is the host timestamp passed to the most recent tick.
	LastFrame time.Duration
}

type tickStats struct {
	ticks         int64
	skipped       int64
	regrids       int64
	links         int
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
	lastFrame     time.Duration
}

func newTickStats() tickStats {
	return tickStats{minDuration: time.Duration(1<<63 - 1)}
}

func (s *tickStats) record(now, duration time.Duration, links int) {
	s.ticks++
	s.links = links
	s.lastFrame = now
	s.lastDuration = duration
	s.totalDuration += duration

	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

func (s *tickStats) snapshot() Stats {
	out := Stats{
		Ticks:         s.ticks,
		Skipped:       s.skipped,
		Regrids:       s.regrids,
		Links:         s.links,
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
		LastFrame:     s.lastFrame,
	}
	if s.ticks > 0 {
		out.MinDuration = s.minDuration
		out.AvgDuration = s.totalDuration / time.Duration(s.ticks)
	}
	return out
}
