// Package demo serves scripted status responses in the download server's format.
package demo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"ydwatch/internal/progress"
)

// Script is an ordered list of snapshots. Each read returns the next one and
// the last snapshot repeats forever.
type Script struct {
	mu    sync.Mutex
	steps []progress.Snapshot
	next  int
}

// NewScript returns a script over steps. An empty script reports "Done".
func NewScript(steps ...progress.Snapshot) *Script {
	if len(steps) == 0 {
		steps = []progress.Snapshot{{Phase: progress.PhaseDone, Progress: "Done"}}
	}
	return &Script{steps: steps}
}

// Next returns the current snapshot and advances.
func (s *Script) Next() progress.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.steps[s.next]
	if s.next < len(s.steps)-1 {
		s.next++
	}
	return snap
}

// Reset rewinds the script to its first snapshot.
func (s *Script) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = 0
}

// Len is the number of distinct snapshots.
func (s *Script) Len() int { return len(s.steps) }

// SingleScript replays a single-file download.
func SingleScript() *Script {
	return NewScript(
		progress.Snapshot{Phase: progress.PhaseSingleRunning, Progress: "Waiting"},
		progress.Snapshot{Phase: progress.PhaseSingleRunning, Progress: "Downloading"},
		progress.Snapshot{Phase: progress.PhaseSingleRunning, Progress: "Converting"},
		progress.Snapshot{Phase: progress.PhaseDone, Progress: "Done"},
	)
}

// PlaylistScript replays a playlist of total items where the 1-based indexes
// in failed finish with errors.
func PlaylistScript(total int, failed []int) *Script {
	if total <= 0 {
		return NewScript(progress.Snapshot{Phase: progress.PhaseFinished, Progress: "Files downloaded(0) with 0 fails"})
	}
	bad := make(map[int]bool, len(failed))
	for _, i := range failed {
		if i >= 1 && i <= total {
			bad[i] = true
		}
	}

	codes := make([]byte, 0, total)
	steps := []progress.Snapshot{{Phase: progress.PhasePlaylistRunning, Progress: "Preparing for downloading"}}
	for counter := 1; counter <= total; counter++ {
		steps = append(steps, progress.Snapshot{
			Phase:    progress.PhasePlaylistRunning,
			Progress: fmt.Sprintf("Downloading %d of %d", counter, total),
			Outcomes: string(codes),
		})
		if bad[counter] {
			codes = append(codes, '2')
		} else {
			codes = append(codes, '1')
		}
	}
	steps = append(steps, progress.Snapshot{
		Phase:    progress.PhaseFinished,
		Progress: fmt.Sprintf("Files downloaded(%d) with %d fails", total, len(bad)),
		Outcomes: string(codes),
	})
	return NewScript(steps...)
}

// ParseFailed reads a comma-separated list of 1-based indexes, e.g. "3,7".
func ParseFailed(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid segment index %q", part)
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
