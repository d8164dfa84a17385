package progress

import "time"

// Phase is the job's coarse state as reported by the status endpoint.
type Phase int

// Phase codes observed from the server. Only the running code of a poller
// kind is non-terminal for that kind; everything else ends the session.
const (
	PhaseSingleRunning   Phase = 0
	PhaseDone            Phase = 1
	PhaseError           Phase = 2
	PhasePlaylistRunning Phase = 3
	PhaseFinished        Phase = 4
)

func (p Phase) String() string {
	switch p {
	case PhaseSingleRunning:
		return "single-running"
	case PhaseDone:
		return "done"
	case PhaseError:
		return "error"
	case PhasePlaylistRunning:
		return "playlist-running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Kind selects which job type a poller tracks.
type Kind int

const (
	KindSingle Kind = iota
	KindPlaylist
)

func (k Kind) String() string {
	if k == KindPlaylist {
		return "playlist"
	}
	return "single"
}

// Active reports whether p means "still running" for this kind of job.
func (k Kind) Active(p Phase) bool {
	if k == KindPlaylist {
		return p == PhasePlaylistRunning
	}
	return p == PhaseSingleRunning
}

// Interval is the default polling cadence for the kind.
func (k Kind) Interval() time.Duration {
	if k == KindPlaylist {
		return 9000 * time.Millisecond
	}
	return 2000 * time.Millisecond
}

// Snapshot is one status endpoint response.
type Snapshot struct {
	Phase    Phase  `json:"Status_code"`
	Progress string `json:"Progress"`
	// Outcomes holds one digit per completed segment; empty until segments exist.
	Outcomes string `json:"Status_codes,omitempty"`
}

// Outcome is the visual classification of a finished segment.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomePartialFailure
)

func (o Outcome) String() string {
	if o == OutcomePartialFailure {
		return "partial-failure"
	}
	return "ok"
}

// OutcomeFromCode maps a single outcome character. Only '2' is a partial failure.
func OutcomeFromCode(c byte) Outcome {
	if c == '2' {
		return OutcomePartialFailure
	}
	return OutcomeOK
}

// OutcomeAt returns the outcome of the 1-based segment index.
// ok is false when outcomes has no character for that segment.
func OutcomeAt(outcomes string, index int) (o Outcome, ok bool) {
	if index < 1 || index > len(outcomes) {
		return OutcomeOK, false
	}
	return OutcomeFromCode(outcomes[index-1]), true
}
