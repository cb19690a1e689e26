package sequence

import "time"

// Outcome classifies a processed request for metrics.
type Outcome string

const (
	OutcomeHit      Outcome = "hit"
	OutcomeExtended Outcome = "extended"
	OutcomeOverflow Outcome = "overflow"
	OutcomeInvalid  Outcome = "invalid"
)

// Recorder receives generator measurements. Implementations must be safe
// for concurrent use: SetQueueDepth is called from submitting goroutines.
type Recorder interface {
	ObserveRequest(outcome Outcome, d time.Duration)
	SetCacheLength(n int)
	SetQueueDepth(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(Outcome, time.Duration) {}
func (nopRecorder) SetCacheLength(int)                    {}
func (nopRecorder) SetQueueDepth(int)                     {}
