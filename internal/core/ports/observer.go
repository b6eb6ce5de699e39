package ports

import "time"

// PipelineObserver is notified about the outcome of the stages of a
// transfer.
type PipelineObserver interface {
	ObserveSignerRoundTrip(elapsed time.Duration, err error)
	ObserveSubmission(accepted bool, err error)
}
