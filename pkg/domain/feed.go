package domain

import "time"

// AnalysisStatus is the processing state of a feed
type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusInProgress AnalysisStatus = "in_progress"
	StatusDone       AnalysisStatus = "done"
	StatusFailed     AnalysisStatus = "failed"
)

// Valid reports whether the status is one of the known values
func (s AnalysisStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether a feed may move from s to next.
// A run starts from any state except in_progress and must end in done or failed.
func (s AnalysisStatus) CanTransition(next AnalysisStatus) bool {
	switch next {
	case StatusInProgress:
		return s != StatusInProgress
	case StatusDone, StatusFailed:
		return s == StatusInProgress
	}
	return false
}

// Feed represents a registered RSS/Atom source
type Feed struct {
	ID        int64
	URL       string
	Status    AnalysisStatus
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FeedRun describes the outcome of one processing run of a feed
type FeedRun struct {
	FeedID int64
	Busy   bool           // the feed was already in progress, nothing was done
	Status AnalysisStatus // final status, empty if the run did not start
	Err    error          // failure cause, or the error that prevented the run from starting

	Entries       int // entries in the fetched document
	Inserted      int // new articles stored
	Existing      int // entries whose url is already stored
	Skipped       int // entries without link or content
	NotSummarized int // entries dropped because summarization failed
}
