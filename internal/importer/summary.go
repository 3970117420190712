package importer

import "time"

// maxVerboseErrors caps how many record failures are carried verbosely
// per kind; the rest are counted only.
const maxVerboseErrors = 5

type RecordError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type KindSummary struct {
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Errored int           `json:"errored"`
	Errors  []RecordError `json:"errors,omitempty"`
}

func (s *KindSummary) addError(index int, err error) {
	s.Errored++
	if len(s.Errors) < maxVerboseErrors {
		s.Errors = append(s.Errors, RecordError{Index: index, Message: err.Error()})
	}
}

// Summary is the structured result of one import run. It is reported
// regardless of outcome; DryRun marks a run that was deliberately
// rolled back.
type Summary struct {
	DryRun          bool        `json:"dry_run"`
	Posts           KindSummary `json:"posts"`
	Followers       KindSummary `json:"followers"`
	Following       KindSummary `json:"following"`
	SnapshotCreated bool        `json:"snapshot_created"`
	SnapshotDate    time.Time   `json:"snapshot_date,omitempty"`
}
