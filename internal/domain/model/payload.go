package model

import (
	"errors"
	"strings"
)

var errEmptyResume = errors.New("resume text is required")

// Payload carries the buyer's in-flight work bound to a payment session.
// It is held only for the session's lifetime and never persisted beyond it.
type Payload struct {
	ResumeText string `json:"resume_text"`
	JobPosting string `json:"job_posting,omitempty"` // optional target job posting
	SourceName string `json:"source_name,omitempty"` // original upload filename, display only
}

// Validate checks the minimum the premium pipeline needs to run.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.ResumeText) == "" {
		return errEmptyResume
	}
	return nil
}

// HasJobPosting reports whether the buyer attached a job posting for
// targeted analysis.
func (p Payload) HasJobPosting() bool {
	return strings.TrimSpace(p.JobPosting) != ""
}
