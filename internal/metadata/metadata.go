// Package metadata tracks per-run audit records. Every invocation stores
// exactly one record in the jobs bucket, whatever the crawl outcome, so the
// audit trail and operational logs are the only failure evidence.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	executionDateLayout = "2006/01/02"
	executionTSLayout   = "2006-01-02T15:04:05.000000"
	queryDateLayout     = "2006-01-02"
)

// JobMetadata keeps track of one job run. It is created optimistically in
// the successful state and mutated in place if the crawl fails.
type JobMetadata struct {
	ID             string
	AppVersion     string
	ExecutionDate  string
	ExecutionTS    string
	QueryStartDate string
	QueryStopDate  string
	JobSuccessful  string
	JobException   string
}

// New builds an optimistic JobMetadata for a run starting now.
func New(appVersion string, now time.Time, queryStart, queryStop time.Time) JobMetadata {
	now = now.UTC()
	return JobMetadata{
		ID:             uuid.NewString(),
		AppVersion:     appVersion,
		ExecutionDate:  now.Format(executionDateLayout),
		ExecutionTS:    now.Format(executionTSLayout),
		QueryStartDate: queryStart.Format(queryDateLayout),
		QueryStopDate:  queryStop.Format(queryDateLayout),
		JobSuccessful:  "True",
		JobException:   "",
	}
}

// MarkFailed flips the record into the failed state with a one-line,
// comma-sanitized description so the audit CSV stays well-formed.
func (m *JobMetadata) MarkFailed(err error) {
	m.JobSuccessful = "False"
	m.JobException = strings.ReplaceAll(err.Error(), ",", " ")
}

// Object renders the jobs-bucket path for this record.
func (m JobMetadata) Object() string {
	return fmt.Sprintf("%s/%s.csv", m.ExecutionDate, m.ID)
}

// CSV serializes the record as a one-header/one-data-row CSV.
func (m JobMetadata) CSV() []byte {
	header := strings.Join([]string{
		"id", "app_version", "execution_date", "execution_ts",
		"query_start_date", "query_stop_date", "job_successful", "job_exception",
	}, ",")
	values := strings.Join([]string{
		m.ID, m.AppVersion, m.ExecutionDate, m.ExecutionTS,
		m.QueryStartDate, m.QueryStopDate, m.JobSuccessful, m.JobException,
	}, ",")
	return []byte(header + "\n" + values)
}
