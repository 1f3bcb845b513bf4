// Normalized job-log records in the flux.joblog schema.
//
// A RawJob holds the attributes of one inactive job as returned by the
// job-list interface, plus the enrichment data (jobspec, eventlog,
// accounting attributes) looked up per job.  A Record is the normalized
// output document; one RawJob maps to exactly one Record and neither is
// mutated after construction.

package joblog

import (
	"encoding/json"
)

const (
	// Bumped whenever the layout of Record changes incompatibly.
	SchemaVersion = 2.2

	// Dataset tag attached to every record's event group.
	Dataset = "flux.joblog"

	// All records exported by this tool come from the same scheduler.
	SchedulerName = "flux"
)

// Optional attributes are pointers: nil means the workload manager did not
// report the field, and the mapped record omits everything derived from it.
type RawJob struct {
	ID                uint64          `json:"id"`
	UserID            *int64          `json:"userid,omitempty"`
	Name              *string         `json:"name,omitempty"`
	Priority          *int64          `json:"priority,omitempty"`
	State             *string         `json:"state,omitempty"`
	Result            *int            `json:"result,omitempty"`
	Urgency           *int64          `json:"urgency,omitempty"`
	CWD               *string         `json:"cwd,omitempty"`
	Success           *bool           `json:"success,omitempty"`
	WaitStatus        *int64          `json:"waitstatus,omitempty"`
	NNodes            *int64          `json:"nnodes,omitempty"`
	NTasks            *int64          `json:"ntasks,omitempty"`
	NodeList          *string         `json:"nodelist,omitempty"`
	TSubmit           *float64        `json:"t_submit,omitempty"`
	TDepend           *float64        `json:"t_depend,omitempty"`
	TRun              *float64        `json:"t_run,omitempty"`
	TCleanup          *float64        `json:"t_cleanup,omitempty"`
	TInactive         *float64        `json:"t_inactive,omitempty"`
	Expiration        *float64        `json:"expiration,omitempty"`
	ExceptionOccurred *bool           `json:"exception_occurred,omitempty"`
	ExceptionType     *string         `json:"exception_type,omitempty"`
	ExceptionNote     *string         `json:"exception_note,omitempty"`

	// Enrichment, filled from the per-job info lookup, not by the listing
	// call.  All absent when the job's jobspec was missing or malformed.
	Jobspec  json.RawMessage `json:"jobspec,omitempty"`
	EventLog *string         `json:"eventlog,omitempty"`
	Duration *float64        `json:"duration,omitempty"`
	Bank     *string         `json:"bank,omitempty"`
	Queue    *string         `json:"queue,omitempty"`
	Project  *string         `json:"project,omitempty"`
}

// Queue name to configured max duration.  Built once per run from the queue
// configuration and read-only thereafter.
type QueueLimits map[string]string

const UnknownTimeLimit = "UNKNOWN"

func (q QueueLimits) MaxTimeLimit(queue string) string {
	if limit, found := q[queue]; found {
		return limit
	}
	return UnknownTimeLimit
}

type Record struct {
	Event  Event  `json:"event"`
	Schema Schema `json:"schema"`
	Job    Job    `json:"job"`
	User   User   `json:"user"`
	Group  Group  `json:"group"`
}

type Schema struct {
	VersionNumber float64 `json:"version_number"`
}

type Event struct {
	Dataset string `json:"dataset"`
	Outcome string `json:"outcome,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`

	// Wall-clock execution time; the plain duration field is the same value
	// scaled to nanoseconds.
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Duration        *float64 `json:"duration,omitempty"`
}

type Node struct {
	List  *string `json:"list,omitempty"`
	Count *int64  `json:"count,omitempty"`
}

type Task struct {
	Count *int64 `json:"count,omitempty"`
}

type Proc struct {
	Count *int64 `json:"count,omitempty"`
}

type Job struct {
	ID                uint64          `json:"id"`
	Name              *string         `json:"name,omitempty"`
	Priority          *int64          `json:"priority,omitempty"`
	State             *string         `json:"state,omitempty"`
	Bank              *string         `json:"bank,omitempty"`
	Queue             *string         `json:"queue,omitempty"`
	QueueMaxTimeLimit string          `json:"queue_maxtimelimit,omitempty"`
	Project           *string         `json:"project,omitempty"`
	Jobspec           json.RawMessage `json:"jobspec,omitempty"`
	EventLog          *string         `json:"eventlog,omitempty"`
	RequestedDuration *float64        `json:"requested_duration,omitempty"`
	Node              Node            `json:"node"`
	Task              Task            `json:"task"`
	Proc              Proc            `json:"proc"`
	CWD               *string         `json:"cwd,omitempty"`
	Urgency           *int64          `json:"urgency,omitempty"`
	Success           *bool           `json:"success,omitempty"`
	ExitCode          *int64          `json:"exit_code,omitempty"`
	TSubmit           *float64        `json:"t_submit,omitempty"`
	TRun              *float64        `json:"t_run,omitempty"`
	TInactive         *float64        `json:"t_inactive,omitempty"`
	TCleanup          *float64        `json:"t_cleanup,omitempty"`
	SubmitTimeEpoch   *float64        `json:"submittime_epoch,omitempty"`
	SubmitTime        string          `json:"submittime,omitempty"`
	EligibleTime      string          `json:"eligibletime,omitempty"`
	QueueTime         *float64        `json:"queue_time,omitempty"`
	TimeLimit         string          `json:"timelimit,omitempty"`
	ExceptionType     *string         `json:"exception_type,omitempty"`
	ExceptionNote     *string         `json:"exception_note,omitempty"`
	Scheduler         string          `json:"scheduler"`
}

type User struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Group struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}
