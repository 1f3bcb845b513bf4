package joblog

import (
	"fmt"
	"sort"

	"github.com/cmoussa1/flux-data-monitoring/common"
)

// The result field carries a pre-defined set of values for a terminated job,
// defined in libjob/job.h in flux-core.  An unlisted code is a hard error,
// it must never be defaulted away silently.
var outcomeNames = map[int]string{
	1: "COMPLETED",
	2: "FAILED",
	4: "CANCELLED",
	8: "TIMEOUT",
}

// What to use for the moment a job became eligible to run.  The job manager
// reports t_depend but the reference pipeline derived the eligible time as
// t_run - (t_run - t_depend), which is always just t_run and makes the queue
// wait identically zero.  Until the consumers confirm which was intended,
// both are available and the reference behavior is the default.
type EligibleTimeMode int

const (
	EligibleFromRun EligibleTimeMode = iota
	EligibleFromDepend
)

func ParseEligibleTimeMode(s string) (EligibleTimeMode, error) {
	switch s {
	case "run":
		return EligibleFromRun, nil
	case "depend":
		return EligibleFromDepend, nil
	}
	return EligibleFromRun, fmt.Errorf("bad eligible-time mode %q: must be \"run\" or \"depend\"", s)
}

// Names resolved from the numeric user id.  Resolution failures yield the
// documented fallback values, never an error.
type IdentityResolver interface {
	// The user name for uid, or the decimal uid itself when unknown.
	UserName(uid int64) string

	// The primary group id for uid as decimal text, or "" when unknown.
	PrimaryGroup(uid int64) string

	// The group name for a gid obtained from PrimaryGroup, or "" when gid
	// is "" or unknown.
	GroupName(gid string) string
}

// Map converts one raw job into its normalized record.  Pure: the inputs are
// not mutated and the result depends only on the arguments.
func Map(
	job *RawJob,
	queues QueueLimits,
	ident IdentityResolver,
	mode EligibleTimeMode,
) (*Record, error) {
	rec := &Record{
		Event:  Event{Dataset: Dataset},
		Schema: Schema{VersionNumber: SchemaVersion},
		Job: Job{
			ID:                job.ID,
			Name:              job.Name,
			Priority:          job.Priority,
			State:             job.State,
			Bank:              job.Bank,
			Queue:             job.Queue,
			Project:           job.Project,
			Jobspec:           job.Jobspec,
			EventLog:          job.EventLog,
			RequestedDuration: job.Duration,
			Node:              Node{List: job.NodeList, Count: job.NNodes},
			Task:              Task{Count: job.NTasks},
			CWD:               job.CWD,
			Urgency:           job.Urgency,
			Success:           job.Success,
			ExitCode:          job.WaitStatus,
			TSubmit:           job.TSubmit,
			TRun:              job.TRun,
			TInactive:         job.TInactive,
			TCleanup:          job.TCleanup,
			Scheduler:         SchedulerName,
		},
		User: User{ID: job.UserID},
	}

	if job.Result != nil {
		outcome, found := outcomeNames[*job.Result]
		if !found {
			return nil, fmt.Errorf("job %d: unmapped result code %d", job.ID, *job.Result)
		}
		rec.Event.Outcome = outcome
	}

	if job.Queue != nil {
		rec.Job.QueueMaxTimeLimit = queues.MaxTimeLimit(*job.Queue)
	}

	if job.UserID != nil {
		rec.User.Name = ident.UserName(*job.UserID)
		rec.Group.ID = ident.PrimaryGroup(*job.UserID)
		rec.Group.Name = ident.GroupName(rec.Group.ID)
	}

	if job.TSubmit != nil {
		rec.Job.SubmitTimeEpoch = job.TSubmit
		rec.Job.SubmitTime = common.ISO8601(*job.TSubmit)
	}
	if job.TRun != nil {
		rec.Event.Start = common.ISO8601(*job.TRun)
	}
	if job.TInactive != nil {
		rec.Event.End = common.ISO8601(*job.TInactive)
	}
	if job.Expiration != nil {
		rec.Job.TimeLimit = common.ISO8601(*job.Expiration)
	}

	if job.TDepend != nil && job.TRun != nil {
		eligible := *job.TRun
		if mode == EligibleFromDepend {
			eligible = *job.TDepend
		}
		rec.Job.EligibleTime = common.ISO8601(eligible)
		queueTime := common.Round1(*job.TRun - eligible)
		rec.Job.QueueTime = &queueTime
	}

	if job.TInactive != nil && job.TRun != nil {
		seconds := common.Round1(*job.TInactive - *job.TRun)
		nanos := seconds * 1e9
		rec.Event.DurationSeconds = &seconds
		rec.Event.Duration = &nanos
	}

	if job.NNodes != nil && job.NTasks != nil {
		procs := *job.NNodes * *job.NTasks
		rec.Job.Proc.Count = &procs
	}

	if job.ExceptionOccurred != nil && *job.ExceptionOccurred {
		rec.Job.ExceptionType = job.ExceptionType
		rec.Job.ExceptionNote = job.ExceptionNote
	}

	return rec, nil
}

// MapAll maps every job and sorts the records by submit time, ascending.  A
// record without a submit time sorts as if submitted at epoch 0 so that it
// lands at the front.
func MapAll(
	jobs []*RawJob,
	queues QueueLimits,
	ident IdentityResolver,
	mode EligibleTimeMode,
) ([]*Record, error) {
	recs := make([]*Record, 0, len(jobs))
	for _, job := range jobs {
		rec, err := Map(job, queues, ident, mode)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return submitKey(recs[i]) < submitKey(recs[j])
	})
	return recs, nil
}

func submitKey(rec *Record) float64 {
	if rec.Job.SubmitTimeEpoch == nil {
		return 0
	}
	return *rec.Job.SubmitTimeEpoch
}
