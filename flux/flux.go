// Access to the local Flux instance.
//
// The exporter only needs three operations from the workload manager: the
// queue configuration, the list of inactive jobs since a timestamp, and a
// per-job info lookup (jobspec, eventlog).  Handle captures exactly that, so
// the rest of the program never sees how the instance is reached.
//
// The concrete implementation shells out to flux(1), which talks to the
// broker for us.  A failure to reach the broker at connect time is reported
// as ErrNotConnected: the instance being down is an expected condition for a
// timer-driven exporter and callers treat it as a soft exit.

package flux

import (
	"context"
	"errors"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

var ErrNotConnected = errors.New("could not connect to Flux instance")

type Handle interface {
	// The queue -> max-duration table from the instance configuration.
	QueueConfig(ctx context.Context) (joblog.QueueLimits, error)

	// All inactive jobs whose submission or completion time is at or after
	// `since` (epoch seconds).  The listing is unbounded.
	ListInactive(ctx context.Context, since float64) ([]*joblog.RawJob, error)

	// One job-info key (jobspec, eventlog) for one job, raw bytes.
	Lookup(ctx context.Context, id uint64, key string) ([]byte, error)
}
