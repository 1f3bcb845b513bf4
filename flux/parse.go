package flux

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

// The instance configuration, reduced to the part we consume: per-queue
// scheduling policy limits.  A queue's duration limit may be an FSD string
// ("4h") or a number of seconds, depending on how the admin wrote the TOML.
type instanceConfig struct {
	Queues map[string]struct {
		Policy struct {
			Limits struct {
				Duration any `json:"duration"`
			} `json:"limits"`
		} `json:"policy"`
	} `json:"queues"`
}

func parseQueueConfig(data []byte) (joblog.QueueLimits, error) {
	var config instanceConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config.get: malformed configuration: %w", err)
	}
	limits := make(joblog.QueueLimits, len(config.Queues))
	for queue, details := range config.Queues {
		switch d := details.Policy.Limits.Duration.(type) {
		case string:
			limits[queue] = d
		case float64:
			limits[queue] = strconv.FormatFloat(d, 'f', -1, 64)
		default:
			limits[queue] = joblog.UnknownTimeLimit
		}
	}
	return limits, nil
}

type jobList struct {
	Jobs []*joblog.RawJob `json:"jobs"`
}

func parseJobList(data []byte) ([]*joblog.RawJob, error) {
	var list jobList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("job-list: malformed job listing: %w", err)
	}
	return list.Jobs, nil
}
