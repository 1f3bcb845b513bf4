package joblog

import (
	"encoding/json"
)

// The slice of a jobspec we care about: the requested duration and the
// accounting attributes under attributes.system.
type jobspecAttrs struct {
	Attributes struct {
		System struct {
			Duration *float64 `json:"duration"`
			Bank     *string  `json:"bank"`
			Queue    *string  `json:"queue"`
			Project  *string  `json:"project"`
		} `json:"system"`
	} `json:"attributes"`
}

// ApplyJobspec attaches a job's jobspec and the accounting attributes
// extracted from it.  On a decode error the job is left untouched and the
// error is returned; the caller skips enrichment for that job only and the
// run continues.
func ApplyJobspec(job *RawJob, jobspec []byte) error {
	var attrs jobspecAttrs
	if err := json.Unmarshal(jobspec, &attrs); err != nil {
		return err
	}
	job.Jobspec = json.RawMessage(jobspec)
	job.Duration = attrs.Attributes.System.Duration
	job.Bank = attrs.Attributes.System.Bank
	job.Queue = attrs.Attributes.System.Queue
	job.Project = attrs.Attributes.System.Project
	return nil
}
