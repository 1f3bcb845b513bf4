// The checkpoint file holds a single float: the t_inactive of the most
// recently exported job.  It is the boundary between runs; the next run
// fetches only jobs that went inactive at or after this time.

package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const DefaultPath = "/var/log/flux/last_completed"

// Read returns the checkpoint timestamp.  A missing file is not an error, it
// means this is the first run and every historical job should be fetched, so
// the result is 0.  A file whose content does not parse as a float is state
// corruption and is returned as an error.
func Read(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	ts, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("could not extract timestamp from %s: %w", path, err)
	}
	return ts, nil
}

// Write records ts as the new checkpoint.
func Write(path string, ts float64) error {
	return os.WriteFile(path, []byte(strconv.FormatFloat(ts, 'f', -1, 64)), 0644)
}
