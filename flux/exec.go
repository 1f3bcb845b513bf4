package flux

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

// ExecHandle reaches the instance through the flux(1) command line tools.
type ExecHandle struct {
	program string
}

// Connect probes the local instance with a cheap broker attribute read.  Any
// failure - broker down, no flux in PATH, not inside an instance - comes
// back wrapping ErrNotConnected.
func Connect(ctx context.Context) (*ExecHandle, error) {
	h := &ExecHandle{program: "flux"}
	_, _, err := h.run(ctx, "getattr", "rank")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	return h, nil
}

func (h *ExecHandle) QueueConfig(ctx context.Context) (joblog.QueueLimits, error) {
	stdout, stderr, err := h.run(ctx, "config", "get")
	if err != nil {
		return nil, rpcError("config.get", stderr, err)
	}
	return parseQueueConfig([]byte(stdout))
}

func (h *ExecHandle) ListInactive(ctx context.Context, since float64) ([]*joblog.RawJob, error) {
	arguments := []string{"jobs", "--filter=inactive", "--count=0", "--json"}
	if since > 0 {
		// since == 0 means a first run: every job ever, no filter.
		arguments = append(arguments, "--since=@"+strconv.FormatFloat(since, 'f', -1, 64))
	}
	stdout, stderr, err := h.run(ctx, arguments...)
	if err != nil {
		return nil, rpcError("job-list", stderr, err)
	}
	return parseJobList([]byte(stdout))
}

func (h *ExecHandle) Lookup(ctx context.Context, id uint64, key string) ([]byte, error) {
	stdout, stderr, err := h.run(ctx, "job", "info", strconv.FormatUint(id, 10), key)
	if err != nil {
		return nil, rpcError("job-info", stderr, err)
	}
	return []byte(stdout), nil
}

// Run one flux subcommand, collecting its output.  If the program cannot be
// run or exits nonzero then an error is returned along with stderr, and
// stdout is empty.
func (h *ExecHandle) run(ctx context.Context, arguments ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, h.program, arguments...)
	var stdout strings.Builder
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	errs := stderr.String()
	if err != nil {
		return "", errs, errors.Join(fmt.Errorf("While running %s", h.program), err)
	}
	return stdout.String(), errs, nil
}

func rpcError(what, stderr string, err error) error {
	detail := strings.TrimSpace(stderr)
	if detail == "" {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%s: %s: %w", what, detail, err)
}
