// Fetch inactive job records from the local Flux instance using its job-list
// and job-info interfaces, normalize each one into the flux.joblog schema,
// and emit them as NDJSON for ingestion into the analytics pipeline.
//
// Usage:
//  fluxjoblog [options]
//
// where
//  -output-file filename
//    Append the records to this file instead of printing them on stdout.
//
//  -since n
//    Export all jobs that completed at or after this time (seconds since
//    epoch).  By default the boundary is read from the state file, and a
//    missing state file means "everything", which is what a first run wants.
//
//  -state-file filename
//    Where the completion timestamp of the most recently exported job is
//    kept between runs.  Default /var/log/flux/last_completed.
//
//  -no-state-update
//    Do not write the state file at the end of the run.
//
//  -eligible-time run|depend
//    Which timestamp counts as the moment the job became eligible to run,
//    see joblog.EligibleTimeMode.  Default "run".
//
//  -kafka-broker host:port, -kafka-topic name
//    Additionally produce every record to this Kafka topic.
//
//  -db uri
//    Additionally append every record to a Postgres database.
//
//  -v
//    Verbose progress logging.
//
// Defaults for the options can be put in $HOME/.fluxjoblog, see common/inifile.go.
//
// The exporter is a single-pass batch job meant to be driven by a timer.  It
// exits 0 on success and also when the instance is simply down - that is an
// expected condition, not an alarm.  It exits 1 on state-file corruption, on
// RPC failure, and on sink or state write failure.  Diagnostics go to stderr
// and, when a syslog is reachable, to the syslog with tag "fluxjoblog".

package main

import (
	"context"
	"flag"
	"fmt"
	"log/syslog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cmoussa1/flux-data-monitoring/checkpoint"
	"github.com/cmoussa1/flux-data-monitoring/common"
	"github.com/cmoussa1/flux-data-monitoring/flux"
	"github.com/cmoussa1/flux-data-monitoring/ident"
	"github.com/cmoussa1/flux-data-monitoring/joblog"
	"github.com/cmoussa1/flux-data-monitoring/sink"
	"github.com/cmoussa1/flux-data-monitoring/status"
)

const logTag = "fluxjoblog"

var (
	outputFile    = flag.String("output-file", "", "Append records to this `filename` (default stdout)")
	since         = flag.Int64("since", -1, "Export jobs completed at or after `epoch` seconds, overriding the state file")
	stateFile     = flag.String("state-file", "", "Keep the last-exported timestamp in `filename`")
	noStateUpdate = flag.Bool("no-state-update", false, "Do not update the state file")
	eligibleTime  = flag.String("eligible-time", "", "Eligible-time interpretation, \"run\" or \"depend\"")
	kafkaBroker   = flag.String("kafka-broker", "", "Also produce records to this Kafka `broker`")
	kafkaTopic    = flag.String("kafka-topic", "", "Kafka `topic` for produced records")
	dbURI         = flag.String("db", "", "Also append records to the Postgres database at `uri`")
	verbose       = flag.Bool("v", false, "Verbose progress logging")
)

func main() {
	flag.Parse()

	common.ApplyDefault(outputFile, common.ExporterOutputFile)
	common.ApplyDefault(stateFile, common.ExporterStateFile)
	common.ApplyDefault(eligibleTime, common.ExporterEligibleTime)
	common.ApplyDefault(kafkaBroker, common.KafkaBroker)
	common.ApplyDefault(kafkaTopic, common.KafkaTopic)
	common.ApplyDefault(dbURI, common.DatabaseURI)
	if *stateFile == "" {
		*stateFile = checkpoint.DefaultPath
	}
	if *eligibleTime == "" {
		*eligibleTime = "run"
	}

	if *verbose {
		common.Log.SetLevel(status.LogLevelInfo)
	}
	if logger, err := syslog.Dial("", "", syslog.LOG_ERR|syslog.LOG_LOCAL7, logTag); err == nil {
		common.Log.SetUnderlying(logger)
	}

	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	runID := uuid.New().String()

	mode, err := joblog.ParseEligibleTimeMode(*eligibleTime)
	if err != nil {
		common.Log.Errorf("%v", err)
		return 1
	}
	if (*kafkaBroker == "") != (*kafkaTopic == "") {
		common.Log.Errorf("-kafka-broker and -kafka-topic must be given together")
		return 1
	}

	// The instance being down is expected - this runs on a timer and the
	// node may be rebooting or the broker restarting.  Log it and report
	// success so the timer does not alarm.
	handle, err := flux.Connect(ctx)
	if err != nil {
		common.Log.Errorf("Could not connect to Flux instance; Flux may be down")
		common.Log.Errorf("connect error: %v", err)
		return 0
	}

	// Resolve the "since" boundary: explicit override, else state file,
	// else epoch 0 for a first run.
	lastTimestamp := float64(*since)
	if *since < 0 {
		lastTimestamp, err = checkpoint.Read(*stateFile)
		if err != nil {
			common.Log.Errorf("could not extract timestamp from Flux job log state file: %v", err)
			return 1
		}
	}
	common.Log.Infof("run %s: exporting jobs inactive since %f", runID, lastTimestamp)

	queues, err := handle.QueueConfig(ctx)
	if err != nil {
		common.Log.Errorf("could not fetch queue configuration: %v", err)
		return 1
	}

	jobs, err := handle.ListInactive(ctx, lastTimestamp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpc: %v\n", err)
		common.Log.Errorf("job listing failed: %v", err)
		return 1
	}
	common.Log.Infof("run %s: %d inactive jobs listed", runID, len(jobs))

	enrich(ctx, handle, jobs)

	records, err := joblog.MapAll(jobs, queues, ident.SystemResolver{}, mode)
	if err != nil {
		common.Log.Errorf("record mapping failed: %v", err)
		return 1
	}

	sinks, err := openSinks(ctx, runID)
	if err != nil {
		common.Log.Errorf("could not open output sink: %v", err)
		return 1
	}
	defer func() {
		for _, s := range sinks {
			s.Close()
		}
	}()

	for _, rec := range records {
		for _, s := range sinks {
			if err := s.Write(ctx, rec); err != nil {
				common.Log.Errorf("record write failed: %v", err)
				return 1
			}
		}
	}
	common.Log.Infof("run %s: %d records written", runID, len(records))

	if !*noStateUpdate {
		ts := mostRecentInactive(records)
		if err := checkpoint.Write(*stateFile, ts); err != nil {
			common.Log.Errorf("error writing timestamp of last seen job: %v", err)
			return 1
		}
	}

	return 0
}

// Per-job enrichment.  A failed or malformed jobspec skips the accounting
// attributes for that job only; the job still appears in the output.
func enrich(ctx context.Context, handle flux.Handle, jobs []*joblog.RawJob) {
	for _, job := range jobs {
		if data, err := handle.Lookup(ctx, job.ID, "jobspec"); err == nil {
			if err := joblog.ApplyJobspec(job, data); err != nil {
				common.Log.Infof("job %d: malformed jobspec, not enriched: %v", job.ID, err)
			}
		}
		if data, err := handle.Lookup(ctx, job.ID, "eventlog"); err == nil {
			eventlog := string(data)
			job.EventLog = &eventlog
		}
	}
}

func openSinks(ctx context.Context, runID string) ([]sink.Sink, error) {
	var sinks []sink.Sink
	fail := func(err error) ([]sink.Sink, error) {
		for _, s := range sinks {
			s.Close()
		}
		return nil, err
	}
	if *outputFile != "" {
		s, err := sink.NewFileSink(*outputFile)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	} else {
		sinks = append(sinks, sink.NewWriterSink(os.Stdout))
	}
	if *kafkaBroker != "" {
		s, err := sink.NewKafkaSink(*kafkaBroker, *kafkaTopic, logTag+"-"+runID)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	if *dbURI != "" {
		s, err := sink.NewPostgresSink(ctx, *dbURI)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

// The next checkpoint: the completion time of the most recent job in this
// batch, or the current time when the batch was empty or the field absent.
func mostRecentInactive(records []*joblog.Record) float64 {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Job.TInactive != nil {
			return *records[i].Job.TInactive
		}
	}
	return float64(time.Now().Unix())
}
