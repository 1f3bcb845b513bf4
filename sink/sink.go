// Destinations for normalized job records.
//
// Every sink receives complete records; the NDJSON sinks frame each record
// as one JSON document plus a newline, issued as a single write so that a
// line is never interleaved or truncated by a concurrent appender.

package sink

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

type Sink interface {
	Write(ctx context.Context, rec *joblog.Record) error
	Close() error
}

type lineWriter struct {
	w io.Writer
}

func (s *lineWriter) Write(_ context.Context, rec *joblog.Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	_, err = s.w.Write(buf)
	return err
}

func (s *lineWriter) Close() error {
	return nil
}

// NewWriterSink emits NDJSON on an arbitrary stream, normally stdout.
func NewWriterSink(w io.Writer) Sink {
	return &lineWriter{w: w}
}

type fileSink struct {
	lineWriter
	f *os.File
}

// NewFileSink appends NDJSON to the named file, creating it if necessary.
func NewFileSink(path string) (Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &fileSink{lineWriter: lineWriter{w: f}, f: f}, nil
}

func (s *fileSink) Close() error {
	return s.f.Close()
}
