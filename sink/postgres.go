package sink

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

// One row per exported record; the full document is kept as jsonb so the
// analytics side can index into it without a schema migration here.
const createRecordsTable = `
CREATE TABLE IF NOT EXISTS flux_job_records (
	job_id       BIGINT NOT NULL,
	submit_epoch DOUBLE PRECISION,
	record       JSONB NOT NULL
)`

type postgresSink struct {
	conn *pgx.Conn
}

func NewPostgresSink(ctx context.Context, uri string) (Sink, error) {
	conn, err := pgx.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, createRecordsTable); err != nil {
		conn.Close(ctx)
		return nil, err
	}
	return &postgresSink{conn: conn}, nil
}

func (s *postgresSink) Write(ctx context.Context, rec *joblog.Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(ctx,
		"INSERT INTO flux_job_records (job_id, submit_epoch, record) VALUES ($1, $2, $3)",
		int64(rec.Job.ID), rec.Job.SubmitTimeEpoch, buf,
	)
	return err
}

func (s *postgresSink) Close() error {
	return s.conn.Close(context.Background())
}
