package sink

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/cmoussa1/flux-data-monitoring/joblog"
)

type kafkaSink struct {
	cl    *kgo.Client
	topic string
}

// NewKafkaSink produces each record to one topic, keyed by job id so that
// re-exports of the same job land in the same partition.
func NewKafkaSink(broker, topic, clientID string) (Sink, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ClientID(clientID),
	)
	if err != nil {
		return nil, err
	}
	return &kafkaSink{cl: cl, topic: topic}, nil
}

func (s *kafkaSink) Write(ctx context.Context, rec *joblog.Record) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	r := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(strconv.FormatUint(rec.Job.ID, 10)),
		Value: buf,
	}
	return s.cl.ProduceSync(ctx, r).FirstErr()
}

func (s *kafkaSink) Close() error {
	s.cl.Close()
	return nil
}
