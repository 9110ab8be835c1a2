package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/kokostore/parcel-dashboard/internal/application"
	"github.com/kokostore/parcel-dashboard/internal/domain"
	"github.com/kokostore/parcel-dashboard/internal/logger"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// StartConsumer drains the ingestion topic and persists each order through
// the service. Bad JSON is committed and skipped; a failed persist is retried
// after a short backoff without committing the offset.
func StartConsumer(ctx context.Context, svc *application.OrdersService, cfg ConsumerConfig) (*kafka.Reader, error) {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         brokers,
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	go func() {
		defer r.Close()

		backoff := time.Millisecond * 300
		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				time.Sleep(backoff)
				continue
			}

			var o domain.Order
			if err = json.Unmarshal(m.Value, &o); err != nil {
				logger.Warn("kafka invalid json, skip and commit", "err", err)
				_ = r.CommitMessages(ctx, m)
				continue
			}

			if err = svc.Ingest(ctx, &o); err != nil {
				logger.Warn("kafka ingest failed, will retry", "id", o.ID, "err", err)
				time.Sleep(backoff)
				continue
			}

			if err := r.CommitMessages(ctx, m); err != nil {
				logger.Warn("kafka commit failed", "err", err)
			} else {
				logger.Info("kafka committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "id", o.ID)
			}
		}
	}()
	return r, nil
}
