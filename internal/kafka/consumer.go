package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/segmentio/kafka-go"

	"vital-alert-service/internal/ingest"
	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/models"
)

// Consumer reads IoT vital readings off Kafka and feeds them into the
// ingestion pipeline.
type Consumer struct {
	reader   *kafka.Reader
	ingestor *ingest.Ingestor
	logger   *logging.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewConsumer(brokers []string, topic, groupID string, ingestor *ingest.Ingestor, logger *logging.Logger) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		ingestor: ingestor,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start consumes messages until Close is called. Malformed or rejected
// readings are logged and skipped; one bad device must not stall the stream.
func (c *Consumer) Start(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Infof("Kafka consumer started on topic %s", c.reader.Config().Topic)
		for {
			msg, err := c.reader.ReadMessage(c.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					c.logger.Infof("Kafka consumer stopped")
					return
				}
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}

			var input models.ReadingInput
			if err := json.Unmarshal(msg.Value, &input); err != nil {
				c.logger.Errorf("Unmarshal reading failed: %v", err)
				continue
			}
			input.Source = models.SourceIoT

			alert, err := c.ingestor.IngestReading(c.ctx, input)
			if err != nil {
				c.logger.Errorf("Ingest reading for subject %s failed: %v", input.SubjectID, err)
				continue
			}
			if alert != nil {
				c.logger.Infof("Reading from subject %s opened alert %s", input.SubjectID, alert.ID)
			}
		}
	}()
}

// Close stops the consume loop and releases the reader.
func (c *Consumer) Close() {
	c.cancel()
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Kafka reader close failed: %v", err)
	}
}
