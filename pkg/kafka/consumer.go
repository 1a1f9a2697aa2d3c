package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultMaxRetries     = 3
	defaultCommitInterval = time.Second
)

// Consumer runs a fetch, process, commit loop over a topic. A message that
// keeps failing past MaxRetries is republished to the DLQ and committed so
// the partition keeps moving.
type Consumer struct {
	reader     *kafka.Reader
	dlqWriter  *kafka.Writer
	handler    MessageHandler
	topic      string
	dlqTopic   string
	maxRetries int
	closed     bool
	mu         sync.RWMutex
	wg         sync.WaitGroup
}

type ConsumerConfig struct {
	Brokers    []string
	Topic      string
	GroupID    string
	DLQTopic   string
	MaxRetries int
}

func NewConsumer(cfg ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: defaultCommitInterval,
		StartOffset:    kafka.FirstOffset,
		Logger:         kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:    kafka.LoggerFunc(log.Printf),
	})

	consumer := &Consumer{
		reader:     reader,
		handler:    handler,
		topic:      cfg.Topic,
		dlqTopic:   cfg.DLQTopic,
		maxRetries: cfg.MaxRetries,
	}

	if cfg.DLQTopic != "" {
		consumer.dlqWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.DLQTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
			ErrorLogger:  kafka.LoggerFunc(log.Printf),
		}
	}

	return consumer, nil
}

// Start blocks until ctx is cancelled or the consumer is closed.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return ErrConsumerClosed
	}
	c.mu.RUnlock()

	c.wg.Add(1)
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Printf("kafka: fetch error on topic %s: %v", c.topic, err)
			continue
		}

		msg := convertMessage(kafkaMsg)

		if err := c.processWithRetry(ctx, msg); err != nil {
			log.Printf("kafka: message %s exhausted retries on topic %s: %v", msg.GetEventID(), c.topic, err)
			if dlqErr := c.sendToDLQ(ctx, msg, err); dlqErr != nil {
				log.Printf("kafka: failed to route message %s to DLQ: %v", msg.GetEventID(), dlqErr)
			}
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			log.Printf("kafka: commit error on topic %s: %v", c.topic, err)
		}
	}
}

func (c *Consumer) processWithRetry(ctx context.Context, msg Message) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.handler(ctx, msg)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message, processErr error) error {
	if c.dlqWriter == nil {
		return nil
	}

	if msg.Headers == nil {
		msg.Headers = make(map[string]string)
	}
	msg.Headers[HeaderOriginalTopic] = c.topic
	msg.Headers["dlq-error"] = processErr.Error()
	msg.Headers["dlq-timestamp"] = time.Now().Format(time.RFC3339)

	return c.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg))
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.reader.Close()
	if c.dlqWriter != nil {
		if dlqErr := c.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}

	c.wg.Wait()
	return err
}

func convertMessage(kafkaMsg kafka.Message) Message {
	msg := Message{
		Key:       string(kafkaMsg.Key),
		Value:     kafkaMsg.Value,
		Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		Timestamp: kafkaMsg.Time,
	}
	for _, h := range kafkaMsg.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
