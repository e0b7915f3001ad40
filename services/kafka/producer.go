package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"registration-module/logger"

	"github.com/segmentio/kafka-go"
)

// Producer publishes JSON payment events. When no brokers are configured the
// producer is disabled and every publish is a silent no-op (best-effort).
type Producer struct {
	mu     sync.Mutex
	writer *kafka.Writer
	topic  string
}

// NewProducer builds a producer from a comma-separated broker list. An empty
// list disables publishing.
func NewProducer(brokerList, topic string) *Producer {
	p := &Producer{topic: topic}

	var brokers []string
	for _, b := range strings.Split(brokerList, ",") {
		if b := strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	if len(brokers) == 0 {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}
	ensureTopicExists(brokers, topic)

	logger.Info("Kafka producer initialized. Brokers=%v, Topic=%s", brokers, topic)
	return p
}

// ensureTopicExists creates the topic if missing. Runs in the background so
// startup never blocks on a broker.
func ensureTopicExists(brokers []string, topic string) {
	go func() {
		time.Sleep(1 * time.Second)

		conn, err := kafka.Dial("tcp", brokers[0])
		if err != nil {
			logger.Warn("Could not connect to Kafka broker for topic creation: %v (topic may need manual creation)", err)
			return
		}
		defer conn.Close()

		err = conn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			logger.Warn("Could not create Kafka topic %q: %v", topic, err)
		}
	}()
}

// Publish marshals value to JSON and writes it with the given key. Disabled
// producers return nil; a broker failure is logged and returned but callers
// treat it as best-effort.
func (p *Producer) Publish(key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}); err != nil {
		logger.Warn("Kafka publish failed: %v", err)
		return err
	}
	return nil
}

// Close gracefully closes the producer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
