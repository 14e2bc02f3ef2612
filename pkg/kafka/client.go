// Package kafka 提供了向 Kafka 投递领域事件的功能。
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"qa-service-go/internal/config"
	"qa-service-go/pkg/events"
	"qa-service-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// Producer 是 events.Publisher 的 Kafka 实现。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者。Brokers 以逗号分隔。
func NewProducer(cfg config.KafkaConfig) *Producer {
	brokers := strings.Split(cfg.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	log.Infof("Kafka 生产者初始化成功，主题 '%s'", cfg.Topic)
	return &Producer{writer: writer}
}

// Publish 同步发送一个事件。
func (p *Producer) Publish(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

// Close 刷新并关闭生产者。
func (p *Producer) Close() error {
	return p.writer.Close()
}
