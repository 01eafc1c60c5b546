// Package eventsvc publishes the admin tables' export events.
package eventsvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/trezcool/tutoria/core"
	"github.com/trezcool/tutoria/core/listing"
)

const (
	entityExport = "export"
	actionDone   = "completed"
)

// message is the envelope shared by the platform's event consumers.
type message struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       interface{}       `json:"data"`
}

func newMessage(evt listing.ExportEvent) message {
	return message{
		Entity:     entityExport,
		Action:     actionDone,
		ResourceID: evt.ID,
		Topic:      entityExport + "." + actionDone,
		Metadata: map[string]string{
			"tenantId": evt.TenantID,
			"resource": evt.Resource,
		},
		Data: evt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

var _ listing.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher writes to topic; messages are keyed by tenant so a tenant's exports stay ordered.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) PublishExport(ctx context.Context, evt listing.ExportEvent) error {
	value, err := json.Marshal(newMessage(evt))
	if err != nil {
		return errors.Wrap(err, "encoding export event")
	}
	msg := kafka.Message{
		Key:   []byte(evt.TenantID),
		Value: value,
		Time:  evt.CompletedAt,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "writing export event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher logs the events; it is used when no broker is configured.
type LogPublisher struct {
	logger core.Logger
}

var _ listing.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger core.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishExport(_ context.Context, evt listing.ExportEvent) error {
	p.logger.Info("export completed", map[string]interface{}{
		"id":         evt.ID,
		"tenantId":   evt.TenantID,
		"resource":   evt.Resource,
		"format":     evt.Format,
		"rowCount":   evt.RowCount,
		"totalCount": evt.TotalCount,
		"truncated":  evt.Truncated,
	})
	return nil
}

// New returns a KafkaPublisher when brokers are configured, a LogPublisher otherwise.
func New(conf *core.Config, logger core.Logger) listing.EventPublisher {
	if len(conf.Events.KafkaBrokers) == 0 {
		return NewLogPublisher(logger)
	}
	return NewKafkaPublisher(conf.Events.KafkaBrokers, conf.Events.ExportTopic)
}
