package messaging

import (
	"github.com/matst80/learn-finder/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// Decode unmarshals a delivery body into V.
func Decode[V any](d amqp.Delivery) (V, error) {
	var v V
	err := jsoncompat.Unmarshal(d.Body, &v)
	return v, err
}

// ListenToTopic consumes the topic until the channel closes. Deliveries the
// handler fails on are rejected without requeue, the rest are acked.
func ListenToTopic(ch *amqp.Channel, logger *zap.Logger, prefix string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := Handle(d, handler); err != nil {
				logger.Warn("error processing message", zap.String("topic", string(topic)), zap.Error(err))
			}
		}
	}(fc)
	return nil
}

type acknowledger interface {
	Ack(multiple bool) error
	Reject(requeue bool) error
}

func settle(a acknowledger, err error) error {
	if err != nil {
		_ = a.Reject(false)
		return err
	}
	return a.Ack(false)
}

func Handle(d amqp.Delivery, handler func(amqp.Delivery) error) error {
	return settle(&d, handler(d))
}
