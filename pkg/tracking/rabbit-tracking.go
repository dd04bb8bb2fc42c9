package tracking

import (
	"net/http"
	"time"

	"github.com/matst80/learn-finder/pkg/common"
	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const trackingPrefix = "global"

type publisher interface {
	Publish(events []any) error
	Close() error
}

type rabbitPublisher struct {
	connection *amqp.Connection
}

func (p *rabbitPublisher) Publish(events []any) error {
	return messaging.SendChange(p.connection, trackingPrefix, messaging.Tracking, events...)
}

func (p *rabbitPublisher) Close() error {
	return p.connection.Close()
}

// RabbitTracking queues events and publishes them in batches so request
// handlers never wait on the broker.
type RabbitTracking struct {
	country   string
	publisher publisher
	queue     *common.QueueHandler[any]
	logger    *zap.Logger
}

func NewRabbitTracking(url, country string, logger *zap.Logger) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err = messaging.DefineTopic(ch, trackingPrefix, messaging.Tracking); err != nil {
		conn.Close()
		return nil, err
	}
	return newTracking(&rabbitPublisher{connection: conn}, country, logger, time.Second), nil
}

func newTracking(p publisher, country string, logger *zap.Logger, interval time.Duration) *RabbitTracking {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &RabbitTracking{
		country:   country,
		publisher: p,
		logger:    logger,
	}
	t.queue = common.NewQueueHandler(t.flush, 50, interval)
	return t
}

func (t *RabbitTracking) flush(events []any) {
	if err := t.publisher.Publish(events); err != nil {
		t.logger.Warn("error sending tracking events", zap.Int("count", len(events)), zap.Error(err))
	}
}

func (t *RabbitTracking) base(sessionId string, event EventType) *BaseEvent {
	return &BaseEvent{SessionId: sessionId, Country: t.country, Event: event}
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.queue.Add(&Session{
		BaseEvent: t.base(sessionId, SessionEvent),
		Language:  r.Header.Get("Accept-Language"),
		UserAgent: r.UserAgent(),
		Ip:        clientIp(r),
		Referer:   r.Header.Get("Referer"),
	})
}

func (t *RabbitTracking) TrackSearch(sessionId string, search SearchEvent) {
	search.BaseEvent = t.base(sessionId, SearchEventType)
	t.queue.Add(&search)
}

func (t *RabbitTracking) TrackDrawer(sessionId string, frame drawer.Frame) {
	t.queue.Add(&DrawerOpened{
		BaseEvent:  t.base(sessionId, DrawerEvent),
		ObjectType: frame.ObjectType,
		ObjectId:   frame.ObjectId,
		RunId:      frame.RunId,
	})
}

// Close publishes what is queued and closes the connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	return t.publisher.Close()
}
