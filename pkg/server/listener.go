package server

import (
	"context"

	"github.com/matst80/learn-finder/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// OnResourceChanged drops the cached copy of a changed document so the
// drawer reads it fresh.
func (ws *WebServer) OnResourceChanged(ctx context.Context, change messaging.ResourceChange) error {
	if ws.Cache == nil {
		return nil
	}
	cacheEvictions.Inc()
	ws.Logger.Debug("resource changed",
		zap.String("type", string(change.ObjectType)),
		zap.String("id", change.Id),
		zap.Bool("deleted", change.Deleted))
	return ws.Cache.Delete(ctx, resourceKey(change.ObjectType, change.Id))
}

func (ws *WebServer) ListenForChanges(conn *amqp.Connection, prefix string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	if err = messaging.DefineTopic(ch, prefix, messaging.ResourceChanged); err != nil {
		ch.Close()
		return err
	}
	return messaging.ListenToTopic(ch, ws.Logger, prefix, messaging.ResourceChanged, func(d amqp.Delivery) error {
		change, err := messaging.Decode[messaging.ResourceChange](d)
		if err != nil {
			return err
		}
		return ws.OnResourceChanged(context.Background(), change)
	})
}
