package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus is the broadcast port handed to modules. It satisfies the
// watermill publisher and subscriber contracts so module routers can consume
// it directly.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	CreateStream(ctx context.Context, streamName string) error
	Close() error
}
