package utils

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// MiddlewareHelpers builds the metadata middleware stack shared by module
// routers.
type MiddlewareHelpers interface {
	CommonMetadataMiddleware(moduleName string) message.HandlerMiddleware
	RoutingMetadataMiddleware() message.HandlerMiddleware
}

type middlewareHelpers struct{}

// NewMiddlewareHelper returns the default MiddlewareHelpers implementation.
func NewMiddlewareHelper() MiddlewareHelpers {
	return middlewareHelpers{}
}

// CommonMetadataMiddleware stamps every outbound message with the handling
// module and a processed-at timestamp.
func (middlewareHelpers) CommonMetadataMiddleware(moduleName string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				return nil, err
			}
			for _, m := range produced {
				m.Metadata.Set("module", moduleName)
				m.Metadata.Set("processed_at", time.Now().UTC().Format(time.RFC3339))
			}
			return produced, nil
		}
	}
}

// RoutingMetadataMiddleware carries the originating subject on outbound
// messages so downstream consumers can trace fan-out.
func (middlewareHelpers) RoutingMetadataMiddleware() message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				return nil, err
			}
			origin := msg.Metadata.Get("topic")
			for _, m := range produced {
				if origin != "" {
					m.Metadata.Set("origin_topic", origin)
				}
			}
			return produced, nil
		}
	}
}
