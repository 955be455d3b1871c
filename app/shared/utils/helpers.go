package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers provides payload marshaling shared by handlers and routers.
type Helpers interface {
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	UnmarshalPayload(msg *message.Message, target any) error
}

type helpers struct{}

// NewHelpers returns the default Helpers implementation.
func NewHelpers() Helpers {
	return helpers{}
}

// CreateResultMessage builds an outbound message carrying the JSON payload,
// propagating the correlation ID from the original message and recording the
// destination topic in metadata.
func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
	}
	return msg, nil
}

// UnmarshalPayload decodes a message's JSON payload into target.
func (helpers) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}
