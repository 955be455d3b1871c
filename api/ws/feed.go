package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"

	apijwt "github.com/crease-live/crease-backend/api/jwt"
	"github.com/crease-live/crease-backend/app/eventbus"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/observability/attr"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// BroadcastTopics lists every bus topic the live feed relays to rooms.
var BroadcastTopics = []string{
	matchevents.BallUpdatedV1,
	matchevents.WicketFallenV1,
	matchevents.StrikeRotatedV1,
	matchevents.OverCompletedV1,
	matchevents.InningsCompletedV1,
	matchevents.BallUndoneV1,
	matchevents.DeliveryRejectedV1,
	matchevents.UndoRejectedV1,
	matchevents.MatchCompletedV1,
}

// Feed bridges event bus broadcasts into room-scoped websocket fan-out.
type Feed struct {
	hub    *Hub
	bus    eventbus.EventBus
	jwt    apijwt.Provider
	logger *slog.Logger
}

// NewFeed creates the live feed.
func NewFeed(bus eventbus.EventBus, jwtProvider apijwt.Provider, logger *slog.Logger) *Feed {
	return &Feed{
		hub:    NewHub(logger),
		bus:    bus,
		jwt:    jwtProvider,
		logger: logger,
	}
}

// Hub exposes the underlying hub, mainly for tests.
func (f *Feed) Hub() *Hub {
	return f.hub
}

// Start subscribes to every broadcast topic and relays messages until the
// context is canceled.
func (f *Feed) Start(ctx context.Context) error {
	for _, topic := range BroadcastTopics {
		messages, err := f.bus.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}

		topic := topic
		go func() {
			for msg := range messages {
				f.relay(topic, msg)
				msg.Ack()
			}
		}()
	}
	return nil
}

// relay routes one bus message to the room named in its payload.
func (f *Feed) relay(topic string, msg *message.Message) {
	var envelope struct {
		RoomID sharedtypes.RoomID `json:"room_id"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil || envelope.RoomID == "" {
		f.logger.Warn("Broadcast payload has no room, skipping",
			attr.String("topic", topic),
			attr.String("message_id", msg.UUID),
		)
		return
	}

	f.hub.Broadcast(envelope.RoomID, FeedMessage{
		Topic:   topic,
		Payload: json.RawMessage(msg.Payload),
	})
}

// ServeWS upgrades an authenticated request onto the room's live feed. The
// token rides in the `token` query parameter because browsers cannot set
// headers on websocket dials.
func (f *Feed) ServeWS(w http.ResponseWriter, r *http.Request) {
	room := sharedtypes.RoomID(r.URL.Query().Get("room"))
	if room == "" {
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := f.jwt.ValidateToken(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !claims.AllowsRoom(room) {
		http.Error(w, "room not authorized", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("Websocket upgrade failed", attr.Error(err))
		return
	}

	client := &Client{
		hub:  f.hub,
		room: room,
		user: claims.UserID,
		conn: conn,
		send: make(chan FeedMessage, 256),
	}
	f.hub.register(client)

	go client.writePump()
	go client.readPump()
}
