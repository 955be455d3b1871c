package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gorilla/websocket"

	apijwt "github.com/crease-live/crease-backend/api/jwt"
	"github.com/crease-live/crease-backend/app/eventbus"
	"github.com/crease-live/crease-backend/app/shared/events/matchevents"
	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeEventBus hands out pre-made channels per topic.
type FakeEventBus struct {
	channels map[string]chan *message.Message
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{channels: make(map[string]chan *message.Message)}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		f.channels[topic] <- msg
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message, 16)
	f.channels[topic] = ch
	return ch, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, streamName string) error { return nil }
func (f *FakeEventBus) Close() error                                              { return nil }

var _ eventbus.EventBus = (*FakeEventBus)(nil)

func newRoomClient(hub *Hub, room sharedtypes.RoomID, buffer int) *Client {
	c := &Client{hub: hub, room: room, send: make(chan FeedMessage, buffer)}
	hub.register(c)
	return c
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub(discardLogger())
	inRoom := newRoomClient(hub, "room-1", 4)
	otherRoom := newRoomClient(hub, "room-2", 4)

	hub.Broadcast("room-1", FeedMessage{Topic: matchevents.BallUpdatedV1})

	select {
	case msg := <-inRoom.send:
		if msg.Topic != matchevents.BallUpdatedV1 {
			t.Errorf("unexpected topic %q", msg.Topic)
		}
	default:
		t.Fatal("expected the room-1 client to receive the broadcast")
	}

	select {
	case <-otherRoom.send:
		t.Fatal("room-2 client must not receive room-1 broadcasts")
	default:
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub(discardLogger())
	slow := newRoomClient(hub, "room-1", 1)

	hub.Broadcast("room-1", FeedMessage{Topic: matchevents.BallUpdatedV1})
	hub.Broadcast("room-1", FeedMessage{Topic: matchevents.OverCompletedV1})

	if hub.ClientCount("room-1") != 0 {
		t.Errorf("expected the slow client to be dropped, %d clients remain", hub.ClientCount("room-1"))
	}
	// The channel was closed on drop; draining must terminate.
	for range slow.send {
	}
}

func TestFeedRelayRoutesByRoom(t *testing.T) {
	feed := NewFeed(NewFakeEventBus(), apijwt.NewProvider(testSecret), discardLogger())
	client := newRoomClient(feed.Hub(), "room-1", 4)

	payload, _ := json.Marshal(matchevents.BallUpdatedPayloadV1{RoomID: "room-1", Runs: 6})
	feed.relay(matchevents.BallUpdatedV1, message.NewMessage(watermill.NewUUID(), payload))

	select {
	case msg := <-client.send:
		if msg.Topic != matchevents.BallUpdatedV1 {
			t.Errorf("unexpected topic %q", msg.Topic)
		}
		var decoded matchevents.BallUpdatedPayloadV1
		if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
			t.Fatalf("failed to decode relayed payload: %v", err)
		}
		if decoded.Runs != 6 {
			t.Errorf("expected 6 runs relayed, got %d", decoded.Runs)
		}
	default:
		t.Fatal("expected the broadcast to reach the room client")
	}
}

func TestFeedRelaySkipsPayloadWithoutRoom(t *testing.T) {
	feed := NewFeed(NewFakeEventBus(), apijwt.NewProvider(testSecret), discardLogger())
	client := newRoomClient(feed.Hub(), "room-1", 4)

	feed.relay(matchevents.BallUpdatedV1, message.NewMessage(watermill.NewUUID(), []byte(`{"runs":4}`)))

	select {
	case <-client.send:
		t.Fatal("a payload without a room must not be relayed")
	default:
	}
}

func TestFeedStartRelaysBusMessages(t *testing.T) {
	bus := NewFakeEventBus()
	feed := NewFeed(bus, apijwt.NewProvider(testSecret), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := feed.Start(ctx); err != nil {
		t.Fatalf("failed to start feed: %v", err)
	}

	client := newRoomClient(feed.Hub(), "room-1", 4)

	payload, _ := json.Marshal(matchevents.MatchCompletedPayloadV1{RoomID: "room-1", ResultText: "a won by 37 runs"})
	if err := bus.Publish(matchevents.MatchCompletedV1, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	select {
	case msg := <-client.send:
		if msg.Topic != matchevents.MatchCompletedV1 {
			t.Errorf("unexpected topic %q", msg.Topic)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the relayed message")
	}
}

func TestServeWS(t *testing.T) {
	feed := NewFeed(NewFakeEventBus(), apijwt.NewProvider(testSecret), discardLogger())
	server := httptest.NewServer(http.HandlerFunc(feed.ServeWS))
	defer server.Close()

	token, err := apijwt.NewProvider(testSecret).GenerateToken(&apijwt.Claims{
		UserID: "viewer-1",
		Rooms:  []sharedtypes.RoomID{"room-1"},
	}, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	t.Run("requires token", func(t *testing.T) {
		resp, err := http.Get(server.URL + "?room=room-1")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects unauthorized room", func(t *testing.T) {
		resp, err := http.Get(server.URL + "?room=room-9&token=" + token)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403 for an unauthorized room, got %d", resp.StatusCode)
		}
	})

	t.Run("streams broadcasts", func(t *testing.T) {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?room=room-1&token="+token, nil)
		if err != nil {
			t.Fatalf("failed to dial: %v", err)
		}
		defer conn.Close()

		deadline := time.Now().Add(2 * time.Second)
		for feed.Hub().ClientCount("room-1") == 0 {
			if time.Now().After(deadline) {
				t.Fatal("timed out waiting for the client to register")
			}
			time.Sleep(5 * time.Millisecond)
		}

		feed.Hub().Broadcast("room-1", FeedMessage{
			Topic:   matchevents.BallUpdatedV1,
			Payload: json.RawMessage(`{"room_id":"room-1","runs":4}`),
		})

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg FeedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("failed to read feed message: %v", err)
		}
		if msg.Topic != matchevents.BallUpdatedV1 {
			t.Errorf("unexpected topic %q", msg.Topic)
		}
	})
}
