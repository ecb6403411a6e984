package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dstone/movie-club-server/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a listen-only test WebSocket client; the rotation hub only
// pushes events, it never reads commands.
type WSClient struct {
	t      *testing.T
	conn   *gorillaWS.Conn
	events chan *websocket.Event
	errors chan error
	done   chan struct{}
	mu     sync.Mutex
}

// NewWSClient connects to the given websocket URL
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:      t,
		conn:   conn,
		events: make(chan *websocket.Event, 100),
		errors: make(chan error, 10),
		done:   make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

func (c *WSClient) readPump() {
	defer close(c.events)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var event websocket.Event
			if err := json.Unmarshal(data, &event); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.events <- &event:
			case <-c.done:
				return
			}
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// ExpectEvent waits for an event of the specified type, skipping others
func (c *WSClient) ExpectEvent(eventType websocket.EventType, timeout time.Duration) *websocket.Event {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case event := <-c.events:
			if event == nil {
				c.t.Fatalf("connection closed while waiting for %s", eventType)
			}
			if event.Type == eventType {
				return event
			}
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", eventType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for event type %s", eventType)
		}
	}
}

// ExpectNoEvent verifies nothing arrives within timeout
func (c *WSClient) ExpectNoEvent(timeout time.Duration) {
	c.t.Helper()

	select {
	case event := <-c.events:
		if event != nil {
			c.t.Fatalf("unexpected event received: %s", event.Type)
		}
	case <-time.After(timeout):
	}
}

// DecodePayload unmarshals the event payload into v
func DecodePayload(t *testing.T, event *websocket.Event, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(event.Payload, v); err != nil {
		t.Fatalf("failed to decode %s payload: %v", event.Type, err)
	}
}
