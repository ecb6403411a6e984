package websocket

import (
	"encoding/json"
	"time"
)

type EventType string

// Server to client rotation events. Clients only listen; there is no
// client-to-server command surface.
const (
	EventTypeSeasonReset   EventType = "SEASON_RESET"
	EventTypePickSubmitted EventType = "PICK_SUBMITTED"
	EventTypePickWithdrawn EventType = "PICK_WITHDRAWN"
	EventTypePicksRevealed EventType = "PICKS_REVEALED"
)

type Event struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewEvent(eventType EventType, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// SeasonResetPayload announces a fresh season and its drawn batch.
type SeasonResetPayload struct {
	SeasonNumber int      `json:"seasonNumber"`
	PickerNames  []string `json:"pickerNames"`
}

// PickSubmittedPayload names the member only; the movie stays hidden until
// reveal.
type PickSubmittedPayload struct {
	UserName string `json:"userName"`
}

type PickWithdrawnPayload struct {
	UserName string `json:"userName"`
}

type RevealedPickPayload struct {
	UserName   string `json:"userName"`
	MovieTitle string `json:"movieTitle"`
	MovieYear  *int   `json:"movieYear"`
}

type PicksRevealedPayload struct {
	SeasonNumber     int                   `json:"seasonNumber"`
	Revealed         []RevealedPickPayload `json:"revealed"`
	RemainingPickers int                   `json:"remainingPickers"`
	SeasonCompleted  bool                  `json:"seasonCompleted"`
}
