package presence

// Member is the announced identity; only the user id crosses the channel.
type Member struct {
	UserID string `json:"userid"`
}

// Payload is what one connection announces after its subscription is acked.
type Payload struct {
	Member Member `json:"member"`
}

// State is the full presence table delivered on every sync event: connection
// key to the payloads that connection announced. The same user on two
// connections shows up under two keys.
type State map[string][]Payload

// Wire events exchanged on the channel.
const (
	EventSubscribed = "subscribed"
	EventTrack      = "track"
	EventSync       = "sync"
)

// Message is the wire frame for the presence channel.
type Message struct {
	Event   string   `json:"event"`
	Payload *Payload `json:"payload,omitempty"`
	State   State    `json:"state,omitempty"`
}
