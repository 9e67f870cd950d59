package audit

import "time"

// Well-known event actions. Handlers may record others; these are the ones
// the dashboard and the scan task reason about.
const (
	ActionLoginSuccess = "auth.login"
	ActionLoginFailure = "auth.login_failed"
	ActionLogout       = "auth.logout"
	ActionDenied       = "authz.denied"
	ActionAlert        = "security.alert"
)

// Event is one line in the security timeline.
type Event struct {
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity,omitempty"`
	EntityID int64     `json:"entity_id,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// TimelineFilter narrows the event timeline.
type TimelineFilter struct {
	Actor  string
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// ActorCount pairs an actor with how many matching events it produced.
type ActorCount struct {
	Actor string `json:"actor"`
	Count int    `json:"count"`
}

// Dashboard aggregates a window of the timeline.
type Dashboard struct {
	WindowHours int          `json:"window_hours"`
	Total       int          `json:"total"`
	Denials     int          `json:"denials"`
	TopDenied   []ActorCount `json:"top_denied"`
	Recent      []Event      `json:"recent"`
}
