package models

import "time"

// RequestMeta carries the request attributes recorded with an activity event.
type RequestMeta struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// ActivityEvent is the payload published to the activity worker after a
// completed wallet operation. Publishing is best-effort; a failed publish
// never affects the operation it describes.
type ActivityEvent struct {
	EntityID  uint        `json:"entity_id"`
	Activity  string      `json:"activity"`
	Entity    string      `json:"entity"`
	Resource  string      `json:"resource"`
	Event     string      `json:"event"`
	EventDate time.Time   `json:"event_date"`
	Request   RequestMeta `json:"request"`
}
