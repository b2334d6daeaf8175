package ws

import "encoding/json"

// Notification types sent to observers. Observers must ignore unknown
// types rather than treat them as errors; there is no envelope versioning.
const (
	EventCreated    = "EVENT_CREATED"
	EventVoided     = "EVENT_VOIDED"
	SubjectVerified = "SUBJECT_VERIFIED"
)

// Notification is the wire envelope sent to observers.
type Notification struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
