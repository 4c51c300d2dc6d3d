package audit

import "time"

// Action names a security-relevant step of the recovery flow.
type Action string

const (
	ActionResetRequested Action = "reset.requested"
	ActionCodeVerified   Action = "reset.code_verified"
	ActionResetCompleted Action = "reset.completed"
	ActionRoleSynced     Action = "role.synced"
	ActionSyncDegraded   Action = "sync.degraded"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Identifier string    `json:"identifier"`
	Action     Action    `json:"action"`
	RequestID  string    `json:"request_id,omitempty"`
	Device     string    `json:"device,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}
