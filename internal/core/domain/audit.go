package domain

import "time"

const (
	AuditMasterLogin      = "master_login"
	AuditModerationChange = "moderation_transition"
	AuditIdentityVerified = "identity_verified"
)

// AuditEvent is an append-only record of a privileged or reputation-bearing
// action.
type AuditEvent struct {
	ID        string
	Action    string
	Actor     string
	Subject   string
	Outcome   string
	Details   map[string]any
	Timestamp time.Time
}
