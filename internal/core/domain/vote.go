package domain

import (
	"errors"
	"time"
)

var (
	ErrVoteNotFound      = errors.New("vote not found")
	ErrTargetNotFound    = errors.New("vote target not found")
	ErrInvalidTargetKind = errors.New("invalid vote target kind")
)

// TargetKind is what a vote is cast on.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// VoteKey identifies the single vote row a voter may hold on a target.
type VoteKey struct {
	VoterID    string
	TargetID   string
	TargetKind TargetKind
}

// Vote is a ledger row. A retracted vote keeps its row with DeletedAt set.
type Vote struct {
	VoterID    string     `json:"voter_id"`
	TargetID   string     `json:"target_id"`
	TargetKind TargetKind `json:"target_kind"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func (v *Vote) Key() VoteKey {
	return VoteKey{VoterID: v.VoterID, TargetID: v.TargetID, TargetKind: v.TargetKind}
}

// VoteState is the tri-state of a (voter, target) pair.
type VoteState int

const (
	VoteAbsent VoteState = iota
	VoteActive
	VoteRetracted
)

func (s VoteState) String() string {
	switch s {
	case VoteActive:
		return "active"
	case VoteRetracted:
		return "retracted"
	default:
		return "absent"
	}
}

// StateOf maps a ledger row (nil when none exists) to its tri-state.
func StateOf(v *Vote) VoteState {
	switch {
	case v == nil:
		return VoteAbsent
	case v.DeletedAt != nil:
		return VoteRetracted
	default:
		return VoteActive
	}
}

// VoteOutcome is the effect of one toggle.
type VoteOutcome string

const (
	VoteCast       VoteOutcome = "cast"
	VoteRetraction VoteOutcome = "retracted"
)

// ReputationDelta is the XP owed to a post author for the outcome.
func (o VoteOutcome) ReputationDelta() int {
	if o == VoteCast {
		return 1
	}
	return -1
}

// Toggle is the pure transition: absent and retracted become active (a cast),
// active becomes retracted (a retraction).
func (s VoteState) Toggle() (VoteState, VoteOutcome) {
	if s == VoteActive {
		return VoteRetracted, VoteRetraction
	}
	return VoteActive, VoteCast
}
