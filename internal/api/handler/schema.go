package handler

import (
	"encoding/json"
	"time"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type registrationBeginRequest struct {
	IDKey       string `json:"id_key"       validate:"required,nationalid"`
	DisplayName string `json:"display_name" validate:"omitempty,max=120"`
}

type registrationFinishRequest struct {
	IDKey       string          `json:"id_key"       validate:"required,nationalid"`
	DisplayName string          `json:"display_name" validate:"omitempty,max=120"`
	Response    json.RawMessage `json:"response"     validate:"required" swaggertype:"object"`
}

type authenticationBeginRequest struct {
	IDKey string `json:"id_key" validate:"required,nationalid"`
}

type authenticationFinishRequest struct {
	IDKey    string          `json:"id_key"   validate:"required,nationalid"`
	Response json.RawMessage `json:"response" validate:"required" swaggertype:"object"`
}

type masterLoginRequest struct {
	IDKey  string `json:"id_key" validate:"required,nationalid"`
	Secret string `json:"secret" validate:"required,max=256"`
}

type checkIdentityResponse struct {
	Exists           bool   `json:"exists"`
	HasAuthenticator bool   `json:"has_authenticator"`
	DisplayName      string `json:"display_name"`
}

type identityResponse struct {
	ID               string           `json:"id"`
	NationalID       string           `json:"national_id"`
	DisplayName      string           `json:"display_name"`
	Role             string           `json:"role"`
	XP               int              `json:"xp"`
	Verified         bool             `json:"verified"`
	HasAuthenticator bool             `json:"has_authenticator"`
	Level            domain.LevelInfo `json:"level"`
	CreatedAt        time.Time        `json:"created_at"`
}

type ceremonyResponse struct {
	Verified bool             `json:"verified"`
	Token    string           `json:"token"`
	Identity identityResponse `json:"identity"`
}

// ── Identities ────────────────────────────────────────────────────────────────

type verifyIdentityRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,max=120"`
}

// ── Votes ─────────────────────────────────────────────────────────────────────

type toggleVoteRequest struct {
	// VoterIDKey is optional; when present it must match the caller.
	VoterIDKey string `json:"voter_id_key" validate:"omitempty,nationalid"`
	TargetID   string `json:"target_id"    validate:"required"`
	TargetKind string `json:"target_kind"  validate:"required,oneof=post comment"`
}

type voteResponse struct {
	TargetID   string `json:"target_id"`
	TargetKind string `json:"target_kind"`
	Outcome    string `json:"outcome"`
	VoteCount  int64  `json:"vote_count"`
}

// ── Posts ─────────────────────────────────────────────────────────────────────

type createPostRequest struct {
	Title     string `json:"title"     validate:"required,max=200"`
	Content   string `json:"content"   validate:"required,max=5000"`
	Kind      string `json:"kind"      validate:"required,oneof=report idea news"`
	Anonymous bool   `json:"anonymous"`
}

type createCommentRequest struct {
	Text     string `json:"text"      validate:"required,max=2000"`
	ParentID string `json:"parent_id"`
}

type setStateRequest struct {
	State string `json:"state" validate:"required,oneof=pending in_review completed rejected"`
}

type stateChangeResponse struct {
	PostID  string `json:"post_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	XPDelta int    `json:"xp_delta"`
	Changed bool   `json:"changed"`
}
