package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vozciudadana/civic-core/internal/api/metrics"
	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Toggle casts or retracts the caller's vote on a post or comment.
//
// @Summary      Toggle vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleVoteRequest  true  "Vote target"
// @Success      200   {object}  voteResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /v1/votes/toggle [post]
func (h *VoteHandler) Toggle(c echo.Context) error {
	voter, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req toggleVoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.VoterIDKey != "" {
		if id, _ := domain.ParseNationalID(req.VoterIDKey); id != voter {
			return domain.ErrForbidden
		}
	}

	start := time.Now()
	res, err := h.votes.Toggle(c.Request().Context(), ports.ToggleVoteInput{
		VoterNationalID: voter,
		TargetID:        req.TargetID,
		TargetKind:      req.TargetKind,
	})
	metrics.VoteToggleDuration.WithLabelValues(req.TargetKind).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	metrics.VoteTogglesTotal.WithLabelValues(string(res.TargetKind), string(res.Outcome)).Inc()
	if res.TargetKind == domain.TargetPost {
		metrics.ObserveXP("vote", res.Outcome.ReputationDelta())
	}
	return c.JSON(http.StatusOK, toVoteResponse(res))
}
