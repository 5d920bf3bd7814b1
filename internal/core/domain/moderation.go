package domain

import "errors"

// PostState represents the moderation lifecycle state of a post.
type PostState string

const (
	StatePending   PostState = "pending"
	StateInReview  PostState = "in_review"
	StateCompleted PostState = "completed"
	StateRejected  PostState = "rejected"
)

var ErrInvalidPostState = errors.New("invalid post state")

// stateXP is the XP an author holds for a post sitting in each state.
// Any state may move to any other; the author's XP always reflects only the
// current one.
var stateXP = map[PostState]int{
	StatePending:   0,
	StateInReview:  1,
	StateCompleted: 3,
	StateRejected:  -2,
}

// ParsePostState validates a state name.
func ParsePostState(s string) (PostState, error) {
	st := PostState(s)
	if _, ok := stateXP[st]; !ok {
		return "", ErrInvalidPostState
	}
	return st, nil
}

// TransitionDelta returns the net XP change for moving a post from one state
// to another: revert what the old state granted, then grant the new one.
func TransitionDelta(from, to PostState) int {
	if from == to {
		return 0
	}
	return stateXP[to] - stateXP[from]
}
