package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vozciudadana/civic-core/internal/core/domain"
	"github.com/vozciudadana/civic-core/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Identity
	// national id -> id
	keys map[string]string
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity), keys: make(map[string]string)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	c := *i
	if i.Authenticator != nil {
		a := *i.Authenticator
		c.Authenticator = &a
	}
	return &c
}

func (r *stubIdentityRepo) add(nationalID, name string, xp int) *domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := &domain.Identity{ID: "id-" + nationalID, NationalID: nationalID, DisplayName: name, Role: domain.RoleCitizen, XP: xp}
	r.byID[i.ID] = i
	r.keys[nationalID] = i.ID
	return cloneIdentity(i)
}

func (r *stubIdentityRepo) xp(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].XP
}

func (r *stubIdentityRepo) FindByNationalID(_ context.Context, nationalID string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.keys[nationalID]
	if !ok || r.byID[id].IsDeleted() {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(r.byID[id]), nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.IsDeleted() {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) BindAuthenticator(ctx context.Context, nationalID, displayName, role string, auth *domain.Authenticator) (*domain.Identity, error) {
	if _, err := r.EnsureIdentity(ctx, nationalID, displayName, role); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.byID[r.keys[nationalID]]
	a := *auth
	i.Authenticator = &a
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) EnsureIdentity(_ context.Context, nationalID, displayName, role string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.keys[nationalID]; ok {
		return cloneIdentity(r.byID[id]), nil
	}
	i := &domain.Identity{ID: "id-" + nationalID, NationalID: nationalID, DisplayName: displayName, Role: role}
	r.byID[i.ID] = i
	r.keys[nationalID] = i.ID
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) UpdateSignCount(_ context.Context, id string, count uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok || i.Authenticator == nil {
		return domain.ErrIdentityNotFound
	}
	i.Authenticator.SignCount = count
	return nil
}

func (r *stubIdentityRepo) AddXP(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return 0, domain.ErrIdentityNotFound
	}
	i.XP = max(0, i.XP+delta)
	return i.XP, nil
}

func (r *stubIdentityRepo) SetVerified(_ context.Context, nationalID string, verified bool, displayName string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.keys[nationalID]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	i := r.byID[id]
	i.Verified = verified
	if displayName != "" {
		i.DisplayName = displayName
	}
	return cloneIdentity(i), nil
}

type stubPostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
	seq   int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *p
	if c.ID == "" {
		c.ID = fmt.Sprintf("post-%d", r.seq)
	}
	r.posts[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubPostRepo) UpdateState(_ context.Context, id string, state domain.PostState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.State = state
	return nil
}

func (r *stubPostRepo) SetVoteCount(_ context.Context, id string, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.VoteCount = count
	return nil
}

type stubCommentRepo struct {
	mu       sync.Mutex
	comments map[string]*domain.Comment
	seq      int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	cc := *c
	if cc.ID == "" {
		cc.ID = fmt.Sprintf("comment-%d", r.seq)
	}
	r.comments[cc.ID] = &cc
	out := cc
	return &out, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *stubCommentRepo) SetVoteCount(_ context.Context, id string, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.VoteCount = count
	return nil
}

type stubVoteRepo struct {
	mu   sync.Mutex
	rows map[domain.VoteKey]*domain.Vote
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{rows: make(map[domain.VoteKey]*domain.Vote)}
}

func (r *stubVoteRepo) Find(_ context.Context, key domain.VoteKey) (*domain.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[key]
	if !ok {
		return nil, domain.ErrVoteNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubVoteRepo) SetActive(_ context.Context, key domain.VoteKey, active bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[key]
	if !ok {
		v = &domain.Vote{VoterID: key.VoterID, TargetID: key.TargetID, TargetKind: key.TargetKind, CreatedAt: at}
		r.rows[key] = v
	}
	if active {
		v.DeletedAt = nil
	} else {
		t := at
		v.DeletedAt = &t
	}
	return nil
}

func (r *stubVoteRepo) CountActive(_ context.Context, targetID string, kind domain.TargetKind) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, v := range r.rows {
		if k.TargetID == targetID && k.TargetKind == kind && v.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

// rowsFor returns every ledger row for a target, active or not.
func (r *stubVoteRepo) rowsFor(targetID string) []domain.Vote {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Vote
	for k, v := range r.rows {
		if k.TargetID == targetID {
			out = append(out, *v)
		}
	}
	return out
}

type stubAuditRepo struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
	err    error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *stubAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action+":"+e.Outcome)
	}
	return out
}

// ---------------------------------------------------------------------------
// Guards and ceremony collaborators
// ---------------------------------------------------------------------------

type stubChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*domain.Challenge
}

func newStubChallengeStore() *stubChallengeStore {
	return &stubChallengeStore{challenges: make(map[string]*domain.Challenge)}
}

func (s *stubChallengeStore) Put(_ context.Context, c *domain.Challenge, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc := *c
	s.challenges[c.NationalID] = &cc
	return nil
}

func (s *stubChallengeStore) Take(_ context.Context, nationalID string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.challenges[nationalID]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	delete(s.challenges, nationalID)
	return c, nil
}

func (s *stubChallengeStore) has(nationalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.challenges[nationalID]
	return ok
}

type stubLimiter struct {
	max    int
	counts map[string]int
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, counts: make(map[string]int)}
}

func (l *stubLimiter) Register(_ context.Context, key string) (bool, error) {
	l.counts[key]++
	return l.counts[key] <= l.max, nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	delete(l.counts, key)
	return nil
}

// mutexSerializer serializes every key behind one lock.
type mutexSerializer struct {
	mu sync.Mutex
}

func (m *mutexSerializer) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// fakeVerifier accepts responses of the form {"challenge": "...", "sign_count": n}
// when the challenge matches the session it issued.
type fakeVerifier struct {
	seq int
}

type fakeResponse struct {
	Challenge string `json:"challenge"`
	SignCount uint32 `json:"sign_count"`
}

func (f *fakeVerifier) start(user ports.CeremonyUser) (*ports.CeremonyStart, error) {
	f.seq++
	challenge := fmt.Sprintf("challenge-%s-%d", user.NationalID, f.seq)
	opts, _ := json.Marshal(map[string]string{"challenge": challenge})
	return &ports.CeremonyStart{Options: opts, Challenge: challenge, Session: []byte(challenge)}, nil
}

func (f *fakeVerifier) check(session []byte, response json.RawMessage) (*fakeResponse, error) {
	var r fakeResponse
	if err := json.Unmarshal(response, &r); err != nil || r.Challenge != string(session) {
		return nil, fmt.Errorf("challenge mismatch: %w", domain.ErrAttestationVerificationFailed)
	}
	return &r, nil
}

func (f *fakeVerifier) BeginRegistration(user ports.CeremonyUser) (*ports.CeremonyStart, error) {
	return f.start(user)
}

func (f *fakeVerifier) FinishRegistration(user ports.CeremonyUser, session []byte, response json.RawMessage) (*domain.Authenticator, error) {
	r, err := f.check(session, response)
	if err != nil {
		return nil, err
	}
	return &domain.Authenticator{
		CredentialID: []byte("cred-" + user.NationalID),
		PublicKey:    []byte("pk-" + user.NationalID),
		SignCount:    r.SignCount,
	}, nil
}

func (f *fakeVerifier) BeginAuthentication(user ports.CeremonyUser) (*ports.CeremonyStart, error) {
	return f.start(user)
}

func (f *fakeVerifier) FinishAuthentication(_ ports.CeremonyUser, session []byte, response json.RawMessage) (*ports.AssertionResult, error) {
	r, err := f.check(session, response)
	if err != nil {
		return nil, err
	}
	return &ports.AssertionResult{SignCount: r.SignCount}, nil
}

// signedResponse builds the client response for the given begin options.
func signedResponse(options json.RawMessage, signCount uint32) json.RawMessage {
	var o map[string]string
	_ = json.Unmarshal(options, &o)
	b, _ := json.Marshal(fakeResponse{Challenge: o["challenge"], SignCount: signCount})
	return b
}
