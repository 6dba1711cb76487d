package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// FlowState carries the identifiers a student accumulates across the
// multi-step review flow.
type FlowState struct {
	AssignmentID uint `json:"assignment_id"`
	SubmissionID uint `json:"submission_id"`
}

// FlowSessionStore anchors the multi-step student flow to a short-lived token
// backed by redis. The record store remains the source of truth for all
// entity state; the flow session only remembers which entities the student is
// working on.
type FlowSessionStore interface {
	Start(ctx context.Context, assignmentID uint) (string, error)
	Get(ctx context.Context, token string) (FlowState, error)
	SetSubmission(ctx context.Context, token string, submissionID uint) error
}

type flowSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewFlowSessionStore builds the redis-backed flow session store.
func NewFlowSessionStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) FlowSessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return &flowSessionStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "flow_session").Logger(),
	}
}

func flowKey(token string) string {
	return fmt.Sprintf("flow:session:%s", token)
}

func (s *flowSessionStore) Start(ctx context.Context, assignmentID uint) (string, error) {
	token := uuid.NewString()
	state := FlowState{AssignmentID: assignmentID}

	if err := s.save(ctx, token, state); err != nil {
		return "", err
	}

	s.logger.Debug().Uint("assignment_id", assignmentID).Msg("flow session started")

	return token, nil
}

func (s *flowSessionStore) Get(ctx context.Context, token string) (FlowState, error) {
	payload, err := s.client.Get(ctx, flowKey(token)).Result()
	if err == redis.Nil {
		return FlowState{}, ErrFlowSessionNotFound
	}
	if err != nil {
		return FlowState{}, fmt.Errorf("read flow session: %w", err)
	}

	var state FlowState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return FlowState{}, fmt.Errorf("decode flow session: %w", err)
	}

	return state, nil
}

func (s *flowSessionStore) SetSubmission(ctx context.Context, token string, submissionID uint) error {
	state, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	state.SubmissionID = submissionID

	return s.save(ctx, token, state)
}

func (s *flowSessionStore) save(ctx context.Context, token string, state FlowState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode flow session: %w", err)
	}

	if err := s.client.Set(ctx, flowKey(token), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store flow session: %w", err)
	}

	return nil
}
