package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kavjeydev/notepod-sub000/pkg/errors"
)

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// CascadeJob tracks one background archive/restore walk. The caller gets
// the job id with the mutation response and polls it until done.
type CascadeJob struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobStore interface {
	Create(ctx context.Context) (*CascadeJob, error)
	Get(ctx context.Context, id string) (*CascadeJob, error)
	SetStatus(ctx context.Context, id string, status JobStatus, errText string) error
}

type redisJobStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisJobStore(client RedisClient, ttl time.Duration) *redisJobStore {
	return &redisJobStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisJobStore) key(id string) string {
	return fmt.Sprintf("job:%s", id)
}

func (s *redisJobStore) Create(ctx context.Context) (*CascadeJob, error) {
	job := &CascadeJob{
		ID:        uuid.NewString(),
		Status:    JobPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.put(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *redisJobStore) Get(ctx context.Context, id string) (*CascadeJob, error) {
	data, err := s.client.Get(ctx, s.key(id))
	if err != nil {
		return nil, errors.NewNotFoundError("job not found")
	}

	var job CascadeJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, err
	}

	return &job, nil
}

func (s *redisJobStore) SetStatus(ctx context.Context, id string, status JobStatus, errText string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	job.Status = status
	job.Error = errText
	job.UpdatedAt = time.Now()

	return s.put(ctx, job)
}

func (s *redisJobStore) put(ctx context.Context, job *CascadeJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(job.ID), data, s.ttl)
}
