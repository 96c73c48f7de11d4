package ports

import (
	"context"
	"time"

	"github.com/musetix/polls/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id string) (*domain.Poll, error)
	RegisterVote(ctx context.Context, id, option string, now time.Time) error
	IDsEndingAfter(ctx context.Context, t time.Time) ([]string, error)
	IDsEndingBefore(ctx context.Context, t time.Time) ([]string, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type CreatePollInput struct {
	Question        string
	Options         []string
	DurationMinutes int
}

type VoteInput struct {
	PollID string
	Option string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (string, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	Vote(ctx context.Context, input VoteInput) error
	ListActive(ctx context.Context) ([]*domain.Poll, error)
	ListCompleted(ctx context.Context) ([]*domain.Poll, error)
}
