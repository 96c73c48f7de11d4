package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/musetix/polls/internal/core/domain"
	"github.com/musetix/polls/internal/core/ports"
)

type pollService struct {
	repo ports.PollRepository
	now  func() time.Time
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return NewPollServiceWithClock(repo, time.Now)
}

// NewPollServiceWithClock injects the clock used for expiry computation and
// active/completed classification.
func NewPollServiceWithClock(repo ports.PollRepository, now func() time.Time) ports.PollService {
	return &pollService{
		repo: repo,
		now:  now,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (string, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return "", &domain.ValidationError{Reason: "question is required"}
	}

	var options []string
	for _, opt := range input.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return "", &domain.ValidationError{Reason: "at least 2 non-empty options are required"}
	}

	if input.DurationMinutes <= 0 {
		return "", &domain.ValidationError{Reason: "valid duration is required"}
	}

	now := s.now()
	poll := &domain.Poll{
		ID:        "poll:" + uuid.NewString(),
		Question:  question,
		Options:   options,
		Votes:     make([]int64, len(options)),
		CreatedAt: now,
		EndsAt:    now.Add(time.Duration(input.DurationMinutes) * time.Minute),
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return "", err
	}

	return poll.ID, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &domain.ValidationError{Reason: "poll id is required"}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *pollService) Vote(ctx context.Context, input ports.VoteInput) error {
	if strings.TrimSpace(input.PollID) == "" {
		return &domain.ValidationError{Reason: "poll id is required"}
	}
	if strings.TrimSpace(input.Option) == "" {
		return &domain.ValidationError{Reason: "option is required"}
	}

	return s.repo.RegisterVote(ctx, input.PollID, input.Option, s.now())
}

func (s *pollService) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	ids, err := s.repo.IDsEndingAfter(ctx, s.now())
	if err != nil {
		return nil, err
	}

	return s.resolvePolls(ctx, ids)
}

func (s *pollService) ListCompleted(ctx context.Context) ([]*domain.Poll, error) {
	ids, err := s.repo.IDsEndingBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}

	return s.resolvePolls(ctx, ids)
}

// resolvePolls fetches every poll concurrently, keeping the index order. Ids
// whose record no longer exists are dropped; any other failure fails the
// whole listing.
func (s *pollService) resolvePolls(ctx context.Context, ids []string) ([]*domain.Poll, error) {
	resolved := make([]*domain.Poll, len(ids))

	var wg sync.WaitGroup
	errChan := make(chan error, len(ids))

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			poll, err := s.repo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrPollNotFound) {
					return
				}
				errChan <- fmt.Errorf("failed to resolve poll %s: %w", id, err)
				return
			}
			resolved[i] = poll
		}(i, id)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	polls := make([]*domain.Poll, 0, len(resolved))
	for _, poll := range resolved {
		if poll != nil {
			polls = append(polls, poll)
		}
	}
	return polls, nil
}
