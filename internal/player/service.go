package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"playerapi/internal/platform/logger"
	"playerapi/internal/platform/metrics"
)

// Service provides player business logic.
type Service struct {
	repo    Repository
	log     logger.Logger
	metrics *metrics.Manager
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a new player service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List validates p, then fetches the requested page and the total match
// count concurrently. A page with no players yields ErrNoResults.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	req, err := ParseListParams(p)
	if err != nil {
		s.metrics.ListOutcome(metrics.OutcomeInvalidParameter)
		return ListResult{}, err
	}
	q := req.Query()

	var (
		players []Player
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		defer func() { s.metrics.ObserveStore("find", time.Since(start)) }()
		var err error
		players, err = s.repo.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		start := time.Now()
		defer func() { s.metrics.ObserveStore("count", time.Since(start)) }()
		var err error
		total, err = s.repo.Count(gctx, q.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "list players: store query failed",
			logger.String("team", q.Filter.Team),
			logger.String("search", q.Filter.NameContains),
			logger.Error(err),
		)
		s.metrics.ListOutcome(metrics.OutcomeStoreUnavailable)
		return ListResult{}, fmt.Errorf("%w: list players: %v", ErrStoreUnavailable, err)
	}

	if len(players) == 0 {
		s.metrics.ListOutcome(metrics.OutcomeNoResults)
		return ListResult{}, ErrNoResults
	}

	s.metrics.ListOutcome(metrics.OutcomeOK)
	return ListResult{
		Page:    req.Page,
		Limit:   req.Limit,
		Total:   total,
		Players: players,
	}, nil
}

// Get returns the player with the given id.
func (s *Service) Get(ctx context.Context, id string) (Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Player{}, s.storeErr(ctx, "get player", err)
	}
	return p, nil
}

// Create stores a new player; the store assigns its id.
func (s *Service) Create(ctx context.Context, in Input) (Player, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Player{}, s.storeErr(ctx, "create player", err)
	}
	return p, nil
}

// Update applies patch to the player with the given id.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Player, error) {
	if patch.IsEmpty() {
		return Player{}, ErrEmptyPatch
	}
	p, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return Player{}, s.storeErr(ctx, "update player", err)
	}
	return p, nil
}

// Delete removes the player with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.storeErr(ctx, "delete player", err)
	}
	return nil
}

// storeErr passes ErrNotFound through and folds everything else into
// ErrStoreUnavailable after logging the cause.
func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	s.log.Error(ctx, op+": store failure", logger.Error(err))
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
