package player

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo keeps players in process memory. Its default order is
// insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Player
	order []string
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID: make(map[string]Player),
		now:  time.Now,
	}
}

func (r *MemoryRepo) Count(ctx context.Context, f Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.order {
		if matches(r.byID[id], f) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) Find(ctx context.Context, q Query) ([]Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Player
	for _, id := range r.order {
		if p := r.byID[id]; matches(p, q.Filter) {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	if !q.Sort.IsZero() {
		less := sortLess(q.Sort)
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	if q.Offset >= len(out) {
		return []Player{}, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Player, error) {
	if err := ctx.Err(); err != nil {
		return Player{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return Player{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) Create(ctx context.Context, in Input) (Player, error) {
	if err := ctx.Err(); err != nil {
		return Player{}, err
	}
	now := r.now().UTC()
	p := Player{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Team:      in.Team,
		Runs:      in.Runs,
		Salary:    in.Salary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *MemoryRepo) UpdateByID(ctx context.Context, id string, patch Patch) (Player, error) {
	if err := ctx.Err(); err != nil {
		return Player{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return Player{}, ErrNotFound
	}
	patch.Apply(&p)
	p.UpdatedAt = r.now().UTC()
	r.byID[id] = p
	return p, nil
}

func (r *MemoryRepo) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func matches(p Player, f Filter) bool {
	if f.Team != "" && p.Team != f.Team {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	return true
}

func sortLess(s Sort) func(a, b Player) bool {
	var key func(Player) float64
	switch s.Field {
	case SortByRuns:
		key = func(p Player) float64 { return float64(p.Runs) }
	case SortBySalary:
		key = func(p Player) float64 { return p.Salary }
	default:
		return func(a, b Player) bool { return false }
	}
	if s.Desc {
		return func(a, b Player) bool { return key(a) > key(b) }
	}
	return func(a, b Player) bool { return key(a) < key(b) }
}
