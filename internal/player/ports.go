package player

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=player

// Repository defines the contract for player storage.
type Repository interface {
	// Count returns the number of players matching f, ignoring pagination.
	Count(ctx context.Context, f Filter) (int, error)
	// Find returns one filtered, sorted page of players.
	Find(ctx context.Context, q Query) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, error)
	Create(ctx context.Context, in Input) (Player, error)
	UpdateByID(ctx context.Context, id string, p Patch) (Player, error)
	DeleteByID(ctx context.Context, id string) error
}
