package player

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an id does not resolve to a stored player.
	ErrNotFound = errors.New("player not found")
	// ErrInvalidParameter is wrapped by every *ParamError.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNoResults signals a well-formed listing that matched nothing.
	ErrNoResults = errors.New("no players found for the given criteria")
	// ErrStoreUnavailable wraps any failure of the record store.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrEmptyPatch is returned by Update when the patch sets no field.
	ErrEmptyPatch = errors.New("update must set at least one field")
)

// Player represents a stored player record.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Runs      int       `json:"runs"`
	Salary    float64   `json:"salary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the payload for creating a player.
type Input struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Team   string  `json:"team" validate:"required,max=100"`
	Runs   int     `json:"runs" validate:"gte=0"`
	Salary float64 `json:"salary" validate:"gte=0"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Team   *string  `json:"team,omitempty" validate:"omitempty,min=1,max=100"`
	Runs   *int     `json:"runs,omitempty" validate:"omitempty,gte=0"`
	Salary *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Team == nil && p.Runs == nil && p.Salary == nil
}

// Apply copies the set fields of p onto pl.
func (p Patch) Apply(pl *Player) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Team != nil {
		pl.Team = *p.Team
	}
	if p.Runs != nil {
		pl.Runs = *p.Runs
	}
	if p.Salary != nil {
		pl.Salary = *p.Salary
	}
}

// ParamError describes a rejected listing parameter.
type ParamError struct {
	Param   string
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
