package player

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T, inputs ...Input) (*MemoryRepo, []Player) {
	t.Helper()
	repo := NewMemoryRepo()
	out := make([]Player, 0, len(inputs))
	for _, in := range inputs {
		p, err := repo.Create(context.Background(), in)
		require.NoError(t, err)
		out = append(out, p)
	}
	return repo, out
}

func numbered(n int, team string) []Input {
	ins := make([]Input, n)
	for i := range ins {
		ins[i] = Input{
			Name:   fmt.Sprintf("Player %02d", i+1),
			Team:   team,
			Runs:   (i * 37) % 11,
			Salary: float64((i*53)%17) * 1000,
		}
	}
	return ins
}

func TestMemoryRepo_PageTwoOfTwelve(t *testing.T) {
	repo, seeded := seedMemory(t, numbered(12, "Lions")...)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{Page: "2", Limit: "5"})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, seeded[5:10], res.Players)
}

func TestMemoryRepo_SortByRunsIsNonIncreasing(t *testing.T) {
	repo, _ := seedMemory(t, numbered(20, "Lions")...)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{SortBy: "runs", Limit: "20"})
	require.NoError(t, err)
	require.Len(t, res.Players, 20)

	for i := 1; i < len(res.Players); i++ {
		assert.GreaterOrEqual(t, res.Players[i-1].Runs, res.Players[i].Runs)
	}
}

func TestMemoryRepo_SortBySalaryIsNonIncreasing(t *testing.T) {
	repo, _ := seedMemory(t, numbered(15, "Tigers")...)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{SortBy: "salary", Limit: "15"})
	require.NoError(t, err)

	for i := 1; i < len(res.Players); i++ {
		assert.GreaterOrEqual(t, res.Players[i-1].Salary, res.Players[i].Salary)
	}
}

func TestMemoryRepo_TeamAndSearchCombine(t *testing.T) {
	repo, _ := seedMemory(t,
		Input{Name: "Daniel", Team: "Lions"},
		Input{Name: "ANNA", Team: "Lions"},
		Input{Name: "Bob", Team: "Lions"},
		Input{Name: "Hannah", Team: "Tigers"},
		Input{Name: "Jonah", Team: "lions"},
	)
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{Team: "Lions", Search: "an"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	for _, p := range res.Players {
		assert.Equal(t, "Lions", p.Team)
		assert.Contains(t, strings.ToLower(p.Name), "an")
	}
}

func TestMemoryRepo_SearchIsLiteral(t *testing.T) {
	repo, _ := seedMemory(t, Input{Name: "A.J. Styles", Team: "X"}, Input{Name: "Abjection", Team: "X"})
	svc := NewService(repo)

	res, err := svc.List(context.Background(), ListParams{Search: "a.j"})
	require.NoError(t, err)
	require.Len(t, res.Players, 1)
	assert.Equal(t, "A.J. Styles", res.Players[0].Name)
}

func TestMemoryRepo_NoMatchesIsNoResults(t *testing.T) {
	repo, _ := seedMemory(t, numbered(3, "Lions")...)
	svc := NewService(repo)

	_, err := svc.List(context.Background(), ListParams{Team: "Eagles"})
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = svc.List(context.Background(), ListParams{Page: "5"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestMemoryRepo_PaginationLaw(t *testing.T) {
	repo, _ := seedMemory(t, numbered(23, "Lions")...)
	svc := NewService(repo)
	ctx := context.Background()

	for _, limit := range []int{1, 4, 5, 7, 23, 50} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			all, err := repo.Find(ctx, Query{Sort: Sort{Field: SortByRuns, Desc: true}})
			require.NoError(t, err)

			var (
				pages  int
				joined []Player
			)
			for page := 1; ; page++ {
				res, err := svc.List(ctx, ListParams{
					Page:   fmt.Sprint(page),
					Limit:  fmt.Sprint(limit),
					SortBy: "runs",
				})
				if err != nil {
					require.ErrorIs(t, err, ErrNoResults)
					break
				}
				assert.Equal(t, 23, res.Total)
				pages++
				joined = append(joined, res.Players...)
			}

			assert.Equal(t, (23+limit-1)/limit, pages)
			assert.Equal(t, all, joined)
		})
	}
}

func TestMemoryRepo_ListIsIdempotent(t *testing.T) {
	repo, _ := seedMemory(t, numbered(9, "Lions")...)
	svc := NewService(repo)
	params := ListParams{Page: "2", Limit: "4", SortBy: "salary"}

	first, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMemoryRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, Input{Name: "Virat", Team: "Royals", Runs: 90, Salary: 1200})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	team := "Kings"
	updated, err := repo.UpdateByID(ctx, created.ID, Patch{Team: &team})
	require.NoError(t, err)
	assert.Equal(t, "Kings", updated.Team)
	assert.Equal(t, "Virat", updated.Name)
	assert.Equal(t, created.ID, updated.ID)

	_, err = repo.UpdateByID(ctx, "missing", Patch{Team: &team})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.DeleteByID(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_DeleteMissingLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	repo, _ := seedMemory(t, numbered(4, "Lions")...)

	before, err := repo.Find(ctx, Query{})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteByID(ctx, "does-not-exist"), ErrNotFound)

	after, err := repo.Find(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryRepo_HonoursCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Count(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}
