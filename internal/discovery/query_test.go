package discovery

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewQuery_Defaults(t *testing.T) {
	q := NewQuery()
	require.Equal(t, 1, q.Page())
	require.Equal(t, DefaultPageSize, q.PageSize())
	require.Equal(t, SortRecent, q.Sort())
	require.Equal(t, Criteria{Category: All, University: All}, q.Criteria())
}

func TestQuery_CriteriaChangesResetPage(t *testing.T) {
	base := NewQuery().WithPage(3)
	require.Equal(t, 3, base.Page())

	changes := map[string]func(Query) Query{
		"search":     func(q Query) Query { return q.WithSearch("solar") },
		"category":   func(q Query) Query { return q.WithCategory("Health") },
		"university": func(q Query) Query { return q.WithUniversity("Gulu University") },
		"tags":       func(q Query) Query { return q.WithTags("IoT") },
		"toggle":     func(q Query) Query { return q.ToggleTag("IoT") },
		"clear":      func(q Query) Query { return q.ClearFilters() },
		"sort":       func(q Query) Query { return q.WithSort(SortTrending) },
		"page size":  func(q Query) Query { return q.WithPageSize(12) },
		"criteria":   func(q Query) Query { return q.WithCriteria(Criteria{Search: "x"}) },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 1, change(base).Page())
			require.Equal(t, 3, base.Page())
		})
	}
}

func TestQuery_WithPageClipsBelowOne(t *testing.T) {
	require.Equal(t, 1, NewQuery().WithPage(0).Page())
	require.Equal(t, 1, NewQuery().WithPage(-4).Page())
}

func TestQuery_ToggleTag(t *testing.T) {
	q := NewQuery().ToggleTag("IoT").ToggleTag("AI/ML")
	require.Equal(t, []string{"IoT", "AI/ML"}, q.Criteria().Tags)

	q = q.ToggleTag("IoT")
	require.Equal(t, []string{"AI/ML"}, q.Criteria().Tags)
}

func TestQuery_IsImmutable(t *testing.T) {
	q := NewQuery().WithTags("a", "b")
	tags := q.Criteria().Tags
	tags[0] = "mutated"
	require.Equal(t, []string{"a", "b"}, q.Criteria().Tags)

	toggled := q.ToggleTag("a")
	require.Equal(t, []string{"a", "b"}, q.Criteria().Tags)
	require.Equal(t, []string{"b"}, toggled.Criteria().Tags)
}

func TestQuery_ClearFiltersKeepsSearch(t *testing.T) {
	q := NewQuery().WithSearch("pump").WithCategory("Agriculture").WithTags("IoT").ClearFilters()
	require.Equal(t, Criteria{Search: "pump", Category: All, University: All}, q.Criteria())
}

func TestParseTags(t *testing.T) {
	require.Nil(t, ParseTags(""))
	require.Nil(t, ParseTags("  "))
	require.Equal(t, []string{"IoT", "AI/ML"}, ParseTags("IoT, AI/ML,,"))
}

func TestSortMode_Valid(t *testing.T) {
	for _, m := range SortModes {
		require.True(t, m.Valid())
	}
	require.False(t, SortMode("alphabetical").Valid())
}

func TestQueryFrom(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q, err := QueryFrom(Criteria{}, "", 0, 0)
		require.NoError(t, err)
		require.Equal(t, NewQuery(), q)
	})

	t.Run("page survives other parameters", func(t *testing.T) {
		c := Criteria{Search: "pump", Category: "Agriculture", Tags: []string{"IoT"}}
		q, err := QueryFrom(c, SortTrending, 4, 12)
		require.NoError(t, err)
		require.Equal(t, 4, q.Page())
		require.Equal(t, 12, q.PageSize())
		require.Equal(t, SortTrending, q.Sort())
		require.Equal(t, Criteria{Search: "pump", Category: "Agriculture", University: All, Tags: []string{"IoT"}}, q.Criteria())
	})

	t.Run("page size is capped", func(t *testing.T) {
		q, err := QueryFrom(Criteria{}, SortRecent, 1, math.MaxInt)
		require.NoError(t, err)
		require.Equal(t, MaxPageSize, q.PageSize())
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, err := QueryFrom(Criteria{}, "alphabetical", 1, 9)
		require.ErrorIs(t, err, ErrUnknownSort)
	})
}
