package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at returns a single-line span of source "t" covering [start, end).
func at(start, end int) Span {
	return MakeSpan("t",
		Loc{Offset: start, Line: 1, Column: start + 1},
		Loc{Offset: end, Line: 1, Column: end + 1},
	)
}

func TestSpanMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", at(0, 2), at(5, 9), at(0, 9)},
		{"nested", at(0, 9), at(3, 4), at(0, 9)},
		{"overlap", at(2, 6), at(4, 8), at(2, 8)},
		{"empty", at(3, 3), at(3, 3), at(3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Merge(tt.b))
			assert.Equal(t, tt.want, tt.b.Merge(tt.a), "commutative")
			assert.Equal(t, tt.a, tt.a.Merge(tt.a), "idempotent")
		})
	}
}

func TestSpanMergeAssociative(t *testing.T) {
	spans := []Span{at(0, 1), at(4, 7), at(2, 3), at(6, 12), at(9, 9)}

	for _, a := range spans {
		for _, b := range spans {
			for _, c := range spans {
				assert.Equal(t, a.Merge(b).Merge(c), a.Merge(b.Merge(c)))
			}
		}
	}
}

func TestSpanMergeDifferentSources(t *testing.T) {
	other := at(0, 1)
	other.Source = "u"

	assert.Panics(t, func() { at(0, 1).Merge(other) })
}

func TestSpanContains(t *testing.T) {
	assert.True(t, at(0, 9).Contains(at(2, 5)))
	assert.True(t, at(0, 9).Contains(at(0, 9)))
	assert.False(t, at(2, 5).Contains(at(0, 9)))
	assert.False(t, at(0, 9).Contains(MakeSpan("u", Loc{}, Loc{Offset: 1})))
}

func TestSpanString(t *testing.T) {
	s := MakeSpan("main.tc", Loc{Offset: 14, Line: 2, Column: 5}, Loc{Offset: 20})
	assert.Equal(t, "main.tc:2:5", s.String())
	assert.Equal(t, 6, s.Len())
	assert.True(t, s.Valid())
	assert.False(t, s.IsZero())
	assert.True(t, Span{}.IsZero())
}

func TestSpannedEqualIgnoresSpan(t *testing.T) {
	a := Sp(at(0, 1), Ident("x"))
	b := Sp(at(7, 8), Ident("x"))
	c := Sp(at(0, 1), Ident("y"))

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.Equal(t, 0, Compare(a, b))
	assert.Negative(t, Compare(a, c))

	m := map[Ident]int{a.Key(): 1}
	require.Contains(t, m, b.Key())
}
