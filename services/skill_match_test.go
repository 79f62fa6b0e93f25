package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchEmptySets(t *testing.T) {
	m := NewDeterministicMatcher()

	require.Equal(t, 0, m.Match(nil, []string{"go"}))
	require.Equal(t, 0, m.Match([]string{"go"}, nil))
	require.Equal(t, 0, m.Match(nil, nil))
	require.Equal(t, 0, m.Match([]string{"  "}, []string{"  "}))
}

func TestMatchDeterministic(t *testing.T) {
	m := NewDeterministicMatcher()

	tests := []struct {
		name string
		user []string
		team []string
		want int
	}{
		{
			name: "full overlap capped",
			user: []string{"go", "react", "postgres"},
			team: []string{"go", "react", "postgres"},
			want: maxMatchPercentage,
		},
		{
			name: "single exact of two",
			user: []string{"go"},
			team: []string{"go", "react"},
			want: 75,
		},
		{
			name: "no overlap",
			user: []string{"haskell"},
			team: []string{"go", "react"},
			want: 0,
		},
		{
			name: "partial substring only",
			user: []string{"react native"},
			team: []string{"react", "go"},
			want: 25,
		},
		{
			name: "case and whitespace insensitive",
			user: []string{"  Go ", "REACT"},
			team: []string{"go", "react"},
			want: maxMatchPercentage,
		},
		{
			name: "duplicate team skills deduplicated",
			user: []string{"go"},
			team: []string{"go", "go", "go"},
			want: maxMatchPercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.Match(tt.user, tt.team))

			// same inputs, same score
			require.Equal(t, m.Match(tt.user, tt.team), m.Match(tt.user, tt.team))
		})
	}
}

func TestMatchRange(t *testing.T) {
	m := NewSkillMatcher()

	inputs := [][2][]string{
		{{"go", "react", "postgres", "docker"}, {"go", "react", "postgres", "docker"}},
		{{"go"}, {"rust", "c++", "zig"}},
		{{"python", "ml"}, {"python"}},
	}

	for _, in := range inputs {
		for i := 0; i < 200; i++ {
			got := m.Match(in[0], in[1])
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, maxMatchPercentage)
		}
	}
}

func TestMatchJitterBounded(t *testing.T) {
	// deterministic base score for {"go"} vs {"go","react"} is 75;
	// jitter may move it by at most 5 in either direction
	m := NewSkillMatcher()

	for i := 0; i < 200; i++ {
		got := m.Match([]string{"go"}, []string{"go", "react"})
		require.GreaterOrEqual(t, got, 70)
		require.LessOrEqual(t, got, 80)
	}
}
