package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tasks []*Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Name)
	}
	return out
}

func TestNewGraph_Order(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*Task
		want  []string
	}{
		{
			"single task",
			[]*Task{{Name: "A"}},
			[]string{"A"},
		},
		{
			"independent tasks keep insertion order",
			[]*Task{{Name: "C"}, {Name: "A"}, {Name: "B"}},
			[]string{"C", "A", "B"},
		},
		{
			"dependency listed after its dependent",
			[]*Task{{Name: "blast", Dependencies: []string{"download"}}, {Name: "download"}},
			[]string{"download", "blast"},
		},
		{
			"diamond",
			[]*Task{
				{Name: "D", Dependencies: []string{"B", "C"}},
				{Name: "B", Dependencies: []string{"A"}},
				{Name: "C", Dependencies: []string{"A"}},
				{Name: "A"},
			},
			[]string{"A", "B", "C", "D"},
		},
		{
			"repeated dependency",
			[]*Task{{Name: "A"}, {Name: "B", Dependencies: []string{"A", "A"}}},
			[]string{"A", "B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.tasks...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(g.Order()))
			assert.Equal(t, len(tt.tasks), g.Len())
		})
	}
}

func TestNewGraph_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*Task
		kind  error
	}{
		{"no tasks", nil, ErrInvalidGraph},
		{"empty name", []*Task{{Name: ""}}, ErrInvalidGraph},
		{"duplicate name", []*Task{{Name: "A"}, {Name: "A"}}, ErrInvalidGraph},
		{"unknown dependency", []*Task{{Name: "A", Dependencies: []string{"missing"}}}, ErrInvalidGraph},
		{"self dependency", []*Task{{Name: "A", Dependencies: []string{"A"}}}, ErrInvalidGraph},
		{
			"two task cycle",
			[]*Task{{Name: "A", Dependencies: []string{"B"}}, {Name: "B", Dependencies: []string{"A"}}},
			ErrCycle,
		},
		{
			"indirect cycle",
			[]*Task{
				{Name: "A", Dependencies: []string{"C"}},
				{Name: "B", Dependencies: []string{"A"}},
				{Name: "C", Dependencies: []string{"B"}},
			},
			ErrCycle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGraph(tt.tasks...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var graphErr *GraphError
			assert.True(t, errors.As(err, &graphErr))
		})
	}
}

func TestNewGraph_CyclePath(t *testing.T) {
	_, err := NewGraph(
		&Task{Name: "A", Dependencies: []string{"B"}},
		&Task{Name: "B", Dependencies: []string{"A"}},
	)
	assert.EqualError(t, err, "cycle detected: A -> B -> A")
}

func TestGraph_Task(t *testing.T) {
	a := &Task{Name: "A", Command: "echo a"}
	g, err := NewGraph(a)
	require.NoError(t, err)

	got, ok := g.Task("A")
	assert.True(t, ok)
	assert.Same(t, a, got)

	_, ok = g.Task("B")
	assert.False(t, ok)

	assert.Equal(t, []string{"A"}, names(g.Tasks()))
}
