package task

import (
	"container/heap"
)

// Graph is a validated set of Tasks and their dependencies.
type Graph struct {
	tasks  []*Task // insertion order
	byName map[string]int

	outgoing [][]int // by insertion index, ascending
	indeg    []int
}

// NewGraph validates the tasks and their dependencies. It rejects:
//   - empty or duplicate task names
//   - dependencies on tasks that aren't in the graph
//   - tasks that depend on themselves
//   - cycles
func NewGraph(tasks ...*Task) (*Graph, error) {
	if len(tasks) == 0 {
		return nil, invalidf("no tasks")
	}

	g := &Graph{
		tasks:    tasks,
		byName:   make(map[string]int, len(tasks)),
		outgoing: make([][]int, len(tasks)),
		indeg:    make([]int, len(tasks)),
	}

	for i, t := range tasks {
		if t.Name == "" {
			return nil, invalidf("task name is required")
		}
		if _, exists := g.byName[t.Name]; exists {
			return nil, invalidf("duplicate task name: %q", t.Name)
		}
		g.byName[t.Name] = i
	}

	for i, t := range tasks {
		seen := make(map[string]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			from, ok := g.byName[dep]
			if !ok {
				return nil, invalidf("%q depends on unknown task %q", t.Name, dep)
			}
			if from == i {
				return nil, invalidf("%q depends on itself", t.Name)
			}
			if seen[dep] {
				continue
			}
			seen[dep] = true

			g.outgoing[from] = append(g.outgoing[from], i)
			g.indeg[i]++
		}
	}

	if order := g.order(); len(order) != len(tasks) {
		return nil, cycleError(g.findCycle())
	}

	return g, nil
}

// Len is the number of tasks in the graph.
func (g *Graph) Len() int { return len(g.tasks) }

// Task returns a task by name.
func (g *Graph) Task(name string) (*Task, bool) {
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.tasks[i], true
}

// Tasks returns the tasks in insertion order.
func (g *Graph) Tasks() []*Task {
	out := make([]*Task, len(g.tasks))
	copy(out, g.tasks)
	return out
}

// Order returns the tasks in a topological order: every task comes after
// its dependencies. Ties are broken by insertion order.
func (g *Graph) Order() []*Task {
	order := g.order()
	out := make([]*Task, 0, len(order))
	for _, i := range order {
		out = append(out, g.tasks[i])
	}
	return out
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// order is Kahn's algorithm with a min-heap ready queue. It's shorter than
// the task list if there's a cycle.
func (g *Graph) order() []int {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	ready := &intMinHeap{}
	for i, d := range indeg {
		if d == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(int)
		out = append(out, n)
		for _, m := range g.outgoing[n] {
			indeg[m]--
			if indeg[m] == 0 {
				heap.Push(ready, m)
			}
		}
	}
	return out
}

// findCycle returns the names along one cycle, first name repeated at the end.
func (g *Graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(g.tasks))
	parent := make([]int, len(g.tasks))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int
	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// back-edge u -> v, walk parents from u back to v
				cycle = append(cycle, v)
				for cur := u; cur != -1 && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range g.tasks {
		if color[i] == white && dfs(i) {
			break
		}
	}

	// cycle is in reverse edge order
	names := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		names = append(names, g.tasks[cycle[i]].Name)
	}
	return names
}
