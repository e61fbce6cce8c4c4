package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCyclesAcyclic(t *testing.T) {
	tasks := []Task{
		{ID: 1, Dependencies: []int{2, 3}},
		{ID: 2, Dependencies: []int{3}},
		{ID: 3},
	}
	assert.Empty(t, DetectCycles(tasks))
}

func TestDetectCyclesSelfDependency(t *testing.T) {
	tasks := []Task{{ID: 1, Dependencies: []int{1}}}
	assert.Equal(t, [][]int{{1}}, DetectCycles(tasks))
}

func TestDetectCyclesThreeNodeCanonical(t *testing.T) {
	cycle := [][]int{{1, 2, 3, 1}}

	// 1 -> 2 -> 3 -> 1 in every input order: the canonical form must not
	// depend on where the traversal happens to start.
	orderings := [][]Task{
		{
			{ID: 1, Dependencies: []int{2}},
			{ID: 2, Dependencies: []int{3}},
			{ID: 3, Dependencies: []int{1}},
		},
		{
			{ID: 3, Dependencies: []int{1}},
			{ID: 1, Dependencies: []int{2}},
			{ID: 2, Dependencies: []int{3}},
		},
		{
			{ID: 2, Dependencies: []int{3}},
			{ID: 3, Dependencies: []int{1}},
			{ID: 1, Dependencies: []int{2}},
		},
	}
	for i, tasks := range orderings {
		assert.Equal(t, cycle, DetectCycles(tasks), "ordering %d", i)
	}
}

func TestDetectCyclesTwoNode(t *testing.T) {
	tasks := []Task{
		{ID: 2, Dependencies: []int{5}},
		{ID: 5, Dependencies: []int{2}},
	}
	assert.Equal(t, [][]int{{2, 5, 2}}, DetectCycles(tasks))
}

func TestDetectCyclesMultipleDisjoint(t *testing.T) {
	tasks := []Task{
		{ID: 1, Dependencies: []int{1}},
		{ID: 2, Dependencies: []int{3}},
		{ID: 3, Dependencies: []int{2}},
		{ID: 4},
	}
	cycles := DetectCycles(tasks)
	assert.Equal(t, [][]int{{1}, {2, 3, 2}}, cycles)
}

func TestDetectCyclesDuplicateDepsIgnored(t *testing.T) {
	// duplicate edges must not produce duplicate cycle reports
	tasks := []Task{
		{ID: 1, Dependencies: []int{2, 2, 2}},
		{ID: 2, Dependencies: []int{1, 1}},
	}
	assert.Equal(t, [][]int{{1, 2, 1}}, DetectCycles(tasks))
}

func TestDetectCyclesAssignsPositionalIDs(t *testing.T) {
	// tasks without ids get 1-based ids from input order
	tasks := []Task{
		{Dependencies: []int{2}},
		{Dependencies: []int{1}},
	}
	assert.Equal(t, [][]int{{1, 2, 1}}, DetectCycles(tasks))
}

func TestDetectCyclesUnknownDependencyIsNotACycle(t *testing.T) {
	tasks := []Task{
		{ID: 1, Dependencies: []int{42}},
		{ID: 2, Dependencies: []int{1}},
	}
	assert.Empty(t, DetectCycles(tasks))
}

func TestDetectCyclesSharedNodeTwoCycles(t *testing.T) {
	// 1 -> 2 -> 1 and 1 -> 3 -> 1 share node 1 but are distinct cycles
	tasks := []Task{
		{ID: 1, Dependencies: []int{2, 3}},
		{ID: 2, Dependencies: []int{1}},
		{ID: 3, Dependencies: []int{1}},
	}
	assert.Equal(t, [][]int{{1, 2, 1}, {1, 3, 1}}, DetectCycles(tasks))
}
