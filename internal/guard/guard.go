// Package guard enforces a soft cap on the serialized size of the task
// list. It reacts after the fact rather than rejecting the mutation that
// crossed the cap, so transient overshoot is possible and acceptable.
package guard

import (
	"encoding/json"
	"sort"

	"github.com/nhle/taskflow/internal/model"
)

// DefaultMaxBytes is the default soft cap on the serialized task list.
const DefaultMaxBytes = 4 * 1024 * 1024

// evictFraction is the share of tasks dropped when the cap is crossed.
const evictFraction = 0.2

// Guard watches the aggregate serialized size of the task list.
type Guard struct {
	// MaxBytes is the soft cap. Zero or negative falls back to
	// DefaultMaxBytes.
	MaxBytes int
}

// New creates a Guard with the given cap in bytes.
func New(maxBytes int) *Guard {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Guard{MaxBytes: maxBytes}
}

// Size returns the serialized byte size of the task list, as it would be
// written to storage. Also feeds the status bar storage meter.
func Size(tasks []model.Task) int {
	data, err := json.Marshal(tasks)
	if err != nil {
		return 0
	}
	return len(data)
}

// Check evaluates the task list against the cap. When the serialized size
// reaches the cap it evicts the oldest floor(20%) of tasks by creation
// order (ascending ID) and returns the survivors, in their original order,
// with evicted=true. The caller skips persisting on an evicting pass.
//
// Pinned status does not protect a task from eviction.
func (g *Guard) Check(tasks []model.Task) ([]model.Task, bool) {
	if Size(tasks) < g.MaxBytes {
		return tasks, false
	}

	dropCount := int(float64(len(tasks)) * evictFraction)
	if dropCount == 0 {
		return tasks, false
	}

	byAge := make([]model.Task, len(tasks))
	copy(byAge, tasks)
	sort.Slice(byAge, func(i, j int) bool { return byAge[i].ID < byAge[j].ID })

	evicted := make(map[int64]bool, dropCount)
	for _, t := range byAge[:dropCount] {
		evicted[t.ID] = true
	}

	kept := make([]model.Task, 0, len(tasks)-dropCount)
	for _, t := range tasks {
		if !evicted[t.ID] {
			kept = append(kept, t)
		}
	}

	return kept, true
}
