package diversity

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ItemInfo is the per-item view the selector needs: an explicit difficulty
// label when the record carries one, and the text used for inferred
// difficulty and topic grouping.
type ItemInfo struct {
	Difficulty string
	Text       string
}

// Selector performs bounded, randomized subset selection. Safe for
// concurrent use; the math/rand source is mutex-guarded.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector seeded from the current time.
func NewSelector() *Selector {
	return NewSelectorWithSeed(time.Now().UnixNano())
}

// NewSelectorWithSeed creates a deterministic selector, used in tests.
func NewSelectorWithSeed(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

const (
	difficultyBasic        = "basic"
	difficultyIntermediate = "intermediate"
	difficultyAdvanced     = "advanced"
)

// SelectDiverse selects at most maxItems items, balanced by difficulty when
// any item shows a difficulty signal and by inferred topic otherwise.
// Difficulty progression serves spaced repetition better than topical
// breadth, so it wins when available. No-op (a shuffled copy aside) when the
// input already fits. Output length is exactly min(len(items), maxItems)
// and post-selection order is randomized.
func SelectDiverse[T any](sel *Selector, items []T, maxItems int, info func(T) ItemInfo) []T {
	if maxItems <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) <= maxItems {
		out := make([]T, len(items))
		copy(out, items)
		shuffle(sel, out)
		return out
	}

	if hasDifficultySignal(items, info) {
		return selectByDifficulty(sel, items, maxItems, info)
	}
	return selectByTopic(sel, items, maxItems, info)
}

func hasDifficultySignal[T any](items []T, info func(T) ItemInfo) bool {
	for _, item := range items {
		meta := info(item)
		if meta.Difficulty != "" {
			return true
		}
		if containsDifficultyWord(meta.Text) {
			return true
		}
	}
	return false
}

func containsDifficultyWord(text string) bool {
	return strings.Contains(text, "Basic") ||
		strings.Contains(text, "Intermediate") ||
		strings.Contains(text, "Advanced")
}

// classifyDifficulty resolves an item to one of the three buckets.
// Unmarked items default to intermediate.
func classifyDifficulty(meta ItemInfo) string {
	switch strings.ToLower(strings.TrimSpace(meta.Difficulty)) {
	case difficultyBasic, "easy", "beginner":
		return difficultyBasic
	case difficultyAdvanced, "hard", "expert":
		return difficultyAdvanced
	case difficultyIntermediate, "medium":
		return difficultyIntermediate
	}
	if strings.Contains(meta.Text, "Basic") {
		return difficultyBasic
	}
	if strings.Contains(meta.Text, "Advanced") {
		return difficultyAdvanced
	}
	return difficultyIntermediate
}

// selectByDifficulty samples a fixed ratio per bucket: 40% basic, 40%
// intermediate, the remainder advanced. Unmet quotas are topped up from any
// unused items regardless of bucket.
func selectByDifficulty[T any](s *Selector, items []T, maxItems int, info func(T) ItemInfo) []T {
	buckets := map[string][]int{}
	for i, item := range items {
		bucket := classifyDifficulty(info(item))
		buckets[bucket] = append(buckets[bucket], i)
	}

	basicQuota := maxItems * 4 / 10
	intermediateQuota := maxItems * 4 / 10
	advancedQuota := maxItems - basicQuota - intermediateQuota

	picked := map[int]bool{}
	s.sampleInto(picked, buckets[difficultyBasic], basicQuota)
	s.sampleInto(picked, buckets[difficultyIntermediate], intermediateQuota)
	s.sampleInto(picked, buckets[difficultyAdvanced], advancedQuota)

	s.topUp(picked, len(items), maxItems)
	return collect(s, items, picked)
}

// selectByTopic groups items by inferred topic and samples evenly across
// topics, topping up from leftovers to reach exactly maxItems.
func selectByTopic[T any](s *Selector, items []T, maxItems int, info func(T) ItemInfo) []T {
	topics := map[string][]int{}
	for i, item := range items {
		topic := ExtractTopic(info(item).Text)
		topics[topic] = append(topics[topic], i)
	}

	perTopic := maxItems / len(topics)
	if perTopic < 1 {
		perTopic = 1
	}

	picked := map[int]bool{}
	for _, indices := range topics {
		if len(picked) >= maxItems {
			break
		}
		quota := perTopic
		if remaining := maxItems - len(picked); quota > remaining {
			quota = remaining
		}
		s.sampleInto(picked, indices, quota)
	}

	s.topUp(picked, len(items), maxItems)
	return collect(s, items, picked)
}

// sampleInto uniformly samples up to quota indices without replacement.
func (s *Selector) sampleInto(picked map[int]bool, indices []int, quota int) {
	if quota <= 0 || len(indices) == 0 {
		return
	}
	shuffled := make([]int, len(indices))
	copy(shuffled, indices)
	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	taken := 0
	for _, idx := range shuffled {
		if taken >= quota {
			break
		}
		if !picked[idx] {
			picked[idx] = true
			taken++
		}
	}
}

// topUp fills any remaining capacity from unused items.
func (s *Selector) topUp(picked map[int]bool, total, maxItems int) {
	if len(picked) >= maxItems {
		return
	}
	var unused []int
	for i := 0; i < total; i++ {
		if !picked[i] {
			unused = append(unused, i)
		}
	}
	s.sampleInto(picked, unused, maxItems-len(picked))
}

func collect[T any](s *Selector, items []T, picked map[int]bool) []T {
	out := make([]T, 0, len(picked))
	for i, item := range items {
		if picked[i] {
			out = append(out, item)
		}
	}
	shuffle(s, out)
	return out
}

func shuffle[T any](s *Selector, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
