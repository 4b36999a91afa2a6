package cache

import (
	"sync"
	"time"

	"github.com/epeers/investdash/internal/models"
)

// SlotCache holds the display state of each asynchronous result slot.
// Every request for a slot gets a token from a single increasing counter;
// a result is only applied if its token is still the latest for that slot,
// so a slow superseded request can never overwrite a newer one.
type SlotCache struct {
	mu    sync.RWMutex
	slots map[models.Slot]slotEntry
	next  uint64
	now   func() time.Time
}

type slotEntry struct {
	token     uint64
	loading   bool
	result    *models.SlotResult
	updatedAt time.Time
}

// NewSlotCache creates a new SlotCache
func NewSlotCache(now func() time.Time) *SlotCache {
	if now == nil {
		now = time.Now
	}
	return &SlotCache{
		slots: make(map[models.Slot]slotEntry),
		now:   now,
	}
}

// Begin issues a new token for slot and marks it loading. Any earlier
// in-flight request for the slot becomes stale.
func (c *SlotCache) Begin(slot models.Slot, title string) models.SlotState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	entry := slotEntry{
		token:     c.next,
		loading:   true,
		updatedAt: c.now(),
	}
	if title != "" {
		entry.result = &models.SlotResult{Title: title}
	}
	c.slots[slot] = entry
	return toState(slot, entry)
}

// Complete applies result if token is still the latest for slot.
// It reports whether the result was applied.
func (c *SlotCache) Complete(slot models.Slot, token uint64, result models.SlotResult) (models.SlotState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.slots[slot]
	if !exists || entry.token != token {
		return toState(slot, entry), false
	}
	if result.Title == "" && entry.result != nil {
		result.Title = entry.result.Title
	}
	entry.loading = false
	entry.result = &result
	entry.updatedAt = c.now()
	c.slots[slot] = entry
	return toState(slot, entry), true
}

// Set replaces the slot content immediately, superseding any in-flight request.
func (c *SlotCache) Set(slot models.Slot, result models.SlotResult) models.SlotState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	entry := slotEntry{
		token:     c.next,
		result:    &result,
		updatedAt: c.now(),
	}
	c.slots[slot] = entry
	return toState(slot, entry)
}

// Get retrieves the current state of a slot
func (c *SlotCache) Get(slot models.Slot) models.SlotState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return toState(slot, c.slots[slot])
}

// Clear empties a slot and invalidates its in-flight request
func (c *SlotCache) Clear(slot models.Slot) models.SlotState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	entry := slotEntry{token: c.next, updatedAt: c.now()}
	c.slots[slot] = entry
	return toState(slot, entry)
}

func toState(slot models.Slot, e slotEntry) models.SlotState {
	var result *models.SlotResult
	if e.result != nil {
		r := *e.result
		result = &r
	}
	return models.SlotState{
		Slot:      slot,
		Token:     e.token,
		Loading:   e.loading,
		Result:    result,
		UpdatedAt: e.updatedAt,
	}
}
