package host

import (
	"sort"
	"time"
)

// pressedBit marks a queued key value as a press.
const pressedBit = 1 << 8

// keyQueue turns press-only input (terminals report no key-up) into
// press/release pairs. A press is queued once; repeats while the key is held
// only extend its deadline, and a release is queued when the deadline passes.
type keyQueue struct {
	pending []int64
	held    map[byte]time.Time
	release time.Duration
}

func newKeyQueue(release time.Duration) *keyQueue {
	if release <= 0 {
		release = 150 * time.Millisecond
	}
	return &keyQueue{
		held:    make(map[byte]time.Time),
		release: release,
	}
}

// Press records a key press at now. It reports whether a new press event
// was queued.
func (q *keyQueue) Press(key byte, now time.Time) bool {
	_, already := q.held[key]
	q.held[key] = now.Add(q.release)
	if already {
		return false
	}
	q.pending = append(q.pending, int64(key)|pressedBit)
	return true
}

// Expire queues releases for every held key whose deadline has passed.
func (q *keyQueue) Expire(now time.Time) {
	q.releaseWhere(func(deadline time.Time) bool { return !now.Before(deadline) })
}

// ReleaseAll queues releases for every held key.
func (q *keyQueue) ReleaseAll() {
	q.releaseWhere(func(time.Time) bool { return true })
}

func (q *keyQueue) releaseWhere(due func(deadline time.Time) bool) {
	var expired []byte
	for key, deadline := range q.held {
		if due(deadline) {
			expired = append(expired, key)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	for _, key := range expired {
		delete(q.held, key)
		q.pending = append(q.pending, int64(key))
	}
}

// Pop returns the oldest queued event, or 0 when none is pending.
func (q *keyQueue) Pop() int64 {
	if len(q.pending) == 0 {
		return 0
	}
	v := q.pending[0]
	q.pending = q.pending[1:]
	return v
}

// Len returns the number of queued events.
func (q *keyQueue) Len() int {
	return len(q.pending)
}

// Held returns the number of keys currently down.
func (q *keyQueue) Held() int {
	return len(q.held)
}
