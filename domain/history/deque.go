package history

// DefaultCapacity bounds the action history and the per-round count buffer.
const DefaultCapacity = 1000

// Deque is a fixed-capacity double-ended ring buffer.
//
// Pushing onto a full deque evicts the element at the opposite end first, so
// the buffer behaves as a sliding window over the most recent insertions.
// The zero value is not usable; construct with NewDeque.
// Not safe for concurrent use: all callers run on the UI thread.
type Deque[T any] struct {
	buf  []T
	head int // index of the leftmost element
	n    int
}

// NewDeque returns an empty deque holding at most capacity elements.
// A non-positive capacity falls back to DefaultCapacity.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

// PushRight appends item at the right end, evicting the leftmost element when full.
func (d *Deque[T]) PushRight(item T) {
	if d.n == len(d.buf) {
		d.PopLeft()
	}
	d.buf[d.index(d.n)] = item
	d.n++
}

// PushLeft prepends item at the left end, evicting the rightmost element when full.
func (d *Deque[T]) PushLeft(item T) {
	if d.n == len(d.buf) {
		d.PopRight()
	}
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = item
	d.n++
}

// PopLeft removes and returns the leftmost element. ok is false when empty.
func (d *Deque[T]) PopLeft() (item T, ok bool) {
	if d.n == 0 {
		return item, false
	}
	var zero T
	item = d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.n--
	return item, true
}

// PopRight removes and returns the rightmost element. ok is false when empty.
func (d *Deque[T]) PopRight() (item T, ok bool) {
	if d.n == 0 {
		return item, false
	}
	var zero T
	i := d.index(d.n - 1)
	item = d.buf[i]
	d.buf[i] = zero
	d.n--
	return item, true
}

// PeekLeft returns the leftmost element without removing it.
func (d *Deque[T]) PeekLeft() (item T, ok bool) {
	if d.n == 0 {
		return item, false
	}
	return d.buf[d.head], true
}

// PeekRight returns the rightmost element without removing it.
func (d *Deque[T]) PeekRight() (item T, ok bool) {
	if d.n == 0 {
		return item, false
	}
	return d.buf[d.index(d.n-1)], true
}

// Len reports the number of stored elements.
func (d *Deque[T]) Len() int { return d.n }

// Cap reports the fixed capacity.
func (d *Deque[T]) Cap() int { return len(d.buf) }

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool { return d.n == 0 }

// Items returns a copy of the contents ordered left to right.
func (d *Deque[T]) Items() []T {
	out := make([]T, d.n)
	for i := 0; i < d.n; i++ {
		out[i] = d.buf[d.index(i)]
	}
	return out
}

// Clear drops all elements, keeping the capacity.
func (d *Deque[T]) Clear() {
	clear(d.buf)
	d.head, d.n = 0, 0
}

func (d *Deque[T]) index(offset int) int {
	return (d.head + offset) % len(d.buf)
}
