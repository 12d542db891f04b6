// Package pqueue is a bounded priority queue ordered by a float64 priority.
// Items of equal priority keep their insertion order.
package pqueue

import "sort"

func WithOrderAsc() Option {
	return func(o *options) {
		o.order = orderAsc
	}
}

func WithOrderDesc() Option {
	return func(o *options) {
		o.order = orderDesc
	}
}

// WithCap keeps only the first size items.
func WithCap(size uint) Option {
	return func(o *options) {
		o.cap = int(size)
	}
}

type Option func(*options)

type order uint8

const (
	orderAsc order = iota
	orderDesc
)

type options struct {
	order order
	cap   int
}

type item[T any] struct {
	value T
	prior float64
}

func New[T any](opts ...Option) *Queue[T] {
	o := options{order: orderAsc, cap: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[T]{opts: o}
}

type Queue[T any] struct {
	opts  options
	items []item[T]
}

// Push inserts val after every item of the same priority.
func (q *Queue[T]) Push(val T, priority float64) {
	idx := sort.Search(len(q.items), func(i int) bool {
		return q.after(q.items[i].prior, priority)
	})
	if q.opts.cap >= 0 && idx >= q.opts.cap {
		return
	}
	q.items = append(q.items, item[T]{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item[T]{value: val, prior: priority}
	if q.opts.cap >= 0 && len(q.items) > q.opts.cap {
		q.items = q.items[:q.opts.cap]
	}
}

func (q *Queue[T]) PopAll() []T {
	pulled := make([]T, len(q.items))
	for i := range q.items {
		pulled[i] = q.items[i].value
	}
	q.items = q.items[:0]
	return pulled
}

func (q *Queue[T]) Head() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	x := q.items[0]
	q.items = q.items[1:]
	return x.value, true
}

func (q *Queue[T]) Tail() (T, bool) {
	var zero T
	l := len(q.items) - 1
	if l < 0 {
		return zero, false
	}
	x := q.items[l]
	q.items = q.items[:l]
	return x.value, true
}

func (q *Queue[T]) Seek(idx int) (T, float64) {
	item := q.items[idx]
	return item.value, item.prior
}

func (q *Queue[T]) Cap() int { return q.opts.cap }

func (q *Queue[T]) Len() int { return len(q.items) }

// after reports whether an item with priority a sorts strictly after b.
func (q *Queue[T]) after(a, b float64) bool {
	if q.opts.order == orderAsc {
		return a > b
	}
	return a < b
}
