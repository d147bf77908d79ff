// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lru is a small fixed-capacity least-recently-used cache for
// per-resolution render state (shape builders, font faces) whose keys
// come from caller input.
package lru

import "container/list"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache holds at most a fixed number of entries and evicts the least
// recently used one on overflow. It is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	size    int
	order   *list.List
	items   map[K]*list.Element
	onEvict func(K, V)
}

// New returns a cache holding at most size entries. size below 1 is
// treated as 1. onEvict, if non-nil, is called for every evicted entry.
func New[K comparable, V any](size int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		size:    max(size, 1),
		order:   list.New(),
		items:   make(map[K]*list.Element),
		onEvict: onEvict,
	}
}

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Add stores value under key, evicting the oldest entry when full.
func (c *Cache[K, V]) Add(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.size {
		c.evict(c.order.Back())
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int { return c.order.Len() }

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	for c.order.Len() > 0 {
		c.evict(c.order.Back())
	}
}

func (c *Cache[K, V]) evict(el *list.Element) {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
