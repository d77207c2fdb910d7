// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress provides the live counters and the terminal spinner
// used while network operations are in flight.
package progress

import (
	"fmt"
	"strings"
	"sync"
)

// Counter tracks how much of an operation has completed. A counter is
// owned by exactly one in-flight operation, which increments it; the
// spinner only reads it.
type Counter struct {
	mu        sync.Mutex
	completed float64
	total     float64
	unit      string
	format    string
}

// NewCounter creates a counter for total units of work. format is the
// fmt verb used to render values (e.g. "%.2f" for megabytes); an empty
// format renders integers.
func NewCounter(total float64, unit, format string) *Counter {
	if format == "" {
		format = "%.0f"
	}
	return &Counter{total: total, unit: unit, format: format}
}

// Add increments the completed amount.
func (c *Counter) Add(n float64) {
	c.mu.Lock()
	c.completed += n
	c.mu.Unlock()
}

// SetTotal replaces the total. Used when a download learns its size from
// the Content-Length header after the counter was created.
func (c *Counter) SetTotal(total float64) {
	c.mu.Lock()
	c.total = total
	c.mu.Unlock()
}

// Snapshot returns the current completed and total values.
func (c *Counter) Snapshot() (completed, total float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed, c.total
}

// String renders "completed/total unit". With an unknown (zero) total only
// the completed amount is shown.
func (c *Counter) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, c.format, c.completed)
	if c.total > 0 {
		b.WriteByte('/')
		fmt.Fprintf(&b, c.format, c.total)
	}
	if c.unit != "" {
		b.WriteByte(' ')
		b.WriteString(c.unit)
	}
	return b.String()
}
