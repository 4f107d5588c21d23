// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// counter.go provides a Valkey-backed fixed-window request counter. All
// API instances share the counters, so a client's budget holds across
// replicas.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterKeyPrefix is the Valkey key prefix for rate-limit windows.
const counterKeyPrefix = "ratelimit:"

// WindowCounter allows up to limit hits per key in each fixed window.
type WindowCounter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewWindowCounter creates a counter backed by the given Valkey client.
func NewWindowCounter(client *redis.Client, limit int, window time.Duration) *WindowCounter {
	return &WindowCounter{client: client, limit: limit, window: window, now: time.Now}
}

// windowKey names the counter for key in the window containing t.
func (c *WindowCounter) windowKey(key string, t time.Time) string {
	start := t.Truncate(c.window).Unix()
	return counterKeyPrefix + key + ":" + strconv.FormatInt(start, 10)
}

// Allow records a hit for key and reports whether it is within the limit.
// The window key expires on its own once the window has passed.
func (c *WindowCounter) Allow(ctx context.Context, key string) (bool, error) {
	k := c.windowKey(key, c.now())

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, c.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate counter %s: %w", key, err)
	}
	return incr.Val() <= int64(c.limit), nil
}
