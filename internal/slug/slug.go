// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings
// and the car slug format used by the catalog.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Car builds a car slug from its brand, model, sub model and year, suffixed
// with the creation time in unix milliseconds so repeated listings of the
// same model stay unique.
// Example: ("Honda", "Civic", "Type R", 2025, t) → "honda-civic-type-r-2025/1728860600000"
func Car(brand, model, subModel string, modelYear int, created time.Time) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{brand, model, subModel} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if modelYear != 0 {
		parts = append(parts, strconv.Itoa(modelYear))
	}
	return Generate(strings.Join(parts, " ")) + "/" + strconv.FormatInt(created.UnixMilli(), 10)
}
