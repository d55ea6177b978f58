// Package timeutil formats photo and session timestamps for display.
package timeutil

import (
	"fmt"
	"time"
)

type unit struct {
	label string
	value time.Duration
}

var units = []unit{
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

// Age renders how long ago t was, relative to now, using the largest
// fitting unit ("2h", "3d", "1w"). Anything under a second is "now".
func Age(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Second {
		return "now"
	}
	for _, u := range units {
		if d >= u.value {
			return fmt.Sprintf("%d%s", d/u.value, u.label)
		}
	}
	return "now"
}
