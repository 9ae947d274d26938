// Package options provides shared helpers for functional option validation.
package options

import "fmt"

// ExactlyOne returns an error unless exactly one of sources is set.
// what names the thing being chosen and is used in the error message.
func ExactlyOne(what string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("must specify an %s", what)
	case n > 1:
		return fmt.Errorf("must specify exactly one %s, got %d", what, n)
	}
	return nil
}
