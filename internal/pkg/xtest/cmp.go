package xtest

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

func nilString(x *string) string {
	if x == nil {
		return ""
	}

	return *x
}

func nilInt64(x *int64) int64 {
	if x == nil {
		return 0
	}

	return *x
}

// timeComparer compares instants, ignoring the location a driver attached on read.
func timeComparer(x, y time.Time) bool {
	return x.Equal(y)
}

func options(opts []cmp.Option) []cmp.Option {
	return append(opts,
		cmp.Transformer("", nilString),
		cmp.Transformer("", nilInt64),
		cmp.Comparer(timeComparer),
	)
}

// Equal provides semantic equality comparison: nil and zero pointers are
// equal and times compare as instants.
func Equal(a, b any, opts ...cmp.Option) bool {
	return cmp.Equal(a, b, options(opts)...)
}

// Diff reports the difference under the same rules as Equal.
func Diff(a, b any, opts ...cmp.Option) string {
	return cmp.Diff(a, b, options(opts)...)
}
