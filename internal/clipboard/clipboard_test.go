package clipboard

import (
	"testing"
	"time"
)

func TestHold(t *testing.T) {
	tests := map[string]struct {
		changed func() <-chan struct{}
		d       time.Duration
		want    bool
	}{
		"nil channel": {func() <-chan struct{} { return nil }, time.Second, false},
		"zero wait":   {func() <-chan struct{} { return make(chan struct{}) }, 0, false},
		"taken over": {func() <-chan struct{} {
			ch := make(chan struct{})
			close(ch)
			return ch
		}, time.Minute, true},
		"timeout": {func() <-chan struct{} { return make(chan struct{}) }, 10 * time.Millisecond, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Hold(tc.changed(), tc.d); got != tc.want {
				t.Fatalf("Hold = %v, want %v", got, tc.want)
			}
		})
	}
}
