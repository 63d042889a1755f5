package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jzx17/gofx/pkg/types"
)

func TestDefaultRetryCondition(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errFlaky, true},
		{"transient", types.Transient(errFlaky), true},
		{"permanent", types.Permanent(errFlaky), false},
		{"wrapped permanent", fmt.Errorf("call: %w", types.Permanent(errFlaky)), false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("rpc: %w", context.DeadlineExceeded), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultRetryCondition(tt.err); got != tt.want {
				t.Errorf("DefaultRetryCondition(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryableOnly(t *testing.T) {
	if !RetryableOnly(types.Transient(errFlaky)) {
		t.Errorf("expected transient error to be retried")
	}
	if RetryableOnly(errFlaky) {
		t.Errorf("expected unmarked error not to be retried")
	}
}

func TestIsAndNot(t *testing.T) {
	other := errors.New("other")
	p := Is(errFlaky, errPermanent)

	if !p(fmt.Errorf("x: %w", errPermanent)) {
		t.Errorf("expected match through wrapping")
	}
	if p(other) {
		t.Errorf("unexpected match")
	}
	if Not(p)(errFlaky) || !Not(p)(other) {
		t.Errorf("Not did not invert")
	}
}
