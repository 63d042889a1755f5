package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jzx17/gofx/pkg/retry"
)

func paymentsPolicy() retry.Policy {
	return retry.Exponential(100 * time.Millisecond).
		WithMaxRetries(3).
		WithMaxDelay(2 * time.Second).
		WithJitter(0.2)
}

func TestLoad_YAML(t *testing.T) {
	profiles, err := Load("testdata/profiles.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"notifications", "payments", "search"}, profiles.Names())

	payments, err := profiles.Get("payments")
	require.NoError(t, err)
	assert.True(t, payments.HasRetry)
	assert.Equal(t, paymentsPolicy(), payments.Retry)
	assert.Equal(t, 5*time.Second, payments.Timeout)

	search := profiles["search"]
	assert.False(t, search.HasRetry)
	assert.Equal(t, 300*time.Millisecond, search.Timeout)

	notifications := profiles["notifications"]
	assert.Equal(t, retry.Fibonacci(time.Second), notifications.Retry)
	assert.Zero(t, notifications.Timeout)
}

func TestLoad_JSON(t *testing.T) {
	profiles, err := Load("testdata/profiles.json")
	require.NoError(t, err)

	payments, err := profiles.Get("payments")
	require.NoError(t, err)
	assert.Equal(t, paymentsPolicy(), payments.Retry)
	assert.Equal(t, "payments", payments.Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load("testdata/profiles.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load("testdata/missing.yaml")
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestFromBytes(t *testing.T) {
	data := []byte(`
resilience:
  lookups:
    retry:
      shape: constant
      base_delay: 50ms
      max_retries: 0
`)
	profiles, err := FromBytes(data, FormatYAML, WithRoot("resilience"))
	require.NoError(t, err)

	lookups, err := profiles.Get("lookups")
	require.NoError(t, err)
	assert.Equal(t, retry.Constant(50*time.Millisecond).WithMaxRetries(0), lookups.Retry)
}

func TestFromBytes_DottedProfileNames(t *testing.T) {
	data := []byte(`
profiles:
  orders.v2:
    timeout: 2s
`)
	// the default delimiter splits the name into a nested key
	profiles, err := FromBytes(data, FormatYAML)
	if err == nil {
		_, err = profiles.Get("orders.v2")
	}
	assert.Error(t, err)

	profiles, err = FromBytes(data, FormatYAML, WithDelim("/"))
	require.NoError(t, err)

	orders, err := profiles.Get("orders.v2")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, orders.Timeout)
	assert.False(t, orders.HasRetry)
}

func TestFromBytes_Empty(t *testing.T) {
	profiles, err := FromBytes(nil, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, err = FromBytes(nil, Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"malformed yaml", "profiles: [", ErrParseFailed},
		{"bad shape", "profiles:\n  a:\n    retry:\n      shape: spiral\n      base_delay: 1s\n", retry.ErrInvalidPolicy},
		{"bad jitter", "profiles:\n  a:\n    retry:\n      shape: linear\n      base_delay: 1s\n      jitter: 2\n", ErrInvalidProfile},
		{"bad timeout", "profiles:\n  a:\n    timeout: later\n", ErrInvalidProfile},
		{"zero timeout", "profiles:\n  a:\n    timeout: 0s\n", ErrInvalidProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte(tt.data), FormatYAML)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProfiles_GetMissing(t *testing.T) {
	_, err := Profiles{}.Get("nope")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
