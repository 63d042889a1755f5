package retry

import (
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
)

// PolicyConfig is the serializable form of a Policy. Durations are strings
// accepted by time.ParseDuration; optional fields are left out when unset.
type PolicyConfig struct {
	Shape      string   `json:"shape" koanf:"shape"`
	BaseDelay  string   `json:"base_delay" koanf:"base_delay"`
	MaxRetries *uint32  `json:"max_retries,omitempty" koanf:"max_retries"`
	MaxDelay   string   `json:"max_delay,omitempty" koanf:"max_delay"`
	Jitter     *float64 `json:"jitter,omitempty" koanf:"jitter"`
}

// Build validates the configuration and returns the policy it describes.
func (c PolicyConfig) Build() (Policy, error) {
	shape, err := ParseShape(c.Shape)
	if err != nil {
		return Policy{}, err
	}

	base, err := parseDelay("base_delay", c.BaseDelay)
	if err != nil {
		return Policy{}, err
	}
	p := newPolicy(shape, base)

	if c.MaxRetries != nil {
		p = p.WithMaxRetries(*c.MaxRetries)
	}
	if c.MaxDelay != "" {
		d, err := parseDelay("max_delay", c.MaxDelay)
		if err != nil {
			return Policy{}, err
		}
		p = p.WithMaxDelay(d)
	}
	if c.Jitter != nil {
		j := *c.Jitter
		if math.IsNaN(j) || j < 0 || j > 1 {
			return Policy{}, fmt.Errorf("%w: jitter %v outside [0, 1]", ErrInvalidPolicy, j)
		}
		p = p.WithJitter(j)
	}
	return p, nil
}

func parseDelay(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidPolicy, field)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidPolicy, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidPolicy, field)
	}
	return d, nil
}

// Config returns the serializable form of p.
func (p Policy) Config() PolicyConfig {
	c := PolicyConfig{
		Shape:     p.shape.String(),
		BaseDelay: p.baseDelay.String(),
	}
	if p.hasMaxRetries {
		n := p.maxRetries
		c.MaxRetries = &n
	}
	if p.hasMaxDelay {
		c.MaxDelay = p.maxDelay.String()
	}
	if p.hasJitter {
		j := p.jitter
		c.Jitter = &j
	}
	return c
}

// MarshalJSON implements json.Marshaler
func (p Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Config())
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Policy) UnmarshalJSON(data []byte) error {
	built, err := ParsePolicy(data)
	if err != nil {
		return err
	}
	*p = built
	return nil
}

// ParsePolicy decodes and validates a JSON policy description.
func ParsePolicy(data []byte) (Policy, error) {
	var c PolicyConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return c.Build()
}
