package tempname

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generator produces collision-resistant names for transient files and
// directories: a timestamp for readability plus a random token for
// uniqueness. The clock and token source are injectable so tests can pin
// the generated names.
type Generator struct {
	prefix string
	now    func() time.Time
	token  func() string
}

// Option configures a Generator
type Option func(*Generator)

// WithClock replaces the timestamp source
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithTokenSource replaces the uniqueness token source
func WithTokenSource(token func() string) Option {
	return func(g *Generator) {
		if token != nil {
			g.token = token
		}
	}
}

// New creates a Generator. Names start with the given prefix.
func New(prefix string, opts ...Option) *Generator {
	g := &Generator{
		prefix: prefix,
		now:    time.Now,
		token:  func() string { return uuid.NewString()[:8] },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns "<prefix>-<timestamp>-<token><suffix>"
func (g *Generator) Next(suffix string) string {
	return fmt.Sprintf("%s-%s-%s%s",
		g.prefix,
		g.now().UTC().Format("20060102150405"),
		g.token(),
		suffix,
	)
}
