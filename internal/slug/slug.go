// Package slug derives public, URL-safe identifiers for products and sellers.
package slug

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

const (
	suffixMin = 100000
	suffixMax = 999999

	defaultMaxAttempts = 5
)

var separatorRun = regexp.MustCompile(`[^a-z0-9]+`)

// ErrSlugExhausted is returned when every attempt collided with an existing slug.
var ErrSlugExhausted = errors.New("slug: no free slug after retries")

// CollisionChecker reports whether a slug is already taken.
type CollisionChecker interface {
	Exists(ctx context.Context, slug string) (bool, error)
}

// CollisionCheckerFunc adapts a function to CollisionChecker.
type CollisionCheckerFunc func(ctx context.Context, slug string) (bool, error)

// Exists calls f.
func (f CollisionCheckerFunc) Exists(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}

// Generator assigns slugs. With a nil Checker a small collision rate is
// accepted and no storage round-trip happens.
type Generator struct {
	Checker     CollisionChecker
	MaxAttempts int
	intn        func(n int) int
}

// NewGenerator builds a generator using the given checker, which may be nil.
func NewGenerator(checker CollisionChecker) *Generator {
	return &Generator{Checker: checker, MaxAttempts: defaultMaxAttempts, intn: rand.IntN}
}

// Base returns the deterministic part of the slug for name.
func Base(name string) string {
	base := separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(base, "-")
}

// Assign returns base(name) followed by a random six digit suffix.
func (g *Generator) Assign(ctx context.Context, name string) (string, error) {
	base := Base(name)
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		candidate := g.compose(base)
		if g.Checker == nil {
			return candidate, nil
		}
		taken, err := g.Checker.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSlugExhausted
}

func (g *Generator) compose(base string) string {
	intn := g.intn
	if intn == nil {
		intn = rand.IntN
	}
	suffix := strconv.Itoa(suffixMin + intn(suffixMax-suffixMin+1))
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
