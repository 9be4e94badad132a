// Package session carries the authenticated caller through request contexts.
package session

import (
	"context"

	"github.com/leondli/gallery/internal/domain/entity"
)

type contextKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *entity.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or nil
func FromContext(ctx context.Context) *entity.Session {
	s, _ := ctx.Value(contextKey{}).(*entity.Session)
	return s
}

// Provider resolves the current session from a request context
type Provider struct{}

// NewProvider creates a session provider
func NewProvider() *Provider {
	return &Provider{}
}

// Current returns the caller's session, or nil when unauthenticated
func (p *Provider) Current(ctx context.Context) *entity.Session {
	return FromContext(ctx)
}
