// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// This package defines context keys and getter/setter functions for values that are
// typically set by middleware but consumed by services. By keeping this package free
// of net/http dependencies, services can import only what they need without pulling
// in HTTP-related code.
//
// Usage in services (read values):
//
//	requestID := requestcontext.RequestID(ctx)
//	repo := requestcontext.Content(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	ctx = requestcontext.WithContent(ctx, copy)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"github.com/Crown-Commercial-Service/digitalmarketplace-supplier-frontend-sub000/internal/content"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	supplierIDKey  struct{}
	contentKey     struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeySupplierID  = supplierIDKey{}
	ContextKeyContent     = contentKey{}
)

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Supplier identity
// -----------------------------------------------------------------------------

// SupplierID retrieves the authenticated supplier ID from the context.
// Returns zero if not set.
func SupplierID(ctx context.Context) int {
	if supplierID, ok := ctx.Value(ContextKeySupplierID).(int); ok {
		return supplierID
	}
	return 0
}

// WithSupplierID injects a supplier ID into the context.
func WithSupplierID(ctx context.Context, supplierID int) context.Context {
	return context.WithValue(ctx, ContextKeySupplierID, supplierID)
}

// -----------------------------------------------------------------------------
// Content repository
// -----------------------------------------------------------------------------

// Content retrieves the request-scoped content copy from the context.
// Returns nil if no middleware installed one (workers, CLI, some tests).
func Content(ctx context.Context) *content.RequestCopy {
	if rc, ok := ctx.Value(ContextKeyContent).(*content.RequestCopy); ok {
		return rc
	}
	return nil
}

// WithContent injects a request-scoped content copy into the context.
func WithContent(ctx context.Context, rc *content.RequestCopy) context.Context {
	return context.WithValue(ctx, ContextKeyContent, rc)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
