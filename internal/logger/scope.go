package logger

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// RequestInfo identifies the request a log entry belongs to
type RequestInfo struct {
	RequestID string
	Method    string
	Route     string
}

// WithRequestScope returns a context carrying a sentry hub tagged with the request.
// Errors logged through the *Ctx helpers with this context are grouped per route in sentry.
func WithRequestScope(ctx context.Context, info RequestInfo) context.Context {
	if sentryClient == nil {
		return ctx
	}

	hub := sentry.NewHub(sentryClient, sentry.NewScope())
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("request_id", info.RequestID)
		scope.SetTag("method", info.Method)
		scope.SetTag("route", info.Route)
	})

	return sentry.SetHubOnContext(ctx, hub)
}
