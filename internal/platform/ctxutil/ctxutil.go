// Copyright (c) 2026 Vendora Commerce. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/vendora/vendora/internal/platform/ctxkey"
	"github.com/vendora/vendora/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims] from the [context.Context].
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// # Tenancy

// WithTenantID returns a new context with the resolved tenant ID attached.
func WithTenantID(ctx context.Context, tenantID int64) context.Context {
	return context.WithValue(ctx, ctxkey.KeyTenant, tenantID)
}

// GetTenantID retrieves the resolved tenant ID from the context.
// The second return value reports whether a tenant was resolved at all.
func GetTenantID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxkey.KeyTenant).(int64)
	return id, ok
}

// # Localization

// WithLocale returns a new context with the requested language code attached.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLocale, lang)
}

// GetLocale retrieves the requested language code, or fallback when unset.
func GetLocale(ctx context.Context, fallback string) string {
	lang, ok := ctx.Value(ctxkey.KeyLocale).(string)
	if !ok || lang == "" {
		return fallback
	}
	return lang
}
