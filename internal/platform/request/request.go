// Copyright (c) 2026 Vendora Commerce. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/constants"
	"github.com/vendora/vendora/internal/platform/ctxutil"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated user claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// TenantID returns the tenant scope resolved for this request.
//
// Handlers of tenant-scoped resources call this exactly once and pass the
// result down; repositories never look at the request themselves.
func TenantID(request *http.Request) (int64, error) {
	tenantID, ok := ctxutil.GetTenantID(request.Context())
	if !ok {
		return 0, apperr.Forbidden("No tenant scope for this request")
	}
	return tenantID, nil
}

// Language returns the language code requested for translated reads,
// falling back to the platform default.
func Language(request *http.Request) string {
	return ctxutil.GetLocale(request.Context(), constants.DefaultLanguage)
}
