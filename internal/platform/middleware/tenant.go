// Copyright (c) 2026 Vendora Commerce. All rights reserved.

package middleware

import (
	"net/http"

	"github.com/vendora/vendora/internal/platform/apperr"
	"github.com/vendora/vendora/internal/platform/constants"
	"github.com/vendora/vendora/internal/platform/ctxutil"
	"github.com/vendora/vendora/internal/platform/respond"
	"github.com/vendora/vendora/internal/platform/sec"
	"github.com/vendora/vendora/pkg/convert"
)

// ResolveTenant determines the tenant scope for the request and stores it in
// the context, together with the requested language code.
//
// # Resolution order
//
//  1. The 'tid' claim of an authenticated admin session. Regular admins can
//     never escape their own tenant this way.
//  2. The X-Tenant-ID header, honored only for platform owners, so internal
//     tooling can operate across tenants.
//
// Handlers for tenant-scoped resources read the tenant via
// [ctxutil.GetTenantID] and pass it explicitly into the repository call;
// no query for a tenant-scoped table runs without it.
func ResolveTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			if claims := ctxutil.GetAuthUser(ctx); claims != nil {
				tenantID := claims.TenantID

				// Platform owners may redirect the scope via header.
				if header := request.Header.Get(constants.HeaderTenantID); header != "" &&
					sec.UserRole(claims.Role).AtLeast(sec.RoleOwner) {
					override := convert.ToInt64(header)
					if override <= 0 {
						respond.Error(writer, request, apperr.ValidationError("Invalid X-Tenant-ID header"))
						return
					}
					tenantID = override
				}

				if tenantID > 0 {
					ctx = ctxutil.WithTenantID(ctx, tenantID)
				}
			}

			// Language preference travels with the request too.
			lang := request.URL.Query().Get(constants.QueryParamLanguage)
			if lang == "" {
				lang = constants.DefaultLanguage
			}
			ctx = ctxutil.WithLocale(ctx, lang)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireTenant blocks requests that did not resolve a tenant scope.
//
// Mounted on all tenant-scoped resource routes, after [Authenticate] and
// [ResolveTenant].
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := ctxutil.GetTenantID(request.Context()); !ok {
			respond.Error(writer, request, apperr.Forbidden("No tenant scope for this request"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
