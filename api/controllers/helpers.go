package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/api/middleware"
	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// requireUserID extracts the authenticated user id seeded by the auth middleware.
func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// actorFromContext builds the acting identity for lifecycle operations. A zero
// actor comes back on unauthenticated paths such as the portal confirm link.
func actorFromContext(r *http.Request) orders.Actor {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return orders.Actor{}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return orders.Actor{}
	}
	return orders.Actor{
		UserID: id,
		Role:   enums.Role(middleware.RoleFromContext(r.Context())),
	}
}
