package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type keyType string

const ownerIDKey keyType = "ownerID"

// ctxWithOwnerID stores the authenticated owner's ID in the context. The
// auth middleware is the only writer.
func ctxWithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

// ctxOwnerID retrieves the authenticated owner. Handlers thread this value
// explicitly into every service and repository call.
func ctxOwnerID(ctx context.Context) (uuid.UUID, error) {
	value := ctx.Value(ownerIDKey)
	if value == nil {
		return uuid.Nil, errors.New("owner not found in context")
	}
	ownerID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("owner context value is not a uuid")
	}
	return ownerID, nil
}
