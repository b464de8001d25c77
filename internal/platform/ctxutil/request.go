package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData is the authenticated caller. ChurchID is the tenant every
// repository query is scoped to.
type RequestData struct {
	UserID   uuid.UUID
	ChurchID uuid.UUID
	Role     string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// ChurchID returns the caller's tenant, or uuid.Nil when unauthenticated.
func ChurchID(ctx context.Context) uuid.UUID {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.ChurchID
	}
	return uuid.Nil
}
