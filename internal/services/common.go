package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/ctxutil"
)

const dateLayout = "2006-01-02"

// churchFromContext returns the caller's tenant or a 401.
func churchFromContext(ctx context.Context) (uuid.UUID, error) {
	churchID := ctxutil.ChurchID(ctx)
	if churchID == uuid.Nil {
		return uuid.Nil, apierr.Unauthorized("not authenticated")
	}
	return churchID, nil
}

func userFromContext(ctx context.Context) *uuid.UUID {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil
	}
	id := rd.UserID
	return &id
}

// notFound maps domain.ErrNotFound to a 404 with code, and wraps anything
// else with op.
func notFound(err error, code, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apierr.NotFound(code)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apierr.BadRequest("invalid_"+field, field+" must be a YYYY-MM-DD date")
	}
	return t.UTC(), nil
}

// ParseOptionalDate is ParseDate for optional query parameters.
func ParseOptionalDate(field, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// setIfPresent copies *v into updates[column] when v is non-nil.
func setIfPresent[T any](updates map[string]any, column string, v *T) {
	if v != nil {
		updates[column] = *v
	}
}
