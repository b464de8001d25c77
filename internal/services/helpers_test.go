package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/repos/testutil"
	"github.com/yungbote/shepherd-backend/internal/domain"
	"github.com/yungbote/shepherd-backend/internal/platform/apierr"
	"github.com/yungbote/shepherd-backend/internal/platform/ctxutil"
	"github.com/yungbote/shepherd-backend/internal/realtime"
)

func tenantCtx(churchID uuid.UUID, role string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:   uuid.New(),
		ChurchID: churchID,
		Role:     role,
	})
}

func seedTenant(t *testing.T, db *gorm.DB, name string) (*domain.Church, context.Context) {
	t.Helper()
	church := testutil.SeedChurch(t, context.Background(), db, name)
	return church, tenantCtx(church.ID, domain.RoleAdmin)
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s (%v)", status, code, ae.Status, ae.Code, ae)
	}
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (e *recordingEmitter) Emit(_ context.Context, ev realtime.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *recordingEmitter) Events() []realtime.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]realtime.Event(nil), e.events...)
}
