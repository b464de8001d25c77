package bus

import (
	"context"

	"github.com/yungbote/shepherd-backend/internal/realtime"
)

// Bus carries events between instances so each instance's local registry
// sees events produced anywhere.
type Bus interface {
	Publish(ctx context.Context, ev realtime.Event) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.Event)) error
	Close() error
}
