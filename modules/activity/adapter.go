package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityPort is the interface other modules use to read the
// activity feed.
type ActivityPort interface {
	Recent(ctx context.Context, userID string, limit int) (RecentActivityResponse, error)
}

// activityAdapter implements ActivityPort using the service container.
type activityAdapter struct {
	container mono.ServiceContainer
}

// NewActivityAdapter creates a new adapter for the activity service.
func NewActivityAdapter(container mono.ServiceContainer) ActivityPort {
	return &activityAdapter{
		container: container,
	}
}

// Recent retrieves a user's newest activity entries.
func (a *activityAdapter) Recent(ctx context.Context, userID string, limit int) (RecentActivityResponse, error) {
	req := RecentActivityRequest{UserID: userID, Limit: limit}

	var resp RecentActivityResponse
	err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"recent-activity",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	)
	if err != nil {
		return RecentActivityResponse{}, fmt.Errorf("recent-activity service call failed: %w", err)
	}
	return resp, nil
}
