package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ashokt15/taskmate/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

const maxRecentLimit = 100

// ActivityModule consumes task lifecycle events and serves each
// user's recent activity feed.
type ActivityModule struct {
	store *Store
}

// Compile-time interface checks.
var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

// NewModule creates a new ActivityModule.
func NewModule() *ActivityModule {
	return &ActivityModule{
		store: NewStore(),
	}
}

// Name returns the module name.
func (m *ActivityModule) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to task lifecycle events.
func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TaskCreated, TaskCompleted, TaskDeleted")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.store.Record(event.UserID, Entry{
		TaskID:     event.TaskID,
		Title:      event.Title,
		Action:     ActionCreated,
		OccurredAt: event.CreatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.store.Record(event.UserID, Entry{
		TaskID:     event.TaskID,
		Title:      event.Title,
		Action:     ActionCompleted,
		OccurredAt: event.CompletedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.store.Record(event.UserID, Entry{
		TaskID:     event.TaskID,
		Title:      event.Title,
		Action:     ActionDeleted,
		OccurredAt: event.DeletedAt,
	})
	return nil
}

// recentActivity handles the recent-activity service request.
func (m *ActivityModule) recentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	entries := m.store.Recent(req.UserID, limit)
	return RecentActivityResponse{
		Entries: entries,
		Total:   m.store.Count(req.UserID),
	}, nil
}

// RegisterServices registers request-reply services in the service container.
func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}

	log.Printf("[activity] Registered services: recent-activity")
	return nil
}

// Start initializes the module.
func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for task events")
	return nil
}

// Stop shuts down the module.
func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
