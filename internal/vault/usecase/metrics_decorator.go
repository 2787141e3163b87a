package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/familyvault/internal/metrics"
	"github.com/allisson/familyvault/internal/vault/domain"
)

// itemUseCaseWithMetrics decorates ItemUseCase with metrics instrumentation.
type itemUseCaseWithMetrics struct {
	next    ItemUseCase
	metrics metrics.BusinessMetrics
}

// NewItemUseCaseWithMetrics wraps an ItemUseCase with metrics recording.
func NewItemUseCaseWithMetrics(useCase ItemUseCase, m metrics.BusinessMetrics) ItemUseCase {
	return &itemUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (i *itemUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "vault", operation, status)
	i.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

// CreateItem records metrics for item creation operations.
func (i *itemUseCaseWithMetrics) CreateItem(
	ctx context.Context,
	userID uuid.UUID,
	input CreateItemInput,
) (*ItemDetails, error) {
	start := time.Now()
	details, err := i.next.CreateItem(ctx, userID, input)
	i.record(ctx, "item_create", start, err)
	return details, err
}

// GetItem records metrics for item retrieval operations.
func (i *itemUseCaseWithMetrics) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*ItemDetails, error) {
	start := time.Now()
	details, err := i.next.GetItem(ctx, userID, itemID)
	i.record(ctx, "item_get", start, err)
	return details, err
}

// ListItems records metrics for item listing operations.
func (i *itemUseCaseWithMetrics) ListItems(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.ItemFilter,
) ([]*domain.Item, error) {
	start := time.Now()
	items, err := i.next.ListItems(ctx, userID, filter)
	i.record(ctx, "item_list", start, err)
	return items, err
}

// ListSharedItems records metrics for shared item listing operations.
func (i *itemUseCaseWithMetrics) ListSharedItems(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*domain.Item, error) {
	start := time.Now()
	items, err := i.next.ListSharedItems(ctx, userID, offset, limit)
	i.record(ctx, "item_list_shared", start, err)
	return items, err
}

// UpdateItem records metrics for item update operations.
func (i *itemUseCaseWithMetrics) UpdateItem(
	ctx context.Context,
	userID, itemID uuid.UUID,
	input UpdateItemInput,
) (*ItemDetails, error) {
	start := time.Now()
	details, err := i.next.UpdateItem(ctx, userID, itemID, input)
	i.record(ctx, "item_update", start, err)
	return details, err
}

// ToggleFavorite records metrics for favorite toggle operations.
func (i *itemUseCaseWithMetrics) ToggleFavorite(ctx context.Context, userID, itemID uuid.UUID) (*domain.Item, error) {
	start := time.Now()
	item, err := i.next.ToggleFavorite(ctx, userID, itemID)
	i.record(ctx, "item_toggle_favorite", start, err)
	return item, err
}

// DeleteItem records metrics for item delete operations.
func (i *itemUseCaseWithMetrics) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	start := time.Now()
	err := i.next.DeleteItem(ctx, userID, itemID)
	i.record(ctx, "item_delete", start, err)
	return err
}
