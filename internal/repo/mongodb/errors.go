package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/shop/internal/domain"
	"github.com/Gunvolt24/shop/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// wrapStoreError — учёт ошибки в метриках и приведение сетевых/таймаутных ошибок к ErrStoreUnavailable.
func wrapStoreError(collection, op string, err error) error {
	metrics.StoreErrors.WithLabelValues(collection, op).Inc()

	if errors.Is(err, domain.ErrStoreUnavailable) {
		return fmt.Errorf("%s %s: %w", collection, op, err)
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrStoreUnavailable, collection, op, err)
	}
	return fmt.Errorf("%s %s: %w", collection, op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	var selErr topology.ServerSelectionError
	return errors.As(err, &selErr)
}
