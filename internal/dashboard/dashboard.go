// Package dashboard holds the client-side state of the stock dashboard: the
// working set of records, the filtered and paginated view over it, and the
// create and edit forms that mutate the remote collection.
package dashboard

import (
	"context"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

// DefaultPageSize is the number of rows shown per page
const DefaultPageSize = 10

// Collection is the remote stock record API
type Collection interface {
	ListAll(ctx context.Context) ([]models.StockRecord, error)
	GetByID(ctx context.Context, id string) (models.StockRecord, error)
	Create(ctx context.Context, fields models.StockFields) (models.StockRecord, error)
	Update(ctx context.Context, id string, fields models.StockFields) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, path string) (string, error)
}

// Publisher announces successful mutations to other dashboard instances
type Publisher interface {
	PublishRecordCreated(ctx context.Context, record models.StockRecord) error
	PublishRecordUpdated(ctx context.Context, record models.StockRecord) error
	PublishRecordDeleted(ctx context.Context, id string) error
}

// Navigator is called once after a form submits successfully
type Navigator func(ctx context.Context)

type options struct {
	pageSize  int
	publisher Publisher
}

// Option configures controllers
type Option func(*options)

// WithPageSize overrides DefaultPageSize. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithPublisher sets the publisher notified after successful mutations
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

func buildOptions(opts []Option) options {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
