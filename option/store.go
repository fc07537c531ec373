package option

import (
	"context"

	"github.com/xraph/boxoffice/id"
)

// Store is the persistence contract for add-on options.
type Store interface {
	Create(ctx context.Context, o *Option) error
	Get(ctx context.Context, optionID id.OptionID) (*Option, error)
	List(ctx context.Context, perfID id.PerformanceID, opts ListOpts) ([]*Option, error)
	Update(ctx context.Context, o *Option) error
}

// ListOpts narrows option listings.
type ListOpts struct {
	ActiveOnly bool
}
