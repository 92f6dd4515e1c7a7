package mock

import (
	"context"

	autodocs "github.com/ziyacivan/autodocs-mcp"
)

var _ autodocs.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of autodocs.PageStore.
type PageStore struct {
	CreateRunFn   func(ctx context.Context, run *autodocs.Run, pages []*autodocs.Page) error
	FindRunByIDFn func(ctx context.Context, id string) (*autodocs.Run, error)
	FindRunsFn    func(ctx context.Context) ([]*autodocs.Run, error)
	FindPagesFn   func(ctx context.Context, filter autodocs.PageFilter) ([]*autodocs.StoredPage, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *PageStore) CreateRun(ctx context.Context, run *autodocs.Run, pages []*autodocs.Page) error {
	return s.CreateRunFn(ctx, run, pages)
}

func (s *PageStore) FindRunByID(ctx context.Context, id string) (*autodocs.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *PageStore) FindRuns(ctx context.Context) ([]*autodocs.Run, error) {
	return s.FindRunsFn(ctx)
}

func (s *PageStore) FindPages(ctx context.Context, filter autodocs.PageFilter) ([]*autodocs.StoredPage, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageStore) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
