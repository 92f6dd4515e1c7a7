package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	autodocs "github.com/ziyacivan/autodocs-mcp"
	main "github.com/ziyacivan/autodocs-mcp/cmd/autodocs"
	"github.com/ziyacivan/autodocs-mcp/mock"
)

func testDeps(store *mock.PageStore) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Store:  store,
	}, stdout, stderr
}

func TestRunsCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists runs", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			FindRunsFn: func(ctx context.Context) ([]*autodocs.Run, error) {
				return []*autodocs.Run{{
					ID:        "run-1",
					BaseURL:   "https://docs.example.com",
					Format:    autodocs.FormatMkDocs,
					Failed:    2,
					CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
				}}, nil
			},
		}

		deps, stdout, _ := testDeps(store)
		cmd := &main.RunsCmd{}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "run-1")
		assert.Contains(t, out, "mkdocs")
		assert.Contains(t, out, "failed=2")
	})

	t.Run("reports an empty store", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			FindRunsFn: func(ctx context.Context) ([]*autodocs.Run, error) {
				return nil, nil
			},
		}

		deps, stdout, _ := testDeps(store)
		cmd := &main.RunsCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No runs stored.")
	})
}

func TestPagesCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints a user-facing error for a missing run", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			FindRunByIDFn: func(ctx context.Context, id string) (*autodocs.Run, error) {
				return nil, autodocs.Errorf(autodocs.ENOTFOUND, "run not found")
			},
		}

		deps, _, stderr := testDeps(store)
		cmd := &main.PagesCmd{RunID: "missing"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "run not found")
	})

	t.Run("lists pages with position and title", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			FindRunByIDFn: func(ctx context.Context, id string) (*autodocs.Run, error) {
				return &autodocs.Run{ID: id}, nil
			},
			FindPagesFn: func(ctx context.Context, filter autodocs.PageFilter) ([]*autodocs.StoredPage, error) {
				require.NotNil(t, filter.RunID)
				return []*autodocs.StoredPage{
					{Position: 0, Title: "Intro", URL: "https://docs.example.com/intro"},
					{Position: 1, Title: "Usage", URL: "https://docs.example.com/usage"},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(store)
		cmd := &main.PagesCmd{RunID: "run-1"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Intro")
		assert.Contains(t, out, "Usage")
	})

	t.Run("full output includes content", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			FindRunByIDFn: func(ctx context.Context, id string) (*autodocs.Run, error) {
				return &autodocs.Run{ID: id}, nil
			},
			FindPagesFn: func(ctx context.Context, filter autodocs.PageFilter) ([]*autodocs.StoredPage, error) {
				return []*autodocs.StoredPage{
					{Title: "Intro", URL: "https://docs.example.com/intro", Content: "# Intro\n\nWelcome."},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(store)
		cmd := &main.PagesCmd{RunID: "run-1", Full: true}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Welcome.")
	})
}

func TestDeleteCmd(t *testing.T) {
	t.Parallel()

	t.Run("deletes and confirms", func(t *testing.T) {
		t.Parallel()

		var deleted string
		store := &mock.PageStore{
			DeleteRunFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		deps, stdout, _ := testDeps(store)
		cmd := &main.DeleteCmd{RunID: "run-1"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "run-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted run run-1")
	})

	t.Run("surfaces a missing run", func(t *testing.T) {
		t.Parallel()

		store := &mock.PageStore{
			DeleteRunFn: func(ctx context.Context, id string) error {
				return autodocs.Errorf(autodocs.ENOTFOUND, "run not found")
			},
		}

		deps, _, stderr := testDeps(store)
		cmd := &main.DeleteCmd{RunID: "missing"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "run not found")
	})
}
