package suite

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_MergesRegistrations_When_PathDeclaredTwice(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.Describe("S", func(b *Builder) { b.It("A", func() error { return nil }) })
	tree.Describe("S", func(b *Builder) { b.It("B", func() error { return nil }) })
	require.NoError(t, tree.Finalize())

	s, ok := tree.Lookup("root/S")
	require.True(t, ok)
	names := []string{}
	for _, tc := range s.Tests() {
		names = append(names, tc.Name)
	}
	assert.Equal(t, []string{"A", "B"}, names)
	assert.Len(t, tree.Root().Children(), 1, "suite linked exactly once")
}

func TestTree_LinksNestedPaths_When_ParentDeclaredFirst(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.Describe("S", nil)
	tree.Add("root/S", "C", func(b *Builder) { b.Stub("x") })
	tree.Add("root/S/C", "D", nil)
	require.NoError(t, tree.Finalize())

	assert.Equal(t, []string{"root", "root/S", "root/S/C", "root/S/C/D"}, tree.Paths())
	d, ok := tree.Lookup("root/S/C/D")
	require.True(t, ok)
	assert.Equal(t, 3, d.Depth())
	assert.Equal(t, "D", d.Name)
}

func TestTree_ReturnsErrors_When_DeclarationsAreInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		declare func(*Tree)
		wantErr error
		wantMsg string
	}{
		{
			name:    "error: unknown parent",
			declare: func(tr *Tree) { tr.Add("root/missing", "C", nil) },
			wantErr: ErrParentNotFound,
			wantMsg: "root/missing",
		},
		{
			name:    "error: child queued before parent",
			declare: func(tr *Tree) { tr.Add("root/S", "C", nil); tr.Describe("S", nil) },
			wantErr: ErrParentNotFound,
			wantMsg: "root/S",
		},
		{
			name:    "error: empty top-level name",
			declare: func(tr *Tree) { tr.Describe("", nil) },
			wantErr: ErrEmptyName,
		},
		{
			name: "error: empty nested name",
			declare: func(tr *Tree) {
				tr.Describe("S", func(b *Builder) { b.Describe("", nil) })
			},
			wantErr: ErrEmptyName,
			wantMsg: "root/S",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree := NewTree()
			tc.declare(tree)
			err := tree.Finalize()
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestTree_KeepsLinking_When_OneDeclarationFails(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.Add("root/nope", "C", nil)
	tree.Describe("S", nil)
	tree.Describe("", nil)

	err := tree.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParentNotFound))
	assert.True(t, errors.Is(err, ErrEmptyName))

	_, ok := tree.Lookup("root/S")
	assert.True(t, ok)

	require.NoError(t, tree.Finalize(), "errors are not reported twice")
}

func TestTree_RejectsRun_When_FinalizeFails(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.Add("root/nope", "C", nil)
	rec := &Recorder{}

	_, err := tree.Run(rec)
	require.ErrorIs(t, err, ErrParentNotFound)
	assert.Empty(t, rec.Events())
}

func TestTree_LookupReportsMissing_When_PathUnknown(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	s, ok := tree.Lookup("root/ghost")
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Equal(t, RootPath, tree.Root().Path)
	assert.Nil(t, tree.Root().Parent())
}

func TestTree_AcceptsConcurrentDeclarations_When_AddedFromGoroutines(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree.Describe("shared", func(b *Builder) { b.Stub("s") })
		}()
	}
	wg.Wait()
	require.NoError(t, tree.Finalize())

	s, ok := tree.Lookup("root/shared")
	require.True(t, ok)
	assert.Len(t, s.Tests(), 16)
	assert.Len(t, tree.Root().Children(), 1)
}

func TestTree_LinksLateDeclarations_When_InitializerQueuesMore(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	tree.Describe("S", func(b *Builder) {
		tree.Add(b.Path(), "late", nil)
	})
	require.NoError(t, tree.Finalize())

	_, ok := tree.Lookup("root/S/late")
	assert.True(t, ok)
}
