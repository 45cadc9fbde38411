package sidebar

import (
	"context"
	"testing"
	"time"

	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves a fixed tree keyed by parent id ("" means root) and
// counts queries per key.
type fakeLister struct {
	children map[string][]*entities.Document
	queries  map[string]int
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		children: make(map[string][]*entities.Document),
		queries:  make(map[string]int),
	}
}

func (l *fakeLister) add(parentID *string, doc *entities.Document) {
	key := ""
	if parentID != nil {
		key = *parentID
	}
	l.children[key] = append(l.children[key], doc)
}

func (l *fakeLister) GetSidebar(_ context.Context, _ string, parentID *string) ([]*entities.Document, error) {
	key := ""
	if parentID != nil {
		key = *parentID
	}
	l.queries[key]++
	return l.children[key], nil
}

func doc(id, title string, folder bool) *entities.Document {
	return &entities.Document{
		ID:        id,
		Title:     title,
		OwnerID:   "alice",
		IsFolder:  folder,
		CreatedAt: time.Now(),
	}
}

func TestChildrenFoldersFirst(t *testing.T) {
	lister := newFakeLister()
	lister.add(nil, doc("f1", "notes.md", false))
	lister.add(nil, doc("d1", "projects", true))
	lister.add(nil, doc("f2", "todo.md", false))
	lister.add(nil, doc("d2", "archive", true))

	tree := NewTreeController(lister, "alice")

	children, err := tree.Children(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, children, 4)

	assert.Equal(t, "d1", children[0].ID)
	assert.Equal(t, "d2", children[1].ID)
	assert.Equal(t, "f1", children[2].ID)
	assert.Equal(t, "f2", children[3].ID)
}

func TestRowsCollapsedShowsRootOnly(t *testing.T) {
	lister := newFakeLister()
	folder := doc("d1", "projects", true)
	lister.add(nil, folder)
	lister.add(&folder.ID, doc("f1", "plan.md", false))

	tree := NewTreeController(lister, "alice")

	rows, err := tree.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "d1", rows[0].ID)
	assert.False(t, rows[0].Expanded)

	// collapsed folders are never queried
	assert.Zero(t, lister.queries["d1"])
}

func TestRowsDescendsIntoExpandedFolders(t *testing.T) {
	lister := newFakeLister()
	outer := doc("d1", "projects", true)
	inner := doc("d2", "2026", true)
	lister.add(nil, outer)
	lister.add(&outer.ID, inner)
	lister.add(&outer.ID, doc("f1", "plan.md", false))
	lister.add(&inner.ID, doc("f2", "q3.md", false))

	tree := NewTreeController(lister, "alice")
	tree.Toggle("d1")
	tree.Toggle("d2")

	rows, err := tree.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "d1", rows[0].ID)
	assert.Equal(t, 0, rows[0].Level)
	assert.True(t, rows[0].Expanded)

	assert.Equal(t, "d2", rows[1].ID)
	assert.Equal(t, 1, rows[1].Level)

	assert.Equal(t, "f2", rows[2].ID)
	assert.Equal(t, 2, rows[2].Level)

	assert.Equal(t, "f1", rows[3].ID)
	assert.Equal(t, 1, rows[3].Level)
}

func TestToggleCollapses(t *testing.T) {
	lister := newFakeLister()
	folder := doc("d1", "projects", true)
	lister.add(nil, folder)
	lister.add(&folder.ID, doc("f1", "plan.md", false))

	tree := NewTreeController(lister, "alice")

	tree.Toggle("d1")
	assert.True(t, tree.IsExpanded("d1"))
	assert.Equal(t, "d1", tree.ActiveID())

	rows, err := tree.Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	tree.Toggle("d1")
	assert.False(t, tree.IsExpanded("d1"))

	rows, err = tree.Rows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
