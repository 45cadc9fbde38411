package sidebar

import (
	"context"

	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
)

// ChildLister fetches one node's direct, non-archived children.
// DocumentService.GetSidebar satisfies it.
type ChildLister interface {
	GetSidebar(ctx context.Context, ownerID string, parentID *string) ([]*entities.Document, error)
}

// Row is one visible line of the flattened sidebar tree.
type Row struct {
	ID       string
	Title    string
	Icon     *string
	Level    int
	IsFolder bool
	Expanded bool
}

// TreeController renders one owner's sidebar. Children are fetched lazily,
// one query per expanded folder, never as a full-tree fetch.
type TreeController struct {
	lister   ChildLister
	ownerID  string
	expanded map[string]bool
	activeID string
}

func NewTreeController(lister ChildLister, ownerID string) *TreeController {
	return &TreeController{
		lister:   lister,
		ownerID:  ownerID,
		expanded: make(map[string]bool),
	}
}

// Toggle flips a folder open or closed and marks it active.
func (t *TreeController) Toggle(id string) {
	t.expanded[id] = !t.expanded[id]
	t.activeID = id
}

func (t *TreeController) IsExpanded(id string) bool {
	return t.expanded[id]
}

func (t *TreeController) ActiveID() string {
	return t.activeID
}

// Children returns a node's direct children in render order: folders first,
// then files. The order comes from two passes over the fetched list, not
// from a store sort key.
func (t *TreeController) Children(ctx context.Context, parentID *string) ([]*entities.Document, error) {
	docs, err := t.lister.GetSidebar(ctx, t.ownerID, parentID)
	if err != nil {
		return nil, err
	}

	ordered := make([]*entities.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.IsFolder {
			ordered = append(ordered, doc)
		}
	}
	for _, doc := range docs {
		if !doc.IsFolder {
			ordered = append(ordered, doc)
		}
	}

	return ordered, nil
}

// Rows flattens the tree into visible rows, descending only into expanded
// folders.
func (t *TreeController) Rows(ctx context.Context) ([]Row, error) {
	return t.rows(ctx, nil, 0)
}

func (t *TreeController) rows(ctx context.Context, parentID *string, level int) ([]Row, error) {
	children, err := t.Children(ctx, parentID)
	if err != nil {
		return nil, err
	}

	var out []Row
	for _, doc := range children {
		out = append(out, Row{
			ID:       doc.ID,
			Title:    doc.Title,
			Icon:     doc.Icon,
			Level:    level,
			IsFolder: doc.IsFolder,
			Expanded: t.expanded[doc.ID],
		})

		if doc.IsFolder && t.expanded[doc.ID] {
			sub, err := t.rows(ctx, &doc.ID, level+1)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}

	return out, nil
}
