package repositories

import (
	"context"

	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id string) (*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
	SetParent(ctx context.Context, id string, parentID *string) error
	SetArchived(ctx context.Context, id string, archived bool) error
	Delete(ctx context.Context, id string) error
	ListChildren(ctx context.Context, ownerID string, parentID *string, includeArchived bool) ([]*entities.Document, error)
	ListByOwner(ctx context.Context, ownerID string, archived bool) ([]*entities.Document, error)
	ListPublished(ctx context.Context) ([]*entities.Document, error)
	IncrementLikes(ctx context.Context, id string, delta int64) error
	IncrementViews(ctx context.Context, id string) error
}
