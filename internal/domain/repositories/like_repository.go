package repositories

import (
	"context"

	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
)

type LikeRepository interface {
	Create(ctx context.Context, like *entities.Like) error
	GetByID(ctx context.Context, id string) (*entities.Like, error)
	GetByOwnerAndDocument(ctx context.Context, ownerID, documentID string) (*entities.Like, error)
	Delete(ctx context.Context, id string) error
}
