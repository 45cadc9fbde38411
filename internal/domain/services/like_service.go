package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/repositories"
	"github.com/kavjeydev/notepod-sub000/pkg/errors"
)

// LikeService keeps the per-user like rows and the denormalized likes
// counter on the document in step.
type LikeService struct {
	likeRepo repositories.LikeRepository
	docRepo  repositories.DocumentRepository
	cache    CacheService
}

func NewLikeService(
	likeRepo repositories.LikeRepository,
	docRepo repositories.DocumentRepository,
	cache CacheService,
) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		docRepo:  docRepo,
		cache:    cache,
	}
}

func (s *LikeService) AddLike(ctx context.Context, ownerID, documentID string) (*entities.Like, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}

	if _, err := s.likeRepo.GetByOwnerAndDocument(ctx, ownerID, documentID); err == nil {
		return nil, errors.NewBadRequestError("document already liked")
	}

	like := &entities.Like{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, errors.NewInternalError("failed to add like")
	}

	if err := s.docRepo.IncrementLikes(ctx, documentID, 1); err != nil {
		return nil, errors.NewInternalError("failed to update like count")
	}

	s.cache.InvalidateDocument(ctx, documentID)

	return like, nil
}

func (s *LikeService) RemoveLike(ctx context.Context, ownerID, likeID string) error {
	like, err := s.likeRepo.GetByID(ctx, likeID)
	if err != nil {
		return errors.NewNotFoundError("like not found")
	}
	if like.OwnerID != ownerID {
		return errors.NewForbiddenError("not authorized to modify")
	}

	if err := s.likeRepo.Delete(ctx, likeID); err != nil {
		return errors.NewInternalError("failed to remove like")
	}

	if err := s.docRepo.IncrementLikes(ctx, like.DocumentID, -1); err != nil {
		return errors.NewInternalError("failed to update like count")
	}

	s.cache.InvalidateDocument(ctx, like.DocumentID)

	return nil
}

func (s *LikeService) GetLikeForUser(ctx context.Context, ownerID, documentID string) (*entities.Like, error) {
	like, err := s.likeRepo.GetByOwnerAndDocument(ctx, ownerID, documentID)
	if err != nil {
		return nil, errors.NewNotFoundError("like not found")
	}
	return like, nil
}
