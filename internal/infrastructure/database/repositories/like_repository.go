package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/repositories"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repositories.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *entities.Like) error {
	query := `INSERT INTO like_data (id, owner_id, document_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, like.ID, like.OwnerID, like.DocumentID, like.CreatedAt)
	return err
}

func (r *likeRepository) GetByID(ctx context.Context, id string) (*entities.Like, error) {
	query := `SELECT id, owner_id, document_id, created_at FROM like_data WHERE id = $1`

	var like entities.Like
	if err := r.db.GetContext(ctx, &like, query, id); err != nil {
		return nil, err
	}

	return &like, nil
}

func (r *likeRepository) GetByOwnerAndDocument(ctx context.Context, ownerID, documentID string) (*entities.Like, error) {
	query := `SELECT id, owner_id, document_id, created_at FROM like_data
		WHERE owner_id = $1 AND document_id = $2`

	var like entities.Like
	if err := r.db.GetContext(ctx, &like, query, ownerID, documentID); err != nil {
		return nil, err
	}

	return &like, nil
}

func (r *likeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM like_data WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
