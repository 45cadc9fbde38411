package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/repositories"
)

const documentColumns = `id, title, owner_id, parent_id, is_folder, is_archived, published,
	content, cover_image, icon, published_user_name, github_repo, owner_profile,
	likes, views, created_at, updated_at`

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repositories.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entities.Document) error {
	query := `INSERT INTO documents (id, title, owner_id, parent_id, is_folder, is_archived, published,
			content, cover_image, icon, published_user_name, github_repo, owner_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Title, doc.OwnerID, doc.ParentID, doc.IsFolder, doc.IsArchived, doc.Published,
		doc.Content, doc.CoverImage, doc.Icon, doc.PublishedUserName, doc.GithubRepo, doc.OwnerProfile,
		doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*entities.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	var doc entities.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entities.Document) error {
	query := `UPDATE documents SET title = $1, content = $2, cover_image = $3, icon = $4,
			published = $5, published_user_name = $6, github_repo = $7, updated_at = $8
		WHERE id = $9`

	_, err := r.db.ExecContext(ctx, query,
		doc.Title, doc.Content, doc.CoverImage, doc.Icon,
		doc.Published, doc.PublishedUserName, doc.GithubRepo, doc.UpdatedAt, doc.ID,
	)
	return err
}

func (r *documentRepository) SetParent(ctx context.Context, id string, parentID *string) error {
	query := `UPDATE documents SET parent_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, parentID, id)
	return err
}

func (r *documentRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	query := `UPDATE documents SET is_archived = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, archived, id)
	return err
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ListChildren reads the owner+parent index. A nil parentID selects root
// level documents.
func (r *documentRepository) ListChildren(ctx context.Context, ownerID string, parentID *string, includeArchived bool) ([]*entities.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE owner_id = $1
		AND (($2::uuid IS NULL AND parent_id IS NULL) OR parent_id = $2)
		AND ($3 OR is_archived = false)
		ORDER BY created_at DESC`

	var docs []*entities.Document
	if err := r.db.SelectContext(ctx, &docs, query, ownerID, parentID, includeArchived); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) ListByOwner(ctx context.Context, ownerID string, archived bool) ([]*entities.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE owner_id = $1 AND is_archived = $2
		ORDER BY created_at DESC`

	var docs []*entities.Document
	if err := r.db.SelectContext(ctx, &docs, query, ownerID, archived); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) ListPublished(ctx context.Context) ([]*entities.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE published = true AND is_archived = false
		ORDER BY created_at DESC`

	var docs []*entities.Document
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) IncrementLikes(ctx context.Context, id string, delta int64) error {
	query := `UPDATE documents SET likes = GREATEST(likes + $1, 0) WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, delta, id)
	return err
}

func (r *documentRepository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE documents SET views = views + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
