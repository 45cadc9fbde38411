package services

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/repositories"
	"github.com/kavjeydev/notepod-sub000/pkg/errors"
	"go.uber.org/zap"
)

const defaultTitle = "untitled"

type CreateDocumentInput struct {
	Title    string
	ParentID *string
	IsFolder bool
}

func (in CreateDocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Length(0, 256)),
	)
}

// UpdateDocumentInput carries the owner-mutable fields. Nil means "leave
// unchanged".
type UpdateDocumentInput struct {
	Title             *string
	Content           *string
	CoverImage        *string
	Icon              *string
	Published         *bool
	PublishedUserName *string
	GithubRepo        *string
}

func (in UpdateDocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Length(1, 256)),
		validation.Field(&in.GithubRepo, validation.Length(0, 512)),
	)
}

type DocumentService struct {
	docRepo        repositories.DocumentRepository
	cache          CacheService
	jobs           JobStore
	cascadeTimeout time.Duration
	logger         *zap.Logger
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	cache CacheService,
	jobs JobStore,
	cascadeTimeout time.Duration,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:        docRepo,
		cache:          cache,
		jobs:           jobs,
		cascadeTimeout: cascadeTimeout,
		logger:         logger,
	}
}

func (s *DocumentService) Create(ctx context.Context, ownerID string, ownerProfile *string, in CreateDocumentInput) (*entities.Document, error) {
	if err := in.Validate(); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTitle
	}

	if in.ParentID != nil {
		parent, err := s.docRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, errors.NewNotFoundError("parent document not found")
		}
		if parent.OwnerID != ownerID {
			return nil, errors.NewForbiddenError("parent belongs to another user")
		}
	}

	doc := &entities.Document{
		ID:           uuid.NewString(),
		Title:        title,
		OwnerID:      ownerID,
		ParentID:     in.ParentID,
		IsFolder:     in.IsFolder,
		OwnerProfile: ownerProfile,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to create document")
	}

	s.cache.InvalidateSidebar(ctx, ownerID)

	s.logger.Info("document created",
		zap.String("id", doc.ID),
		zap.String("owner_id", ownerID),
		zap.Bool("is_folder", doc.IsFolder),
	)

	return doc, nil
}

// MoveFile reparents a document. Dropping onto a folder nests inside it;
// dropping onto a file places the moved document next to that file; no
// destination moves to root. A folder may never end up inside its own
// subtree.
func (s *DocumentService) MoveFile(ctx context.Context, ownerID, id string, newParentID *string) (*entities.Document, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var dest *entities.Document
	if newParentID != nil {
		dest, err = s.docRepo.GetByID(ctx, *newParentID)
		if err != nil {
			return nil, errors.NewNotFoundError("destination document not found")
		}
		if dest.OwnerID != ownerID {
			return nil, errors.NewForbiddenError("destination belongs to another user")
		}
	}

	if doc.IsFolder && dest != nil {
		if err := s.checkNoCycle(ctx, id, dest.ID); err != nil {
			return nil, err
		}
	}

	var parentID *string
	switch {
	case dest == nil:
		parentID = nil
	case !dest.IsFolder:
		// Sibling placement: a file drop target means "next to this file".
		parentID = dest.ParentID
	default:
		parentID = &dest.ID
	}

	if err := s.docRepo.SetParent(ctx, id, parentID); err != nil {
		return nil, errors.NewInternalError("failed to move document")
	}
	doc.ParentID = parentID

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidateSidebar(ctx, ownerID)

	s.logger.Info("document moved",
		zap.String("id", id),
		zap.Stringp("parent_id", parentID),
	)

	return doc, nil
}

// checkNoCycle walks ancestor links upward from the destination. Reaching
// the moved document means the destination sits inside its subtree. The
// walk stops at root or at a dangling parent reference.
func (s *DocumentService) checkNoCycle(ctx context.Context, movedID, destID string) error {
	currentID := destID
	for {
		if currentID == movedID {
			return errors.NewInvalidMoveError("cannot move a folder into one of its own descendants")
		}

		current, err := s.docRepo.GetByID(ctx, currentID)
		if err != nil {
			return nil
		}
		if current.ParentID == nil {
			return nil
		}
		currentID = *current.ParentID
	}
}

// Archive soft-deletes the document and kicks off a tracked background walk
// that archives the whole subtree. The returned job can be polled; the
// subtree may still be mid-transition when this returns.
func (s *DocumentService) Archive(ctx context.Context, ownerID, id string) (*entities.Document, *CascadeJob, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	job, err := s.jobs.Create(ctx)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to create cascade job")
	}

	if err := s.docRepo.SetArchived(ctx, id, true); err != nil {
		return nil, nil, errors.NewInternalError("failed to archive document")
	}
	doc.IsArchived = true

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidateSidebar(ctx, ownerID)

	go s.runCascade(ownerID, id, job.ID, true)

	return doc, job, nil
}

// Restore un-archives the document and its subtree. A target whose parent
// is still archived detaches to root; descendants keep their links.
func (s *DocumentService) Restore(ctx context.Context, ownerID, id string) (*entities.Document, *CascadeJob, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}

	job, err := s.jobs.Create(ctx)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to create cascade job")
	}

	if doc.ParentID != nil {
		parent, err := s.docRepo.GetByID(ctx, *doc.ParentID)
		if err == nil && parent.IsArchived {
			if err := s.docRepo.SetParent(ctx, id, nil); err != nil {
				return nil, nil, errors.NewInternalError("failed to detach document")
			}
			doc.ParentID = nil
		}
	}

	if err := s.docRepo.SetArchived(ctx, id, false); err != nil {
		return nil, nil, errors.NewInternalError("failed to restore document")
	}
	doc.IsArchived = false

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidateSidebar(ctx, ownerID)

	go s.runCascade(ownerID, id, job.ID, false)

	return doc, job, nil
}

func (s *DocumentService) runCascade(ownerID, rootID, jobID string, archived bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cascadeTimeout)
	defer cancel()

	if err := s.jobs.SetStatus(ctx, jobID, JobRunning, ""); err != nil {
		s.logger.Warn("failed to mark cascade job running", zap.String("job_id", jobID), zap.Error(err))
	}

	queue := []string{rootID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		children, err := s.docRepo.ListChildren(ctx, ownerID, &parentID, true)
		if err != nil {
			s.failCascade(ctx, jobID, err)
			return
		}

		for _, child := range children {
			if err := s.docRepo.SetArchived(ctx, child.ID, archived); err != nil {
				s.failCascade(ctx, jobID, err)
				return
			}
			s.cache.InvalidateDocument(ctx, child.ID)
			queue = append(queue, child.ID)
		}
	}

	s.cache.InvalidateSidebar(ctx, ownerID)

	if err := s.jobs.SetStatus(ctx, jobID, JobDone, ""); err != nil {
		s.logger.Warn("failed to mark cascade job done", zap.String("job_id", jobID), zap.Error(err))
	}

	s.logger.Info("cascade finished",
		zap.String("root_id", rootID),
		zap.String("job_id", jobID),
		zap.Bool("archived", archived),
	)
}

func (s *DocumentService) failCascade(ctx context.Context, jobID string, cause error) {
	s.logger.Error("cascade failed", zap.String("job_id", jobID), zap.Error(cause))
	if err := s.jobs.SetStatus(ctx, jobID, JobFailed, cause.Error()); err != nil {
		s.logger.Warn("failed to mark cascade job failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

// Remove hard-deletes a single record. Children are detached to root by the
// schema, not deleted.
func (s *DocumentService) Remove(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete document")
	}

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidateSidebar(ctx, ownerID)

	s.logger.Info("document removed", zap.String("id", id), zap.String("owner_id", ownerID))

	return nil
}

func (s *DocumentService) Update(ctx context.Context, ownerID, id string, in UpdateDocumentInput) (*entities.Document, error) {
	if err := in.Validate(); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		doc.Title = strings.TrimSpace(*in.Title)
		if doc.Title == "" {
			doc.Title = defaultTitle
		}
	}
	if in.Content != nil {
		doc.Content = in.Content
	}
	if in.CoverImage != nil {
		doc.CoverImage = in.CoverImage
	}
	if in.Icon != nil {
		doc.Icon = in.Icon
	}
	if in.Published != nil {
		doc.Published = *in.Published
	}
	if in.PublishedUserName != nil {
		doc.PublishedUserName = in.PublishedUserName
	}
	if in.GithubRepo != nil {
		doc.GithubRepo = in.GithubRepo
	}
	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to update document")
	}

	s.cache.InvalidateDocument(ctx, id)
	s.cache.InvalidateSidebar(ctx, ownerID)

	return doc, nil
}

func (s *DocumentService) RemoveIcon(ctx context.Context, ownerID, id string) (*entities.Document, error) {
	doc, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	doc.Icon = nil
	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, errors.NewInternalError("failed to update document")
	}

	s.cache.InvalidateDocument(ctx, id)

	return doc, nil
}

// GetSidebar returns the direct, non-archived children of parentID (root
// when nil), newest first.
func (s *DocumentService) GetSidebar(ctx context.Context, ownerID string, parentID *string) ([]*entities.Document, error) {
	key := s.cache.SidebarKey(ownerID, parentID)
	if docs, err := s.cache.GetSidebar(ctx, key); err == nil {
		return docs, nil
	}

	docs, err := s.docRepo.ListChildren(ctx, ownerID, parentID, false)
	if err != nil {
		return nil, errors.NewInternalError("failed to list documents")
	}

	s.cache.SetSidebar(ctx, key, docs)

	return docs, nil
}

func (s *DocumentService) GetTrash(ctx context.Context, ownerID string) ([]*entities.Document, error) {
	docs, err := s.docRepo.ListByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to list trash")
	}
	return docs, nil
}

func (s *DocumentService) GetSearch(ctx context.Context, ownerID string) ([]*entities.Document, error) {
	docs, err := s.docRepo.ListByOwner(ctx, ownerID, false)
	if err != nil {
		return nil, errors.NewInternalError("failed to list documents")
	}
	return docs, nil
}

// GetByID serves published, non-archived documents to anyone. Everything
// else needs an identity (callerID non-nil) matching the owner.
func (s *DocumentService) GetByID(ctx context.Context, callerID *string, id string) (*entities.Document, error) {
	if doc, err := s.cache.GetDocument(ctx, id); err == nil {
		return s.authorizeRead(doc, callerID)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}

	authorized, err := s.authorizeRead(doc, callerID)
	if err != nil {
		return nil, err
	}

	s.cache.SetDocument(ctx, doc)

	return authorized, nil
}

func (s *DocumentService) authorizeRead(doc *entities.Document, callerID *string) (*entities.Document, error) {
	if doc.Published && !doc.IsArchived {
		return doc, nil
	}
	if callerID == nil {
		return nil, errors.NewUnauthorizedError("not authenticated")
	}
	if doc.OwnerID != *callerID {
		return nil, errors.NewForbiddenError("not authorized to view")
	}
	return doc, nil
}

// GetAllPublished is the community feed: every published, non-archived
// document, regardless of caller.
func (s *DocumentService) GetAllPublished(ctx context.Context) ([]*entities.Document, error) {
	docs, err := s.docRepo.ListPublished(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list published documents")
	}
	return docs, nil
}

// RecordView bumps the view counter on a published document.
func (s *DocumentService) RecordView(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewNotFoundError("document not found")
	}
	if !doc.Published || doc.IsArchived {
		return errors.NewNotFoundError("document not found")
	}

	if err := s.docRepo.IncrementViews(ctx, id); err != nil {
		return errors.NewInternalError("failed to record view")
	}

	s.cache.InvalidateDocument(ctx, id)

	return nil
}

func (s *DocumentService) getOwned(ctx context.Context, ownerID, id string) (*entities.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewNotFoundError("document not found")
	}
	if doc.OwnerID != ownerID {
		return nil, errors.NewForbiddenError("not authorized to modify")
	}
	return doc, nil
}
