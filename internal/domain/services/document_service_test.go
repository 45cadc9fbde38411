package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDocRepo is an in-memory DocumentRepository. The cascade walk runs on a
// background goroutine, so every method takes the lock.
type fakeDocRepo struct {
	mu   sync.Mutex
	docs map[string]*entities.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*entities.Document)}
}

func (r *fakeDocRepo) Create(_ context.Context, doc *entities.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, id string) (*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, errors.NewNotFoundError("document not found")
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocRepo) Update(_ context.Context, doc *entities.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return errors.NewNotFoundError("document not found")
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocRepo) SetParent(_ context.Context, id string, parentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return errors.NewNotFoundError("document not found")
	}
	doc.ParentID = parentID
	return nil
}

func (r *fakeDocRepo) SetArchived(_ context.Context, id string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return errors.NewNotFoundError("document not found")
	}
	doc.IsArchived = archived
	return nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	for _, doc := range r.docs {
		if doc.ParentID != nil && *doc.ParentID == id {
			doc.ParentID = nil
		}
	}
	return nil
}

func (r *fakeDocRepo) ListChildren(_ context.Context, ownerID string, parentID *string, includeArchived bool) ([]*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Document
	for _, doc := range r.docs {
		if doc.OwnerID != ownerID {
			continue
		}
		if parentID == nil {
			if doc.ParentID != nil {
				continue
			}
		} else if doc.ParentID == nil || *doc.ParentID != *parentID {
			continue
		}
		if !includeArchived && doc.IsArchived {
			continue
		}
		copied := *doc
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDocRepo) ListByOwner(_ context.Context, ownerID string, archived bool) ([]*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Document
	for _, doc := range r.docs {
		if doc.OwnerID == ownerID && doc.IsArchived == archived {
			copied := *doc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) ListPublished(_ context.Context) ([]*entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Document
	for _, doc := range r.docs {
		if doc.Published && !doc.IsArchived {
			copied := *doc
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) IncrementLikes(_ context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return errors.NewNotFoundError("document not found")
	}
	doc.Likes += delta
	if doc.Likes < 0 {
		doc.Likes = 0
	}
	return nil
}

func (r *fakeDocRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return errors.NewNotFoundError("document not found")
	}
	doc.Views++
	return nil
}

func (r *fakeDocRepo) archived(t *testing.T, id string) bool {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	require.True(t, ok, "document %s missing", id)
	return doc.IsArchived
}

func (r *fakeDocRepo) parent(t *testing.T, id string) *string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	require.True(t, ok, "document %s missing", id)
	return doc.ParentID
}

// noopCache always misses so tests exercise the repository path.
type noopCache struct{}

func (noopCache) GetDocument(context.Context, string) (*entities.Document, error) {
	return nil, errors.NewNotFoundError("cache miss")
}
func (noopCache) SetDocument(context.Context, *entities.Document) error { return nil }
func (noopCache) GetSidebar(context.Context, string) ([]*entities.Document, error) {
	return nil, errors.NewNotFoundError("cache miss")
}
func (noopCache) SetSidebar(context.Context, string, []*entities.Document) error { return nil }
func (noopCache) InvalidateDocument(context.Context, string) error               { return nil }
func (noopCache) InvalidateSidebar(context.Context, string) error                { return nil }
func (noopCache) SidebarKey(ownerID string, parentID *string) string {
	if parentID == nil {
		return "sidebar:" + ownerID + ":root"
	}
	return "sidebar:" + ownerID + ":" + *parentID
}

type memJobStore struct {
	mu   sync.Mutex
	jobs map[string]*CascadeJob
}

func newMemJobStore() *memJobStore {
	return &memJobStore{jobs: make(map[string]*CascadeJob)}
}

func (s *memJobStore) Create(context.Context) (*CascadeJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job := &CascadeJob{ID: uuid.NewString(), Status: JobPending, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *memJobStore) Get(_ context.Context, id string) (*CascadeJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, errors.NewNotFoundError("job not found")
	}
	copied := *job
	return &copied, nil
}

func (s *memJobStore) SetStatus(_ context.Context, id string, status JobStatus, errText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return errors.NewNotFoundError("job not found")
	}
	job.Status = status
	job.Error = errText
	job.UpdatedAt = time.Now()
	return nil
}

func (s *memJobStore) status(t *testing.T, id string) JobStatus {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	require.True(t, ok, "job %s missing", id)
	return job.Status
}

func newTestService(t *testing.T) (*DocumentService, *fakeDocRepo, *memJobStore) {
	t.Helper()
	repo := newFakeDocRepo()
	jobs := newMemJobStore()
	svc := NewDocumentService(repo, noopCache{}, jobs, 5*time.Second, zap.NewNop())
	return svc, repo, jobs
}

func seedDoc(t *testing.T, repo *fakeDocRepo, ownerID string, parentID *string, isFolder bool) *entities.Document {
	t.Helper()
	doc := &entities.Document{
		ID:        uuid.NewString(),
		Title:     "seed",
		OwnerID:   ownerID,
		ParentID:  parentID,
		IsFolder:  isFolder,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), doc))
	return doc
}

func TestCreateCoercesEmptyTitle(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, "alice", nil, CreateDocumentInput{Title: "   "})
	require.NoError(t, err)
	assert.Equal(t, "untitled", doc.Title)
	assert.False(t, doc.IsFolder)
	assert.Nil(t, doc.ParentID)
}

func TestCreateUnderForeignParent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	folder := seedDoc(t, repo, "bob", nil, true)

	_, err := svc.Create(ctx, "alice", nil, CreateDocumentInput{Title: "note", ParentID: &folder.ID})
	require.Error(t, err)
	assert.IsType(t, &errors.ForbiddenError{}, err)
}

func TestCreateUnderMissingParent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	missing := uuid.NewString()
	_, err := svc.Create(ctx, "alice", nil, CreateDocumentInput{Title: "note", ParentID: &missing})
	require.Error(t, err)
	assert.IsType(t, &errors.NotFoundError{}, err)
}

func TestMoveIntoOwnDescendant(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	// a > b > c, then try to move a into c
	a := seedDoc(t, repo, "alice", nil, true)
	b := seedDoc(t, repo, "alice", &a.ID, true)
	c := seedDoc(t, repo, "alice", &b.ID, true)

	_, err := svc.MoveFile(ctx, "alice", a.ID, &c.ID)
	require.Error(t, err)
	assert.IsType(t, &errors.InvalidMoveError{}, err)
	assert.Nil(t, repo.parent(t, a.ID))
}

func TestMoveOntoSelf(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	a := seedDoc(t, repo, "alice", nil, true)

	_, err := svc.MoveFile(ctx, "alice", a.ID, &a.ID)
	require.Error(t, err)
	assert.IsType(t, &errors.InvalidMoveError{}, err)
}

func TestMoveOntoFilePlacesAsSibling(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	folder := seedDoc(t, repo, "alice", nil, true)
	file := seedDoc(t, repo, "alice", &folder.ID, false)
	moved := seedDoc(t, repo, "alice", nil, false)

	doc, err := svc.MoveFile(ctx, "alice", moved.ID, &file.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.ParentID)
	assert.Equal(t, folder.ID, *doc.ParentID)
}

func TestMoveOntoRootFilePlacesAtRoot(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	file := seedDoc(t, repo, "alice", nil, false)
	folder := seedDoc(t, repo, "alice", nil, true)
	moved := seedDoc(t, repo, "alice", &folder.ID, false)

	doc, err := svc.MoveFile(ctx, "alice", moved.ID, &file.ID)
	require.NoError(t, err)
	assert.Nil(t, doc.ParentID)
}

func TestMoveIntoFolderNests(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	folder := seedDoc(t, repo, "alice", nil, true)
	moved := seedDoc(t, repo, "alice", nil, false)

	doc, err := svc.MoveFile(ctx, "alice", moved.ID, &folder.ID)
	require.NoError(t, err)
	require.NotNil(t, doc.ParentID)
	assert.Equal(t, folder.ID, *doc.ParentID)
}

func TestMoveToRoot(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	folder := seedDoc(t, repo, "alice", nil, true)
	moved := seedDoc(t, repo, "alice", &folder.ID, false)

	doc, err := svc.MoveFile(ctx, "alice", moved.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, doc.ParentID)
}

func TestMoveToForeignDestination(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	dest := seedDoc(t, repo, "bob", nil, true)
	moved := seedDoc(t, repo, "alice", nil, false)

	_, err := svc.MoveFile(ctx, "alice", moved.ID, &dest.ID)
	require.Error(t, err)
	assert.IsType(t, &errors.ForbiddenError{}, err)
	assert.Nil(t, repo.parent(t, moved.ID))
}

func TestMoveForeignDocument(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	doc := seedDoc(t, repo, "bob", nil, false)

	_, err := svc.MoveFile(ctx, "alice", doc.ID, nil)
	require.Error(t, err)
	assert.IsType(t, &errors.ForbiddenError{}, err)
}

func TestArchiveCascadesToDescendants(t *testing.T) {
	svc, repo, jobs := newTestService(t)
	ctx := context.Background()

	root := seedDoc(t, repo, "alice", nil, true)
	child := seedDoc(t, repo, "alice", &root.ID, true)
	grandchild := seedDoc(t, repo, "alice", &child.ID, false)
	unrelated := seedDoc(t, repo, "alice", nil, false)

	doc, job, err := svc.Archive(ctx, "alice", root.ID)
	require.NoError(t, err)
	assert.True(t, doc.IsArchived)
	assert.Equal(t, JobPending, job.Status)

	require.Eventually(t, func() bool {
		return jobs.status(t, job.ID) == JobDone
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, repo.archived(t, child.ID))
	assert.True(t, repo.archived(t, grandchild.ID))
	assert.False(t, repo.archived(t, unrelated.ID))
}

func TestRestoreCascadesToDescendants(t *testing.T) {
	svc, repo, jobs := newTestService(t)
	ctx := context.Background()

	root := seedDoc(t, repo, "alice", nil, true)
	child := seedDoc(t, repo, "alice", &root.ID, false)

	_, job, err := svc.Archive(ctx, "alice", root.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return jobs.status(t, job.ID) == JobDone
	}, 2*time.Second, 10*time.Millisecond)

	_, job, err = svc.Restore(ctx, "alice", root.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return jobs.status(t, job.ID) == JobDone
	}, 2*time.Second, 10*time.Millisecond)

	assert.False(t, repo.archived(t, root.ID))
	assert.False(t, repo.archived(t, child.ID))
	// restoring from the top keeps the link intact
	require.NotNil(t, repo.parent(t, child.ID))
	assert.Equal(t, root.ID, *repo.parent(t, child.ID))
}

func TestRestoreUnderArchivedParentDetaches(t *testing.T) {
	svc, repo, jobs := newTestService(t)
	ctx := context.Background()

	root := seedDoc(t, repo, "alice", nil, true)
	child := seedDoc(t, repo, "alice", &root.ID, false)

	_, job, err := svc.Archive(ctx, "alice", root.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return jobs.status(t, job.ID) == JobDone
	}, 2*time.Second, 10*time.Millisecond)

	doc, job, err := svc.Restore(ctx, "alice", child.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return jobs.status(t, job.ID) == JobDone
	}, 2*time.Second, 10*time.Millisecond)

	assert.False(t, doc.IsArchived)
	assert.Nil(t, repo.parent(t, child.ID))
	assert.True(t, repo.archived(t, root.ID))
}

func TestRemoveDetachesChildren(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	folder := seedDoc(t, repo, "alice", nil, true)
	child := seedDoc(t, repo, "alice", &folder.ID, false)

	require.NoError(t, svc.Remove(ctx, "alice", folder.ID))

	_, err := repo.GetByID(ctx, folder.ID)
	assert.IsType(t, &errors.NotFoundError{}, err)
	assert.Nil(t, repo.parent(t, child.ID))
}

func TestGetByIDAccess(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	private := seedDoc(t, repo, "alice", nil, false)

	published := seedDoc(t, repo, "alice", nil, false)
	published.Published = true
	require.NoError(t, repo.Update(ctx, published))

	archivedPublished := seedDoc(t, repo, "alice", nil, false)
	archivedPublished.Published = true
	archivedPublished.IsArchived = true
	require.NoError(t, repo.Update(ctx, archivedPublished))

	alice := "alice"
	bob := "bob"

	// anonymous readers see published documents only
	_, err := svc.GetByID(ctx, nil, published.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, nil, private.ID)
	assert.IsType(t, &errors.UnauthorizedError{}, err)

	_, err = svc.GetByID(ctx, nil, archivedPublished.ID)
	assert.IsType(t, &errors.UnauthorizedError{}, err)

	// the owner sees everything
	_, err = svc.GetByID(ctx, &alice, private.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, &alice, archivedPublished.ID)
	assert.NoError(t, err)

	// other users only see published
	_, err = svc.GetByID(ctx, &bob, private.ID)
	assert.IsType(t, &errors.ForbiddenError{}, err)

	_, err = svc.GetByID(ctx, &bob, published.ID)
	assert.NoError(t, err)
}

func TestRecordView(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	published := seedDoc(t, repo, "alice", nil, false)
	published.Published = true
	require.NoError(t, repo.Update(ctx, published))

	private := seedDoc(t, repo, "alice", nil, false)

	require.NoError(t, svc.RecordView(ctx, published.ID))
	require.NoError(t, svc.RecordView(ctx, published.ID))

	doc, err := repo.GetByID(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Views)

	err = svc.RecordView(ctx, private.ID)
	assert.IsType(t, &errors.NotFoundError{}, err)
}

func TestUpdateMergesFields(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	doc := seedDoc(t, repo, "alice", nil, false)

	title := "renamed"
	content := "# hello"
	published := true
	updated, err := svc.Update(ctx, "alice", doc.ID, UpdateDocumentInput{
		Title:     &title,
		Content:   &content,
		Published: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	require.NotNil(t, updated.Content)
	assert.Equal(t, "# hello", *updated.Content)
	assert.True(t, updated.Published)

	// untouched fields survive a partial update
	icon := ":rocket:"
	updated, err = svc.Update(ctx, "alice", doc.ID, UpdateDocumentInput{Icon: &icon})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Published)
}

func TestRemoveIcon(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	doc := seedDoc(t, repo, "alice", nil, false)
	icon := ":rocket:"
	_, err := svc.Update(ctx, "alice", doc.ID, UpdateDocumentInput{Icon: &icon})
	require.NoError(t, err)

	updated, err := svc.RemoveIcon(ctx, "alice", doc.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Icon)
}
