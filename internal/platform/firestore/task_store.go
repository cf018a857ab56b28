package firestore

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	gcfirestore "cloud.google.com/go/firestore"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// Document layout of the tasks collection.
const (
	// CollectionName is the collection holding one document per task.
	CollectionName = "tasks"

	titleField     = "title"
	createdAtField = "createdAt"
)

// taskDocument is the stored shape of a task. The zero CreatedAt is replaced
// by the commit timestamp on write.
type taskDocument struct {
	Title     string    `firestore:"title"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// Option customizes a FirestoreTaskStore.
type Option func(*FirestoreTaskStore)

// WithCollection stores tasks in the named collection instead of CollectionName.
func WithCollection(name string) Option {
	return func(s *FirestoreTaskStore) {
		s.collection = name
	}
}

// FirestoreTaskStore implements the store.TaskStore interface
// using a Firestore collection as the storage backend.
type FirestoreTaskStore struct {
	client     *gcfirestore.Client
	collection string
	logger     *slog.Logger
}

// Ensure FirestoreTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*FirestoreTaskStore)(nil)

// NewFirestoreTaskStore creates a TaskStore backed by client.
// The client is owned by the caller and must outlive the store.
func NewFirestoreTaskStore(client *gcfirestore.Client, logger *slog.Logger, opts ...Option) *FirestoreTaskStore {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("firestore client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &FirestoreTaskStore{
		client:     client,
		collection: CollectionName,
		logger:     logger.With(slog.String("component", "task_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FirestoreTaskStore) tasks() *gcfirestore.CollectionRef {
	return s.client.Collection(s.collection)
}

// maxDocumentIDBytes is Firestore's limit on the size of a document ID.
const maxDocumentIDBytes = 1500

// docRef returns the reference for id, or errInvalidDocumentID when id
// cannot name a document directly inside the collection.
func (s *FirestoreTaskStore) docRef(id string) (*gcfirestore.DocumentRef, error) {
	if !validDocumentID(id) {
		return nil, errInvalidDocumentID
	}
	return s.tasks().Doc(id), nil
}

// validDocumentID applies the document ID rules Firestore enforces server-side
// with InvalidArgument. Such IDs can never name a stored task.
func validDocumentID(id string) bool {
	switch {
	case id == "", id == ".", id == "..":
		return false
	case len(id) > maxDocumentIDBytes:
		return false
	case strings.Contains(id, "/"), !utf8.ValidString(id):
		return false
	case len(id) >= 4 && strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"):
		return false
	}
	return true
}

// Create implements store.TaskStore.Create.
func (s *FirestoreTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ref := s.tasks().NewDoc()
	result, err := ref.Set(ctx, taskDocument{Title: title})
	if err != nil {
		log.Error("failed to create task document", slog.String("error", err.Error()))
		return nil, MapError("create", "failed to write document", err)
	}

	log.Info("task created successfully", slog.String("task_id", ref.ID))
	return &domain.Task{
		ID:        ref.ID,
		Title:     title,
		CreatedAt: result.UpdateTime,
	}, nil
}

// GetAll implements store.TaskStore.GetAll.
func (s *FirestoreTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	docs, err := s.tasks().Documents(ctx).GetAll()
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list task documents", slog.String("error", err.Error()))
		return nil, MapError("get_all", "failed to list documents", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, _ := taskFromSnapshot(doc)
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
// Returns store.ErrTaskNotFound if the document does not exist.
func (s *FirestoreTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ref, err := s.docRef(id)
	if err != nil {
		log.Debug("task not found", slog.String("task_id", id), slog.String("reason", err.Error()))
		return nil, store.ErrTaskNotFound
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			log.Debug("task not found", slog.String("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task document",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, MapError("find_by_id", "failed to read document", err)
	}
	if !doc.Exists() {
		return nil, store.ErrTaskNotFound
	}

	task, _ := taskFromSnapshot(doc)
	return &task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
// The existence check and the delete are two separate round trips.
func (s *FirestoreTaskStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ref, err := s.docRef(id)
	if err != nil {
		return false, nil
	}

	doc, err := ref.Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			log.Debug("task to delete not found", slog.String("task_id", id))
			return false, nil
		}
		log.Error("failed to check task document",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return false, MapError("delete_by_id", "failed to read document", err)
	}
	if !doc.Exists() {
		return false, nil
	}

	if _, err := ref.Delete(ctx); err != nil {
		log.Error("failed to delete task document",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return false, MapError("delete_by_id", "failed to delete document", err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id))
	return true, nil
}

// SearchByTitle implements store.TaskStore.SearchByTitle.
// Firestore has no substring predicate, so the whole collection is fetched
// and filtered here.
func (s *FirestoreTaskStore) SearchByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	docs, err := s.tasks().Documents(ctx).GetAll()
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list task documents for search", slog.String("error", err.Error()))
		return nil, MapError("search_by_title", "failed to list documents", err)
	}

	tasks := make([]domain.Task, 0)
	for _, doc := range docs {
		task, title := taskFromSnapshot(doc)
		if store.TitleMatches(title, term) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// TopN implements store.TaskStore.TopN.
func (s *FirestoreTaskStore) TopN(ctx context.Context, n int) ([]domain.Task, error) {
	if n <= 0 {
		return []domain.Task{}, nil
	}

	docs, err := s.tasks().
		OrderBy(createdAtField, gcfirestore.Desc).
		Limit(n).
		Documents(ctx).
		GetAll()
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to query latest tasks",
				slog.String("error", err.Error()),
				slog.Int("limit", n))
		return nil, MapError("top_n", "failed to query documents", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		task, _ := taskFromSnapshot(doc)
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// DeleteAll implements store.TaskStore.DeleteAll.
func (s *FirestoreTaskStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docs, err := s.tasks().Documents(ctx).GetAll()
	if err != nil {
		log.Error("failed to list task documents for reset", slog.String("error", err.Error()))
		return MapError("delete_all", "failed to list documents", err)
	}

	deleted, err := deleteEach(ctx, docs, func(ctx context.Context, ref *gcfirestore.DocumentRef) error {
		_, err := ref.Delete(ctx)
		return err
	})
	if err != nil {
		log.Error("reset stopped part way",
			slog.String("error", err.Error()),
			slog.String("task_id", docs[deleted].Ref.ID),
			slog.Int("deleted", deleted),
			slog.Int("total", len(docs)))
		return MapError("delete_all", "failed to delete document", err)
	}

	log.Info("all tasks deleted", slog.Int("count", len(docs)))
	return nil
}

// deleteEach deletes docs in order with del and stops at the first failure.
// It returns how many documents were deleted before that failure.
func deleteEach(
	ctx context.Context,
	docs []*gcfirestore.DocumentSnapshot,
	del func(context.Context, *gcfirestore.DocumentRef) error,
) (int, error) {
	for i, doc := range docs {
		if err := del(ctx, doc.Ref); err != nil {
			return i, err
		}
	}
	return len(docs), nil
}

// taskFromSnapshot maps a document to a Task. The second result is the raw
// title, nil when the field is missing or not a string.
func taskFromSnapshot(doc *gcfirestore.DocumentSnapshot) (domain.Task, *string) {
	data := doc.Data()
	task := domain.Task{ID: doc.Ref.ID}

	var title *string
	if v, ok := data[titleField].(string); ok {
		title = &v
		task.Title = v
	}
	if createdAt, ok := data[createdAtField].(time.Time); ok {
		task.CreatedAt = createdAt
	}
	return task, title
}
