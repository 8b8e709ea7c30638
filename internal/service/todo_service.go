package service

import (
	"context"
	"strings"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/supabase"
)

// TodoStore is the slice of the repository the service depends on.
type TodoStore interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	Insert(ctx context.Context, t *domain.Todo) error
	Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	Toggle(ctx context.Context, id int64) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// ObjectStore is the slice of the storage adapter the service depends on.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	Remove(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// ImageUpload is a file received alongside a create or update.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type TodoService struct {
	repo   TodoStore
	store  ObjectStore
	bucket string
	prefix string
	now    func() time.Time
}

func NewTodoService(repo TodoStore, store ObjectStore, bucket, prefix string) *TodoService {
	return &TodoService{
		repo:   repo,
		store:  store,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *TodoService) List(ctx context.Context) ([]*domain.Todo, error) {
	return s.repo.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new todo, uploading the image first when one is supplied.
// If the insert fails after a successful upload the object is orphaned; that
// gap is accepted, the record write is the primary step.
func (s *TodoService) Create(ctx context.Context, task string, image *ImageUpload) (*domain.Todo, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return nil, domain.ErrTaskRequired
	}

	todo := &domain.Todo{Task: task, IsComplete: false}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		todo.ImageURL = &url
	}

	if err := s.repo.Insert(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update applies a partial update. A replacement image deletes the prior
// object best-effort before the new one is uploaded.
func (s *TodoService) Update(ctx context.Context, id int64, task *string, isComplete *bool, image *ImageUpload) (*domain.Todo, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := domain.TodoPatch{IsComplete: isComplete}
	if task != nil {
		trimmed := strings.TrimSpace(*task)
		if trimmed == "" {
			return nil, domain.ErrTaskRequired
		}
		patch.Task = &trimmed
	}

	if image != nil {
		if current.ImageURL != nil {
			s.removeObject(ctx, *current.ImageURL)
		}
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &url
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *TodoService) Toggle(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.repo.Toggle(ctx, id)
}

// Delete removes the todo's image object best-effort, then the row. A missing
// row reports ErrNotFound and skips the image lookup entirely.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if current.ImageURL != nil {
		s.removeObject(ctx, *current.ImageURL)
	}

	return s.repo.Delete(ctx, id)
}

func (s *TodoService) uploadImage(ctx context.Context, image *ImageUpload) (string, error) {
	path := supabase.ObjectPath(s.prefix, image.Filename, s.now())
	if err := s.store.Upload(ctx, s.bucket, path, image.Data, image.ContentType); err != nil {
		return "", err
	}
	return s.store.PublicURL(s.bucket, path), nil
}

// removeObject is the fire-and-forget cleanup step: failures are logged, never
// propagated, so a stuck storage service cannot block record mutations.
func (s *TodoService) removeObject(ctx context.Context, imageURL string) {
	path := supabase.PathFromPublicURL(imageURL, s.bucket)
	if path == "" {
		return
	}
	if err := s.store.Remove(ctx, s.bucket, path); err != nil {
		logger.Error("failed to delete image from storage", "path", path, "error", err)
	}
}
