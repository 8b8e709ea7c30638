package handlers

import (
	"context"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"
)

// Todos is the slice of the todo service the handlers depend on.
type Todos interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Create(ctx context.Context, task string, image *service.ImageUpload) (*domain.Todo, error)
	Update(ctx context.Context, id int64, task *string, isComplete *bool, image *service.ImageUpload) (*domain.Todo, error)
	Toggle(ctx context.Context, id int64) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Identity is the slice of the identity adapter the handlers depend on.
type Identity interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.User, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (*domain.User, error)
}

type Handler struct {
	Todos  Todos
	Auth   Identity
	Events *ws.Hub
}

func NewHandler(todos Todos, auth Identity, events *ws.Hub) *Handler {
	return &Handler{Todos: todos, Auth: auth, Events: events}
}

func (h *Handler) publish(ev ws.TodoEvent) {
	if h.Events != nil {
		h.Events.Publish(ev)
	}
}
