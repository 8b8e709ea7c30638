package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/service"
	"todo_webapp/internal/supabase"
	"todo_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

// ListTodos returns all todos newest first.
func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.Todos.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to load todos"})
		return
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// CreateTodo accepts multipart form data: task (required) and headerImage
// (optional).
func (h *Handler) CreateTodo(c *gin.Context) {
	task := c.PostForm("task")

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid header image"})
		return
	}

	todo, err := h.Todos.Create(c.Request.Context(), task, image)
	if err != nil {
		h.writeTodoError(c, err, "failed to create todo")
		return
	}

	h.publish(ws.TodoEvent{Type: ws.EventCreated, Todo: todo})
	c.JSON(http.StatusCreated, gin.H{"todo": todo})
}

func (h *Handler) GetTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.Todos.Get(c.Request.Context(), id)
	if err != nil {
		h.writeTodoError(c, err, "failed to load todo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// UpdateTodo applies a partial update from multipart form data: task,
// is_complete and headerImage are each optional; omitted fields keep their
// current value.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var task *string
	if v, present := c.GetPostForm("task"); present {
		task = &v
	}

	var isComplete *bool
	if v, present := c.GetPostForm("is_complete"); present {
		b := v == "true"
		isComplete = &b
	}

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid header image"})
		return
	}

	todo, err := h.Todos.Update(c.Request.Context(), id, task, isComplete, image)
	if err != nil {
		h.writeTodoError(c, err, "failed to update todo")
		return
	}

	h.publish(ws.TodoEvent{Type: ws.EventUpdated, Todo: todo})
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// ToggleTodo flips is_complete and returns the updated record.
func (h *Handler) ToggleTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.Todos.Toggle(c.Request.Context(), id)
	if err != nil {
		h.writeTodoError(c, err, "failed to update todo")
		return
	}

	h.publish(ws.TodoEvent{Type: ws.EventToggled, Todo: todo})
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), id); err != nil {
		h.writeTodoError(c, err, "failed to delete todo")
		return
	}

	h.publish(ws.TodoEvent{Type: ws.EventDeleted, ID: id})
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

// todoID parses the :id path parameter. A malformed id matches no record, so
// it reports the same 404 as a missing row.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return 0, false
	}
	return id, true
}

// formImage reads the optional headerImage file from a multipart form.
func formImage(c *gin.Context) (*service.ImageUpload, error) {
	file, err := c.FormFile("headerImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if file.Filename == "" {
		return nil, nil
	}
	return readImage(file)
}

func readImage(file *multipart.FileHeader) (*service.ImageUpload, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// writeTodoError maps domain failures to their status codes; anything
// unexpected gets the generic 400 the route owns.
func (h *Handler) writeTodoError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
	case errors.Is(err, domain.ErrTaskRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task is required"})
	default:
		var storageErr *supabase.StorageError
		if errors.As(err, &storageErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image: " + storageErr.Message})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": fallback})
	}
}
