package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration-style test: runs only if TEST_DATABASE_URL env is set and the
// todos table exists.
func TestTodoRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	repo := NewTodoRepository(pool)

	todo := &domain.Todo{Task: "integration test task"}
	if err := repo.Insert(ctx, todo); err != nil {
		t.Fatalf("insert: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, todo.ID)

	if todo.ID == 0 {
		t.Fatal("insert did not assign an id")
	}
	if todo.CreatedAt.IsZero() {
		t.Fatal("insert did not assign created_at")
	}

	// toggle twice returns to the original state
	flipped, err := repo.Toggle(ctx, todo.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !flipped.IsComplete {
		t.Fatal("expected is_complete=true after first toggle")
	}
	back, err := repo.Toggle(ctx, todo.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if back.IsComplete {
		t.Fatal("expected is_complete=false after second toggle")
	}

	// partial update keeps omitted fields
	task := "renamed task"
	updated, err := repo.Update(ctx, todo.ID, domain.TodoPatch{Task: &task})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Task != task || updated.IsComplete {
		t.Fatalf("unexpected todo after update: %+v", updated)
	}

	if err := repo.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, todo.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, todo.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}
