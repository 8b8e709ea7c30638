package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = "id, task, is_complete, image_url, created_at"

type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

// List returns all todos newest first.
func (r *TodoRepository) List(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := r.db.Query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.IsComplete, &t.ImageURL, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)

	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Task, &t.IsComplete, &t.ImageURL, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Insert(ctx context.Context, t *domain.Todo) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO todos (task, is_complete, image_url) VALUES ($1, $2, $3) RETURNING id, created_at`,
		t.Task, t.IsComplete, t.ImageURL,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update writes only the fields set in the patch; omitted fields keep their
// current value.
func (r *TodoRepository) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	var sets []string
	var args []any

	if patch.Task != nil {
		args = append(args, *patch.Task)
		sets = append(sets, fmt.Sprintf("task = $%d", len(args)))
	}
	if patch.IsComplete != nil {
		args = append(args, *patch.IsComplete)
		sets = append(sets, fmt.Sprintf("is_complete = $%d", len(args)))
	}
	if patch.ImageURL != nil {
		args = append(args, *patch.ImageURL)
		sets = append(sets, fmt.Sprintf("image_url = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE todos SET %s WHERE id = $%d RETURNING `+todoColumns,
		strings.Join(sets, ", "), len(args),
	)

	var t domain.Todo
	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Task, &t.IsComplete, &t.ImageURL, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Toggle flips is_complete in a single statement, so concurrent togglers of
// the same id cannot lose a flip.
func (r *TodoRepository) Toggle(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE todos SET is_complete = NOT is_complete WHERE id = $1 RETURNING `+todoColumns, id)

	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Task, &t.IsComplete, &t.ImageURL, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
