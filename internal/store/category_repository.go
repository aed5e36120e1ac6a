package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XiaoChennnng/Deadliner-Client/internal/logger"
	"github.com/XiaoChennnng/Deadliner-Client/models"
)

type categoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	return &categoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *categoryRepository) CreateCategory(ctx context.Context, category models.Category) error {
	log := logger.FromContext(ctx)

	if category.ID == "" || category.Name == "" {
		return fmt.Errorf("%w: category requires id and name", ErrInvalidInput)
	}

	createdAt := category.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := c.DB.ExecContext(ctx, insertCategory,
		category.ID,
		category.Name,
		nullableString(category.Color),
		nullableString(category.Icon),
		createdAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w (id=%s)", ErrCategoryAlreadyExists, category.ID)
		}
		log.Err(err).
			Str("func", "categoryRepository.CreateCategory").
			Str("id", category.ID).
			Msg("failed to execute insert for category")
		return fmt.Errorf("failed to create category (id=%s): %w", category.ID, err)
	}

	return nil
}

func (c *categoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, getAllCategories)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.GetAllCategories").
			Msg("failed to execute query for getting all categories")
		return nil, fmt.Errorf("failed to query all categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var (
			category  models.Category
			color     sql.NullString
			icon      sql.NullString
			createdAt int64
		)
		if scanErr := rows.Scan(&category.ID, &category.Name, &color, &icon, &createdAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "categoryRepository.GetAllCategories").
				Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		category.Color = color.String
		category.Icon = icon.String
		category.CreatedAt = time.UnixMilli(createdAt)
		categories = append(categories, category)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rowsErr)
	}

	return categories, nil
}

// DeleteCategory hides the category only. Tasks keep their category name
// and are left untouched.
func (c *categoryRepository) DeleteCategory(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := c.DB.ExecContext(ctx, softDeleteCategory, id)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.DeleteCategory").
			Str("id", id).
			Msg("failed to execute delete for category")
		return fmt.Errorf("failed to delete category (id=%s): %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrCategoryNotFound, id)
	}

	return nil
}
