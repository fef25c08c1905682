package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Veraticus/expense-tracker/internal/model"
	"github.com/google/uuid"
)

// CategoriesFile is the name of the category collection inside the data directory.
const CategoriesFile = "categories.json"

// DefaultCategories returns the categories written on first run.
func DefaultCategories() []model.Category {
	return []model.Category{
		model.NewCategory("Food", model.CategoryTypeExpense),
		model.NewCategory("Transport", model.CategoryTypeExpense),
		model.NewCategory("Utilities", model.CategoryTypeExpense),
		model.NewCategory("School", model.CategoryTypeExpense),
		model.NewCategory("Salary", model.CategoryTypeIncome),
	}
}

// CategoryStore owns the category collection and its backing file.
type CategoryStore struct {
	path       string
	categories []model.Category
	mu         sync.Mutex
}

// NewCategoryStore loads categories.json from dataDir, seeding the defaults when the
// file does not exist yet.
func NewCategoryStore(dataDir string) (*CategoryStore, error) {
	if err := validateString(dataDir, "dataDir"); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, CategoriesFile)
	categories, err := LoadOrInit(path, DefaultCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}

	slog.Debug("loaded categories", "count", len(categories), "path", path)
	return &CategoryStore{path: path, categories: categories}, nil
}

// Path returns the backing file of the store.
func (s *CategoryStore) Path() string {
	return s.path
}

// GetAll returns a snapshot of every category in insertion order.
func (s *CategoryStore) GetAll(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// GetByID returns the category with the given id, or nil when there is none.
func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cat := range s.categories {
		if cat.ID == id {
			found := cat
			return &found, nil
		}
	}
	return nil, nil // Category not found
}

// Ensure returns the category of the given type whose name matches name ignoring
// case. When none exists a new category is appended and the whole collection is
// written to disk before returning.
func (s *CategoryStore) Ensure(ctx context.Context, name string, categoryType model.CategoryType) (model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return model.Category{}, err
	}
	if err := validateString(name, "name"); err != nil {
		return model.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cat := range s.categories {
		if cat.Type == categoryType && strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}

	cat := model.NewCategory(name, categoryType)
	s.categories = append(s.categories, cat)

	if err := Save(s.path, s.categories); err != nil {
		// Keep memory in step with the file.
		s.categories = s.categories[:len(s.categories)-1]
		return model.Category{}, fmt.Errorf("failed to save categories: %w", err)
	}

	slog.Info("created new category", "name", name, "type", categoryType, "id", cat.ID)
	return cat, nil
}
