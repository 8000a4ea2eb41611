package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance-ledger-go/internal/models"
)

type CategoryInput struct {
	Name  string      `json:"name"`
	Kind  models.Kind `json:"type"`
	Icon  string      `json:"icon"`
	Color string      `json:"color"`
}

type CategoryPatch struct {
	Name  Optional[string]      `json:"name"`
	Kind  Optional[models.Kind] `json:"type"`
	Icon  Optional[string]      `json:"icon"`
	Color Optional[string]      `json:"color"`
}

// Categories owns per-user income and expense categories.
type Categories struct {
	db *gorm.DB
}

func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

// List returns the user's categories by name; an empty kind means all.
func (s *Categories) List(ctx context.Context, userID string, kind models.Kind) ([]models.Category, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("type = ?", kind)
	}
	categories := []models.Category{}
	if err := query.Order("name asc, type asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Categories) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	return findCategory(s.db.WithContext(ctx), userID, id)
}

func findCategory(db *gorm.DB, userID, id string) (*models.Category, error) {
	var category models.Category
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("category")
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

func (s *Categories) Create(ctx context.Context, userID string, in CategoryInput) (*models.Category, error) {
	category := models.Category{
		UserID: userID,
		Name:   strings.TrimSpace(in.Name),
		Kind:   in.Kind,
		Icon:   in.Icon,
		Color:  in.Color,
	}
	if category.Name == "" {
		return nil, invalidf("name is required")
	}
	if !category.Kind.Valid() {
		return nil, invalidf("type must be %q or %q", models.KindIncome, models.KindExpense)
	}
	if category.Icon == "" {
		category.Icon = models.DefaultCategoryIcon
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueCategory(tx, &category); err != nil {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, categoryWriteError("create", err)
	}
	return &category, nil
}

func (s *Categories) Update(ctx context.Context, userID, id string, patch CategoryPatch) (*models.Category, error) {
	var category *models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if category, err = findCategory(tx, userID, id); err != nil {
			return err
		}

		changes := map[string]any{}
		if patch.Name.Set {
			name := strings.TrimSpace(patch.Name.Value)
			if patch.Name.Null || name == "" {
				return invalidf("name cannot be empty")
			}
			category.Name, changes["name"] = name, name
		}
		if patch.Kind.Set {
			if patch.Kind.Null || !patch.Kind.Value.Valid() {
				return invalidf("type must be %q or %q", models.KindIncome, models.KindExpense)
			}
			category.Kind, changes["type"] = patch.Kind.Value, patch.Kind.Value
		}
		if patch.Icon.Set {
			if patch.Icon.Null || patch.Icon.Value == "" {
				return invalidf("icon cannot be empty")
			}
			category.Icon, changes["icon"] = patch.Icon.Value, patch.Icon.Value
		}
		if patch.Color.Set {
			if patch.Color.Null || patch.Color.Value == "" {
				return invalidf("color cannot be empty")
			}
			category.Color, changes["color"] = patch.Color.Value, patch.Color.Value
		}
		if len(changes) == 0 {
			return nil
		}
		if patch.Name.Set || patch.Kind.Set {
			if err := ensureUniqueCategory(tx, category); err != nil {
				return err
			}
		}
		return tx.Model(category).Updates(changes).Error
	})
	if err != nil {
		return nil, categoryWriteError("update", err)
	}
	return category, nil
}

// Delete refuses while any transaction still references the category.
func (s *Categories) Delete(ctx context.Context, userID, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findCategory(tx, userID, id)
		if err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", category.ID).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return errCategoryInUse
		}
		return tx.Delete(category).Error
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errCategoryInUse
	}
	if err != nil {
		return categoryWriteError("delete", err)
	}
	return nil
}

var errCategoryInUse = conflict("cannot delete: category is referenced by transactions")

func ensureUniqueCategory(tx *gorm.DB, c *models.Category) error {
	var count int64
	err := tx.Model(&models.Category{}).
		Where("user_id = ? AND type = ? AND name = ? AND id <> ?", c.UserID, c.Kind, c.Name, c.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return conflict("category already exists")
	}
	return nil
}

func categoryWriteError(op string, err error) error {
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	if isDuplicate(err) {
		return conflict("category already exists")
	}
	return fmt.Errorf("%s category: %w", op, err)
}
