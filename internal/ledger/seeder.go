package ledger

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"finance-ledger-go/internal/models"
)

// DefaultCategories is the starter set given to users with no categories.
var DefaultCategories = []CategoryInput{
	{Name: "Salário", Kind: models.KindIncome, Color: "#10b981", Icon: "circle"},
	{Name: "Freelance", Kind: models.KindIncome, Color: "#3b82f6", Icon: "circle"},
	{Name: "Investimentos", Kind: models.KindIncome, Color: "#8b5cf6", Icon: "circle"},
	{Name: "Alimentação", Kind: models.KindExpense, Color: "#f97316", Icon: "circle"},
	{Name: "Transporte", Kind: models.KindExpense, Color: "#06b6d4", Icon: "circle"},
	{Name: "Moradia", Kind: models.KindExpense, Color: "#ec4899", Icon: "circle"},
	{Name: "Saúde", Kind: models.KindExpense, Color: "#ef4444", Icon: "circle"},
	{Name: "Lazer", Kind: models.KindExpense, Color: "#eab308", Icon: "circle"},
}

// Seeder gives a user the default categories at most once, the first time
// their list is empty. The claim on users.categories_seeded_at is what makes
// it once; calls for the same user are collapsed, and the (user, type, name)
// unique index turns a cross-process race into a no-op.
type Seeder struct {
	db    *gorm.DB
	group singleflight.Group
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// EnsureDefaults reports how many categories it inserted.
func (s *Seeder) EnsureDefaults(ctx context.Context, userID string) (int, error) {
	// The shared call must not die with whichever caller started it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(userID, func() (any, error) {
		return s.seed(shared, userID)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (s *Seeder) seed(ctx context.Context, userID string) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.User{}).
			Where("id = ? AND categories_seeded_at IS NULL", userID).
			Update("categories_seeded_at", time.Now().UTC())
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		batch := make([]models.Category, 0, len(DefaultCategories))
		for _, c := range DefaultCategories {
			batch = append(batch, models.Category{UserID: userID, Name: c.Name, Kind: c.Kind, Icon: c.Icon, Color: c.Color})
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}
		created = len(batch)
		return nil
	})
	if isDuplicate(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("seed default categories: %w", err)
	}
	return created, nil
}
