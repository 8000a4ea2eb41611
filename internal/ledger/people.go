package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance-ledger-go/internal/models"
)

type PersonInput struct {
	Name string `json:"name"`
}

type PersonPatch struct {
	Name Optional[string] `json:"name"`
}

// People owns the per-user list of people transactions are attributed to.
type People struct {
	db *gorm.DB
}

func NewPeople(db *gorm.DB) *People {
	return &People{db: db}
}

func (s *People) List(ctx context.Context, userID string) ([]models.Employee, error) {
	people := []models.Employee{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name asc").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

func (s *People) Get(ctx context.Context, userID, id string) (*models.Employee, error) {
	return findPerson(s.db.WithContext(ctx), userID, id)
}

func findPerson(db *gorm.DB, userID, id string) (*models.Employee, error) {
	var person models.Employee
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("person")
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return &person, nil
}

func (s *People) Create(ctx context.Context, userID string, in PersonInput) (*models.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	person := models.Employee{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&person).Error; err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return &person, nil
}

func (s *People) Update(ctx context.Context, userID, id string, patch PersonPatch) (*models.Employee, error) {
	var person *models.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if person, err = findPerson(tx, userID, id); err != nil {
			return err
		}
		if !patch.Name.Set {
			return nil
		}
		name := strings.TrimSpace(patch.Name.Value)
		if patch.Name.Null || name == "" {
			return invalidf("name cannot be empty")
		}
		person.Name = name
		return tx.Model(person).Update("name", name).Error
	})
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, fmt.Errorf("update person: %w", err)
	}
	return person, nil
}

// Delete is unconditional; transactions attributed to the person keep the id.
func (s *People) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Employee{})
	if res.Error != nil {
		return fmt.Errorf("delete person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("person")
	}
	return nil
}
