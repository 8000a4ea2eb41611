package ledger

import (
	"finance-ledger-go/internal/models"
)

func (s *LedgerSuite) TestCreateCategoryDefaults() {
	c, err := s.categories.Create(s.ctx, s.alice, CategoryInput{Name: " Rent ", Kind: models.KindExpense})
	s.Require().NoError(err)
	s.NotEmpty(c.ID)
	s.Equal("Rent", c.Name)
	s.Equal(models.DefaultCategoryIcon, c.Icon)
	s.Equal(models.DefaultCategoryColor, c.Color)
	s.Equal(s.alice, c.UserID)
}

func (s *LedgerSuite) TestCreateCategoryValidation() {
	_, err := s.categories.Create(s.ctx, s.alice, CategoryInput{Name: "", Kind: models.KindExpense})
	s.assertKind(err, ErrInvalidInput)
	_, err = s.categories.Create(s.ctx, s.alice, CategoryInput{Name: "X", Kind: "transfer"})
	s.assertKind(err, ErrInvalidInput)
}

func (s *LedgerSuite) TestCreateCategoryRejectsDuplicateNameAndKind() {
	s.mustCategory(s.alice, "Outros", models.KindExpense)
	s.mustCategory(s.alice, "Outros", models.KindIncome)
	s.mustCategory(s.bob, "Outros", models.KindExpense)

	_, err := s.categories.Create(s.ctx, s.alice, CategoryInput{Name: "Outros", Kind: models.KindExpense})
	s.assertKind(err, ErrConflict)
}

func (s *LedgerSuite) TestListCategoriesOrderedAndFiltered() {
	s.mustCategory(s.alice, "Transporte", models.KindExpense)
	s.mustCategory(s.alice, "Alimentação", models.KindExpense)
	s.mustCategory(s.alice, "Salário", models.KindIncome)
	s.mustCategory(s.bob, "Bob Only", models.KindExpense)

	all, err := s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"Alimentação", "Salário", "Transporte"}, []string{all[0].Name, all[1].Name, all[2].Name})

	expenses, err := s.categories.List(s.ctx, s.alice, models.KindExpense)
	s.Require().NoError(err)
	s.Len(expenses, 2)
	for _, c := range expenses {
		s.Equal(models.KindExpense, c.Kind)
	}
}

func (s *LedgerSuite) TestCategoryOwnershipIsolation() {
	c := s.mustCategory(s.alice, "Rent", models.KindExpense)

	_, err := s.categories.Get(s.ctx, s.bob, c.ID)
	s.assertKind(err, ErrNotFound)
	_, err = s.categories.Update(s.ctx, s.bob, c.ID, CategoryPatch{Name: Some("Hijacked")})
	s.assertKind(err, ErrNotFound)
	s.assertKind(s.categories.Delete(s.ctx, s.bob, c.ID), ErrNotFound)

	got, err := s.categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("Rent", got.Name)

	bobs, err := s.categories.List(s.ctx, s.bob, "")
	s.Require().NoError(err)
	s.Empty(bobs)
}

func (s *LedgerSuite) TestUpdateCategoryAppliesOnlyPresentFields() {
	c := s.mustCategory(s.alice, "Rent", models.KindExpense)

	updated, err := s.categories.Update(s.ctx, s.alice, c.ID, CategoryPatch{Color: Some("#000000")})
	s.Require().NoError(err)
	s.Equal("Rent", updated.Name)
	s.Equal(models.KindExpense, updated.Kind)
	s.Equal("#000000", updated.Color)

	got, err := s.categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("#000000", got.Color)
	s.Equal(models.DefaultCategoryIcon, got.Icon)
}

func (s *LedgerSuite) TestUpdateCategoryRejectsEmptyOrNull() {
	c := s.mustCategory(s.alice, "Rent", models.KindExpense)

	_, err := s.categories.Update(s.ctx, s.alice, c.ID, CategoryPatch{Name: Some("")})
	s.assertKind(err, ErrInvalidInput)
	_, err = s.categories.Update(s.ctx, s.alice, c.ID, CategoryPatch{Icon: Null[string]()})
	s.assertKind(err, ErrInvalidInput)
	_, err = s.categories.Update(s.ctx, s.alice, c.ID, CategoryPatch{Kind: Some(models.Kind("savings"))})
	s.assertKind(err, ErrInvalidInput)

	got, err := s.categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("Rent", got.Name)
}

func (s *LedgerSuite) TestUpdateCategoryRenameCollision() {
	s.mustCategory(s.alice, "Rent", models.KindExpense)
	other := s.mustCategory(s.alice, "Housing", models.KindExpense)

	_, err := s.categories.Update(s.ctx, s.alice, other.ID, CategoryPatch{Name: Some("Rent")})
	s.assertKind(err, ErrConflict)

	same, err := s.categories.Update(s.ctx, s.alice, other.ID, CategoryPatch{Name: Some("Housing")})
	s.Require().NoError(err)
	s.Equal("Housing", same.Name)
}

func (s *LedgerSuite) TestDeleteCategory() {
	c := s.mustCategory(s.alice, "Rent", models.KindExpense)
	s.Require().NoError(s.categories.Delete(s.ctx, s.alice, c.ID))

	_, err := s.categories.Get(s.ctx, s.alice, c.ID)
	s.assertKind(err, ErrNotFound)
	s.assertKind(s.categories.Delete(s.ctx, s.alice, c.ID), ErrNotFound)
}

func (s *LedgerSuite) TestDeleteReferencedCategoryConflicts() {
	c := s.mustCategory(s.alice, "Rent", models.KindExpense)
	txn := s.mustTxn(s.alice, models.KindExpense, "900", "2026-03-05")
	_, err := s.ledger.Update(s.ctx, s.alice, txn.ID, TransactionPatch{CategoryID: Some(c.ID)})
	s.Require().NoError(err)

	err = s.categories.Delete(s.ctx, s.alice, c.ID)
	s.assertKind(err, ErrConflict)
	s.Contains(err.Error(), "referenced by transactions")

	still, err := s.categories.Get(s.ctx, s.alice, c.ID)
	s.Require().NoError(err)
	s.Equal("Rent", still.Name)

	after, err := s.ledger.Get(s.ctx, s.alice, txn.ID)
	s.Require().NoError(err)
	s.Require().NotNil(after.CategoryID)
	s.Equal(c.ID, *after.CategoryID)
	s.Equal("900", after.Amount.String())
}
