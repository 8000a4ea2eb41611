package ledger

import (
	"context"
	"sync"

	"finance-ledger-go/internal/models"
)

func (s *LedgerSuite) TestSeederCreatesDefaultsOnce() {
	created, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Equal(len(DefaultCategories), created)

	again, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Zero(again)

	list, err := s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	s.Len(list, 8)

	income, err := s.categories.List(s.ctx, s.alice, models.KindIncome)
	s.Require().NoError(err)
	s.Len(income, 3)
}

func (s *LedgerSuite) TestSeederSkipsUsersWithCategories() {
	s.mustCategory(s.alice, "Mine", models.KindExpense)

	for i := 0; i < 2; i++ {
		created, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
		s.Require().NoError(err)
		s.Zero(created)
	}

	list, err := s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *LedgerSuite) TestSeederConcurrentCallsSeedOnce() {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.seeder.EnsureDefaults(s.ctx, s.bob)
			s.NoError(err)
		}()
	}
	wg.Wait()

	list, err := s.categories.List(s.ctx, s.bob, "")
	s.Require().NoError(err)
	s.Len(list, len(DefaultCategories))

	alices, err := s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	s.Empty(alices)
}

func (s *LedgerSuite) TestSeederDoesNotRefillAfterDeletingAll() {
	created, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Equal(len(DefaultCategories), created)

	list, err := s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	for _, c := range list {
		s.Require().NoError(s.categories.Delete(s.ctx, s.alice, c.ID))
	}

	again, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Zero(again)

	list, err = s.categories.List(s.ctx, s.alice, "")
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *LedgerSuite) TestSeederMarksUsersWithOwnCategories() {
	c := s.mustCategory(s.alice, "Mine", models.KindExpense)
	_, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)

	s.Require().NoError(s.categories.Delete(s.ctx, s.alice, c.ID))
	created, err := s.seeder.EnsureDefaults(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Zero(created)
}

func (s *LedgerSuite) TestSeederIgnoresCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	created, err := s.seeder.EnsureDefaults(ctx, s.bob)
	s.Require().NoError(err)
	s.Equal(len(DefaultCategories), created)
}
