//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"storegate/internal/identity"
	"storegate/internal/identity/store"
	"storegate/pkg/domain"
	"storegate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "user_credentials"))
}

func (s *PostgresStoreSuite) seed() identity.UserCredential {
	user := identity.UserCredential{
		Identifier:   "user@example.com",
		Email:        "user@example.com",
		PasswordHash: "hash.salt",
		Role:         domain.RoleCustomer,
		SecondaryID:  "sec-123",
	}
	s.Require().NoError(s.store.Save(context.Background(), user))
	return user
}

func (s *PostgresStoreSuite) TestSaveAndGet() {
	ctx := context.Background()
	want := s.seed()

	got, err := s.store.GetByIdentifier(ctx, want.Identifier)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *PostgresStoreSuite) TestGetMissing() {
	_, err := s.store.GetByIdentifier(context.Background(), "missing@example.com")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestNullSecondaryID() {
	ctx := context.Background()
	user := identity.UserCredential{
		Identifier:   "local@example.com",
		Email:        "local@example.com",
		PasswordHash: "hash.salt",
		Role:         domain.RoleCustomer,
	}
	s.Require().NoError(s.store.Save(ctx, user))

	got, err := s.store.GetByIdentifier(ctx, user.Identifier)
	s.Require().NoError(err)
	s.False(got.HasSecondary())
}

func (s *PostgresStoreSuite) TestUpdatePasswordHash() {
	ctx := context.Background()
	user := s.seed()

	s.Require().NoError(s.store.UpdatePasswordHash(ctx, user.Identifier, "new.salt"))

	got, err := s.store.GetByIdentifier(ctx, user.Identifier)
	s.Require().NoError(err)
	s.Equal("new.salt", got.PasswordHash)

	s.ErrorIs(s.store.UpdatePasswordHash(ctx, "missing@example.com", "x"), store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateRole() {
	ctx := context.Background()
	user := s.seed()

	s.Require().NoError(s.store.UpdateRole(ctx, user.Identifier, domain.RoleAdmin))

	got, err := s.store.GetByIdentifier(ctx, user.Identifier)
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, got.Role)
}
