package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/models"
)

func newSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return &Seeder{DB: db, Hasher: &hash.Hasher{Cost: bcrypt.MinCost}}, db
}

func TestSeedPopulatesBaseline(t *testing.T) {
	ctx := context.Background()
	s, db := newSeeder(t)
	require.NoError(t, s.Run(ctx))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, admin.IsActive)
	require.True(t, s.Hasher.Check(admin.PasswordHash, "admin123"))

	count := func(m any) int64 {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		return n
	}
	require.EqualValues(t, 2, count(&models.User{}))
	require.EqualValues(t, 5, count(&models.Brand{}))
	require.EqualValues(t, 29, count(&models.MinerModel{}))
	require.EqualValues(t, 9, count(&models.PartCategory{}))
	require.EqualValues(t, 4, count(&models.Part{}))
	require.EqualValues(t, 5, count(&models.WarrantyProfile{}))
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, db := newSeeder(t)
	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	var users, brands int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Brand{}).Count(&brands).Error)
	require.EqualValues(t, 2, users)
	require.EqualValues(t, 5, brands)
}

func TestSeedKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	s, db := newSeeder(t)
	require.NoError(t, s.Run(ctx))

	// a changed password must survive a re-seed
	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "admin").
		Update("password_hash", "custom-hash").Error)
	require.NoError(t, s.Run(ctx))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	require.Equal(t, "custom-hash", admin.PasswordHash)
}
