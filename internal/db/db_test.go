package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer_directory/internal/config"
	"freelancer_directory/internal/db"
	"freelancer_directory/internal/domain"
	"freelancer_directory/internal/repository"
	"freelancer_directory/internal/testutil"
	"freelancer_directory/internal/utils"
)

func TestDSN(t *testing.T) {
	t.Run("mysql from parts", func(t *testing.T) {
		dsn, err := db.DSN(&config.Config{
			DBDriver:   db.DriverMySQL,
			DBUser:     "app",
			DBPassword: "pw",
			DBHost:     "db.local",
			DBName:     "freelancers",
		})
		require.NoError(t, err)
		assert.Contains(t, dsn, "app:pw@tcp(db.local:3306)/freelancers")
		assert.Contains(t, dsn, "parseTime=true")
		assert.Contains(t, dsn, "clientFoundRows=true")
	})

	t.Run("postgres from parts", func(t *testing.T) {
		dsn, err := db.DSN(&config.Config{
			DBDriver: db.DriverPostgres,
			DBUser:   "app",
			DBHost:   "db.local",
			DBName:   "freelancers",
		})
		require.NoError(t, err)
		assert.Contains(t, dsn, "host=db.local")
		assert.Contains(t, dsn, "port=5432")
	})

	t.Run("explicit dsn wins", func(t *testing.T) {
		dsn, err := db.DSN(&config.Config{DBDriver: db.DriverMySQL, DBDSN: "custom"})
		require.NoError(t, err)
		assert.Equal(t, "custom", dsn)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := db.DSN(&config.Config{DBDriver: "oracle"})
		assert.ErrorIs(t, err, db.ErrUnsupportedDriver)

		_, err = db.Dialector(&config.Config{DBDriver: "oracle", DBDSN: "x"})
		assert.ErrorIs(t, err, db.ErrUnsupportedDriver)
	})
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	repo := repository.NewFreelancerRepository(gdb)
	seed := db.AdminSeed{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "Adm1nPassw0rd",
		PhoneNum: "+1 555 0100",
	}

	created, err := db.SeedAdmin(ctx, repo, seed)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	require.NotNil(t, admin.Password)
	assert.True(t, utils.CheckPassword(*admin.Password, "Adm1nPassw0rd"))

	t.Run("second run is a no-op", func(t *testing.T) {
		created, err := db.SeedAdmin(ctx, repo, seed)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("empty seed is skipped", func(t *testing.T) {
		created, err := db.SeedAdmin(ctx, repo, db.AdminSeed{})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("blank or malformed contact details are rejected", func(t *testing.T) {
		for _, bad := range []db.AdminSeed{
			{Username: "root2", Password: "Adm1nPassw0rd", PhoneNum: "+1 555 0100"},
			{Username: "root2", Password: "Adm1nPassw0rd", Email: "nope", PhoneNum: "+1 555 0100"},
			{Username: "root2", Password: "Adm1nPassw0rd", Email: "root2@example.com"},
			{Username: "root2", Password: "Adm1nPassw0rd", Email: "root2@example.com", PhoneNum: "phone"},
		} {
			created, err := db.SeedAdmin(ctx, repo, bad)
			assert.ErrorIs(t, err, db.ErrInvalidSeed)
			assert.False(t, created)
		}
		_, err := repo.GetByUsername(ctx, "root2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, db.Ping(ctx, gdb))
	})
}
