package testrepo

import (
	"context"
	"testing"

	"testset-sync/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_MigratedMatches(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, Migrate(db))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Len(t, report.Tables, 4)
	assert.Equal(t, "ok", report.Tables["test_instances"].Status)
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("DROP TABLE test_instances").Error)
	require.NoError(t, db.Exec("CREATE TABLE test_instances (id INTEGER PRIMARY KEY, test_set_id INTEGER, test_name TEXT)").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl := report.Tables["test_instances"]
	assert.Equal(t, "error", tbl.Status)
	assert.ElementsMatch(t, []string{"status", "tester", "executed_at"}, tbl.MissingColumns)
	assert.Len(t, tbl.TypeMismatches, 1) // test_name is TEXT, not varchar(255)
}

func TestClient_AgainstSQLite(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, Migrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&Project{ID: 1, Domain: "QA", Name: "Web"}).Error)
	require.NoError(t, db.Create(&User{ID: 1, LoginName: "ci-bot", PasswordHash: string(hash)}).Error)
	require.NoError(t, db.Create(&TestSet{ID: 1, ProjectID: 1, Path: `Root\Nightly`, Name: "nightly_run"}).Error)
	require.NoError(t, db.Create(&TestSet{ID: 2, ProjectID: 1, Path: `Root\Weekly`, Name: "nightly_run"}).Error)
	require.NoError(t, db.Create(&[]TestInstance{
		{ID: 1, TestSetID: 1, TestName: "TEST_1", Status: "No Run"},
		{ID: 2, TestSetID: 1, TestName: "TEST_2", Status: "No Run"},
		{ID: 3, TestSetID: 2, TestName: "TEST_1", Status: "No Run"},
	}).Error)

	ctx := context.Background()
	c := NewClient(db, zap.NewNop())
	require.NoError(t, c.Connect(ctx, Credentials{Domain: "QA", Project: "Web", LoginName: "ci-bot", Password: "secret"}))

	sets, err := c.FindTestSets(ctx, "Root/Nightly", "nightly_run")
	require.NoError(t, err)
	require.Len(t, sets, 1)

	mapping := mappingOf(t, "TEST_1", "Passed", "TEST_2", "Failed")
	applied, err := c.ApplyResults(ctx, sets[0], mapping)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	var inst TestInstance
	require.NoError(t, db.First(&inst, 1).Error)
	assert.Equal(t, "Passed", inst.Status)
	assert.Equal(t, "ci-bot", inst.Tester)
	assert.NotNil(t, inst.ExecutedAt)

	var untouched TestInstance
	require.NoError(t, db.First(&untouched, 3).Error)
	assert.Equal(t, "No Run", untouched.Status)
}
