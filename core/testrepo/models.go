package testrepo

import "time"

// Project is a test-management project within a domain.
type Project struct {
	ID     int    `gorm:"column:id;primaryKey"`
	Domain string `gorm:"column:domain;type:varchar(64)"`
	Name   string `gorm:"column:name;type:varchar(128)"`
}

func (Project) TableName() string { return "projects" }

// User is a repository account allowed to record results.
type User struct {
	ID           int    `gorm:"column:id;primaryKey"`
	LoginName    string `gorm:"column:login_name;type:varchar(64)"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255)"`
}

func (User) TableName() string { return "repository_users" }

// TestSet is a named collection of tests stored under a folder path.
type TestSet struct {
	ID        int    `gorm:"column:id;primaryKey" json:"id"`
	ProjectID int    `gorm:"column:project_id" json:"project_id"`
	Path      string `gorm:"column:path;type:varchar(255)" json:"path"`
	Name      string `gorm:"column:name;type:varchar(255)" json:"name"`
}

func (TestSet) TableName() string { return "test_sets" }

// TestInstance is one test within a test set and its last recorded status.
type TestInstance struct {
	ID         int        `gorm:"column:id;primaryKey"`
	TestSetID  int        `gorm:"column:test_set_id"`
	TestName   string     `gorm:"column:test_name;type:varchar(255)"`
	Status     string     `gorm:"column:status;type:varchar(64)"`
	Tester     string     `gorm:"column:tester;type:varchar(64)"`
	ExecutedAt *time.Time `gorm:"column:executed_at;type:datetime"`
}

func (TestInstance) TableName() string { return "test_instances" }

// Models lists the tables the repository client relies on.
func Models() []any {
	return []any{Project{}, User{}, TestSet{}, TestInstance{}}
}
