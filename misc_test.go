package pagesearch

import (
	"context"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tTeam struct {
	ID   int64  `gorm:"column:team_id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (tTeam) TableName() string { return "team" }

type tMember struct {
	ID       int64  `gorm:"column:member_id;primaryKey"`
	Username string `gorm:"column:username"`
	Age      int    `gorm:"column:age"`
	TeamID   *int64 `gorm:"column:team_id"`
}

func (tMember) TableName() string { return "member" }

// newSQLiteFixture opens a private in-memory database holding:
//
//	alice(10, teamX) bob(20, teamX) carl(30, teamY) dana(40, teamY)
//
// plus any extra members given.
func newSQLiteFixture(t *testing.T, extra ...tMember) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	// Every pooled connection to ":memory:" is a separate database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = db.AutoMigrate(&tTeam{}, &tMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	teams := []tTeam{{ID: 1, Name: "teamX"}, {ID: 2, Name: "teamY"}}
	members := append([]tMember{
		{ID: 1, Username: "alice", Age: 10, TeamID: lo.ToPtr[int64](1)},
		{ID: 2, Username: "bob", Age: 20, TeamID: lo.ToPtr[int64](1)},
		{ID: 3, Username: "carl", Age: 30, TeamID: lo.ToPtr[int64](2)},
		{ID: 4, Username: "dana", Age: 40, TeamID: lo.ToPtr[int64](2)},
	}, extra...)

	if err = db.Create(&teams).Error; err != nil {
		t.Fatalf("seed teams: %v", err)
	}
	if err = db.Create(&members).Error; err != nil {
		t.Fatalf("seed members: %v", err)
	}

	return db
}

// countingStore records how many queries of each kind reach the wrapped store.
type countingStore struct {
	next Store

	mu      sync.Mutex
	fetches []Query
	counts  []Query
}

func (s *countingStore) FetchRows(ctx context.Context, q Query) ([]ResultRow, error) {
	s.mu.Lock()
	s.fetches = append(s.fetches, q)
	s.mu.Unlock()

	return s.next.FetchRows(ctx, q)
}

func (s *countingStore) CountRows(ctx context.Context, q Query) (int64, error) {
	s.mu.Lock()
	s.counts = append(s.counts, q)
	s.mu.Unlock()

	return s.next.CountRows(ctx, q)
}

func (s *countingStore) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.fetches)
}

func (s *countingStore) countCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counts)
}
