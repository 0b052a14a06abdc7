package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/habitboard/habitboard/internal/db"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/jmoiron/sqlx"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := db.Open(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.MigrateUp(conn.DB, db.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func createUser(t *testing.T, conn *sqlx.DB, id string) *model.User {
	t.Helper()

	user := &model.User{ID: id, Email: id + "@example.com", Name: id, PasswordHash: "hash", CreatedAt: epoch}
	if err := NewUserRepository(conn).Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createDomain(t *testing.T, conn *sqlx.DB, userID, id string, createdAt time.Time) *model.Domain {
	t.Helper()

	domain := &model.Domain{
		ID:        id,
		UserID:    userID,
		Name:      id,
		Color:     "lime",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := NewDomainRepository(conn).Create(domain); err != nil {
		t.Fatalf("create domain: %v", err)
	}
	return domain
}

func TestUserRepository(t *testing.T) {
	conn := setupDB(t)
	repo := NewUserRepository(conn)

	user := createUser(t, conn, "alice")

	got, err := repo.ByEmail(user.Email)
	if err != nil {
		t.Fatalf("ByEmail() error = %v", err)
	}
	if got.ID != user.ID || got.PasswordHash != "hash" {
		t.Errorf("ByEmail() = %+v", got)
	}

	err = repo.Create(&model.User{ID: "other", Email: user.Email, PasswordHash: "x", CreatedAt: epoch})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create() duplicate error = %v, want ErrDuplicateEmail", err)
	}

	if _, err := repo.ByID("missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ByID() error = %v, want ErrUserNotFound", err)
	}

	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second Delete() error = %v, want ErrUserNotFound", err)
	}
}

func TestDomainRepository(t *testing.T) {
	conn := setupDB(t)
	repo := NewDomainRepository(conn)

	createUser(t, conn, "alice")
	createUser(t, conn, "bob")
	second := createDomain(t, conn, "alice", "second", epoch.Add(time.Hour))
	createDomain(t, conn, "alice", "first", epoch)
	createDomain(t, conn, "bob", "bobs", epoch)

	domains, err := repo.Domains("alice")
	if err != nil {
		t.Fatalf("Domains() error = %v", err)
	}
	if len(domains) != 2 || domains[0].ID != "first" || domains[1].ID != "second" {
		t.Fatalf("Domains() not in creation order: %+v", domains)
	}

	if _, err := repo.ByID("bob", second.ID); !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("ByID() for another user error = %v, want ErrDomainNotFound", err)
	}

	second.Name = "Renamed"
	second.Color = "blue"
	if err := repo.Update(second); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := repo.ByID("alice", second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed" || got.Color != "blue" {
		t.Errorf("after Update() = %+v", got)
	}

	if err := repo.Delete("bob", second.ID); !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("Delete() by non-owner error = %v", err)
	}
}

func TestDomainsWithStats(t *testing.T) {
	conn := setupDB(t)
	repo := NewDomainRepository(conn)
	completions := NewCompletionRepository(conn)
	streaks := NewStreakRepository(conn)

	createUser(t, conn, "alice")
	createDomain(t, conn, "alice", "gym", epoch)
	createDomain(t, conn, "alice", "read", epoch.Add(time.Minute))

	for _, d := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		if _, _, err := completions.Toggle("gym", d, epoch); err != nil {
			t.Fatal(err)
		}
	}
	if err := streaks.Upsert(&model.Streak{DomainID: "gym", CurrentStreak: 2, LongestStreak: 4, UpdatedAt: epoch}); err != nil {
		t.Fatal(err)
	}

	domains, err := repo.DomainsWithStats("alice")
	if err != nil {
		t.Fatalf("DomainsWithStats() error = %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("len = %d, want 2", len(domains))
	}
	if domains[0].TotalCompletions != 3 || domains[0].CurrentStreak != 2 {
		t.Errorf("gym stats = %+v", domains[0])
	}
	if domains[1].TotalCompletions != 0 || domains[1].CurrentStreak != 0 {
		t.Errorf("read stats = %+v", domains[1])
	}
}

func TestCompletionToggle(t *testing.T) {
	conn := setupDB(t)
	repo := NewCompletionRepository(conn)

	createUser(t, conn, "alice")
	createDomain(t, conn, "alice", "gym", epoch)

	created, completed, err := repo.Toggle("gym", "2025-01-06", epoch)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !completed || created == nil || created.Date != "2025-01-06" {
		t.Fatalf("first Toggle() = %+v, %v", created, completed)
	}

	removed, completed, err := repo.Toggle("gym", "2025-01-06", epoch)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if completed || removed != nil {
		t.Errorf("second Toggle() = %+v, %v, want removal", removed, completed)
	}

	dates, err := repo.Dates("gym")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 0 {
		t.Errorf("Dates() = %v, want empty", dates)
	}
}

func TestCompletionUniquePerDay(t *testing.T) {
	conn := setupDB(t)
	repo := NewCompletionRepository(conn)

	createUser(t, conn, "alice")
	createDomain(t, conn, "alice", "gym", epoch)

	first := &model.Completion{ID: "c1", DomainID: "gym", Date: "2025-01-06", CreatedAt: epoch}
	if err := repo.Create(first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	dup := &model.Completion{ID: "c2", DomainID: "gym", Date: "2025-01-06", CreatedAt: epoch}
	if err := repo.Create(dup); !errors.Is(err, ErrDuplicateCompletion) {
		t.Errorf("Create() duplicate error = %v, want ErrDuplicateCompletion", err)
	}
}

func TestCompletionQueries(t *testing.T) {
	conn := setupDB(t)
	repo := NewCompletionRepository(conn)

	createUser(t, conn, "alice")
	createUser(t, conn, "bob")
	createDomain(t, conn, "alice", "gym", epoch)
	createDomain(t, conn, "alice", "read", epoch)
	createDomain(t, conn, "bob", "bobs", epoch)

	seed := map[string][]string{
		"gym":  {"2025-01-03", "2025-01-01", "2025-01-02"},
		"read": {"2025-01-02"},
		"bobs": {"2025-01-02"},
	}
	for domainID, dates := range seed {
		for _, d := range dates {
			if _, _, err := repo.Toggle(domainID, d, epoch); err != nil {
				t.Fatal(err)
			}
		}
	}

	dates, err := repo.Dates("gym")
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 3 || dates[0] != "2025-01-01" || dates[2] != "2025-01-03" {
		t.Errorf("Dates() = %v, want ascending", dates)
	}

	byDomain, err := repo.DatesByDomain("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(byDomain) != 2 || len(byDomain["gym"]) != 3 || len(byDomain["read"]) != 1 {
		t.Errorf("DatesByDomain() = %v", byDomain)
	}

	tests := []struct {
		name   string
		filter CompletionFilter
		want   int
	}{
		{name: "all", filter: CompletionFilter{}, want: 4},
		{name: "domain", filter: CompletionFilter{DomainID: "gym"}, want: 3},
		{name: "range", filter: CompletionFilter{StartDate: "2025-01-02", EndDate: "2025-01-02"}, want: 2},
		{name: "domain and start", filter: CompletionFilter{DomainID: "gym", StartDate: "2025-01-02"}, want: 2},
		{name: "other user domain", filter: CompletionFilter{DomainID: "bobs"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Completions("alice", tt.filter)
			if err != nil {
				t.Fatalf("Completions() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Completions() returned %d, want %d", len(got), tt.want)
			}
		})
	}

	all, _ := repo.Completions("alice", CompletionFilter{DomainID: "gym"})
	if all[0].Date != "2025-01-03" {
		t.Errorf("Completions() not newest first: %s", all[0].Date)
	}

	if err := repo.Delete("bob", all[0].ID); !errors.Is(err, ErrCompletionNotFound) {
		t.Errorf("Delete() by non-owner error = %v", err)
	}
	if err := repo.Delete("alice", all[0].ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestGoalUpsert(t *testing.T) {
	conn := setupDB(t)
	repo := NewGoalRepository(conn)

	createUser(t, conn, "alice")
	createDomain(t, conn, "alice", "gym", epoch)

	if _, err := repo.ByDomainID("gym"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("ByDomainID() error = %v, want ErrGoalNotFound", err)
	}

	goal := &model.Goal{DomainID: "gym", TargetDays: 3, TotalDays: 7, CreatedAt: epoch, UpdatedAt: epoch}
	if err := repo.Upsert(goal); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	originalID := goal.ID

	later := epoch.Add(24 * time.Hour)
	replacement := &model.Goal{DomainID: "gym", TargetDays: 5, TotalDays: 7, MotivationNote: "go", CreatedAt: later, UpdatedAt: later}
	if err := repo.Upsert(replacement); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.ByDomainID("gym")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != originalID || got.TargetDays != 5 || got.MotivationNote != "go" {
		t.Errorf("after Upsert() = %+v", got)
	}

	goals, err := repo.Goals("alice")
	if err != nil || len(goals) != 1 {
		t.Errorf("Goals() = %v, %v", goals, err)
	}

	if err := repo.Delete("gym"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete("gym"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestDeleteDomainCascades(t *testing.T) {
	conn := setupDB(t)
	domains := NewDomainRepository(conn)
	completions := NewCompletionRepository(conn)
	goals := NewGoalRepository(conn)
	streaks := NewStreakRepository(conn)

	createUser(t, conn, "alice")
	createDomain(t, conn, "alice", "gym", epoch)

	if _, _, err := completions.Toggle("gym", "2025-01-01", epoch); err != nil {
		t.Fatal(err)
	}
	if err := goals.Upsert(&model.Goal{DomainID: "gym", TargetDays: 3, TotalDays: 7, CreatedAt: epoch, UpdatedAt: epoch}); err != nil {
		t.Fatal(err)
	}
	if err := streaks.Upsert(&model.Streak{DomainID: "gym", UpdatedAt: epoch}); err != nil {
		t.Fatal(err)
	}

	if err := domains.Delete("alice", "gym"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if dates, _ := completions.Dates("gym"); len(dates) != 0 {
		t.Errorf("completions survived domain delete: %v", dates)
	}
	if _, err := goals.ByDomainID("gym"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("goal survived domain delete: %v", err)
	}
	if _, err := streaks.ByDomainID("gym"); !errors.Is(err, ErrStreakNotFound) {
		t.Errorf("streak survived domain delete: %v", err)
	}
}
