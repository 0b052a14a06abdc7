package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/habitboard/habitboard/internal/clock"
	"github.com/habitboard/habitboard/internal/db"
	"github.com/habitboard/habitboard/internal/model"
	"github.com/habitboard/habitboard/internal/repository"
	"github.com/habitboard/habitboard/internal/storage"
)

// Monday 13 January 2025, mid-morning.
var testNow = time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)

type fixture struct {
	users       repository.UserRepository
	domains     repository.DomainRepository
	completions repository.CompletionRepository
	goals       repository.GoalRepository
	streaks     repository.StreakRepository

	streakService     *StreakService
	completionService *CompletionService
	goalService       *GoalService
	domainService     *DomainService
	analyticsService  *AnalyticsService
	exportService     *ExportService
	authService       *AuthService
	userService       *UserService
}

func setup(t *testing.T) *fixture {
	return setupWithStorage(t, nil)
}

func setupWithStorage(t *testing.T, store storage.Storage) *fixture {
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

	clk := clock.Fixed(testNow)
	f := &fixture{
		users:       repository.NewUserRepository(conn),
		domains:     repository.NewDomainRepository(conn),
		completions: repository.NewCompletionRepository(conn),
		goals:       repository.NewGoalRepository(conn),
		streaks:     repository.NewStreakRepository(conn),
	}

	f.streakService = NewStreakService(f.domains, f.completions, f.goals, f.streaks, clk)
	f.completionService = NewCompletionService(f.domains, f.completions, f.streakService, clk)
	f.goalService = NewGoalService(f.domains, f.completions, f.goals, f.streaks, f.streakService, clk, 4)
	f.domainService = NewDomainService(f.domains, clk)
	f.analyticsService = NewAnalyticsService(f.users, f.domains, f.completions, clk)
	f.exportService = NewExportService(f.users, f.domains, f.completions, f.goals, store, clk)
	f.authService = NewAuthService(f.users, clk, "test-secret", time.Hour)
	f.userService = NewUserService(f.users)

	return f
}

func (f *fixture) user(t *testing.T, id string, createdAt time.Time) *model.User {
	t.Helper()

	user := &model.User{ID: id, Email: id + "@example.com", Name: id, PasswordHash: "x", CreatedAt: createdAt}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (f *fixture) domain(t *testing.T, userID, name string) *model.Domain {
	t.Helper()

	domain, err := f.domainService.Create(userID, name, "", "")
	if err != nil {
		t.Fatalf("create domain: %v", err)
	}
	return domain
}

func (f *fixture) complete(t *testing.T, userID, domainID string, dates ...string) {
	t.Helper()

	for _, d := range dates {
		if _, err := f.completionService.Create(userID, domainID, d); err != nil {
			t.Fatalf("complete %s: %v", d, err)
		}
	}
}

// workweek lists Monday to Friday of the week starting at monday.
func workweek(monday string) []string {
	start, err := time.Parse("2006-01-02", monday)
	if err != nil {
		panic(err)
	}
	days := make([]string, 5)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return days
}
