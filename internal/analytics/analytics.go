package analytics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/habitboard/habitboard/internal/streak"
	"github.com/samber/lo"
)

const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be between 1 and 9999")
)

// Domain is one tracked area with its full completion history.
type Domain struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
	Dates     []time.Time
}

type Input struct {
	Year             int
	Month            time.Month
	Now              time.Time
	AccountCreatedAt time.Time
	Domains          []Domain
}

type AllTimeStats struct {
	// TotalDaysTracked is the number of completions across all domains.
	TotalDaysTracked int `json:"totalDaysTracked"`
	// OverallCompletionRate is average completions per day since account
	// creation, times 100.
	OverallCompletionRate int    `json:"overallCompletionRate"`
	AccountStartDate      string `json:"accountStartDate"`
	AccountAgeDays        int    `json:"accountAgeDays"`
	LongestDailyStreak    int    `json:"longestDailyStreak"`
}

type MonthInfo struct {
	DisplayName string `json:"displayName"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	CurrentDay  int    `json:"currentDay"`
}

type MonthlyCompletion struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Rate      int `json:"rate"`
}

type DomainStat struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Color          string            `json:"color"`
	ThisMonth      MonthlyCompletion `json:"thisMonth"`
	LastMonth      MonthlyCompletion `json:"lastMonth"`
	Trend          int               `json:"trend"`
	TrendDirection string            `json:"trendDirection"`
}

// WeekRow is one bar-chart bucket. Counts is keyed by domain ID.
type WeekRow struct {
	Week       string         `json:"week"`
	WeekNumber int            `json:"weekNumber"`
	DateRange  string         `json:"dateRange"`
	Counts     map[string]int `json:"counts"`
}

// DomainRef resolves the IDs used in WeekRow.Counts for display.
type DomainRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Dashboard struct {
	AllTime      AllTimeStats `json:"allTime"`
	CurrentMonth MonthInfo    `json:"currentMonth"`
	Domains      []DomainRef  `json:"domains"`
	DomainStats  []DomainStat `json:"domainStats"`
	WeeklyData   []WeekRow    `json:"weeklyData"`
}

// period is a closed range of calendar days.
type period struct {
	start, end time.Time
}

func (p period) contains(d time.Time) bool {
	return !d.Before(p.start) && !d.After(p.end)
}

func (p period) count(days []time.Time) int {
	return lo.CountBy(days, p.contains)
}

// available returns the number of days in p a domain created on created
// could have been completed. Domains created after p ends contribute 0;
// otherwise the result is at least 1.
func (p period) available(created time.Time) int {
	if created.After(p.end) {
		return 0
	}
	start := p.start
	if created.After(start) {
		start = created
	}
	return max(daysBetween(start, p.end)+1, 1)
}

// Build computes the dashboard payload for the requested month.
func Build(in Input) (*Dashboard, error) {
	if in.Month < time.January || in.Month > time.December {
		return nil, ErrInvalidMonth
	}
	if in.Year < 1 || in.Year > 9999 {
		return nil, ErrInvalidYear
	}

	today := streak.Day(in.Now)
	monthStart := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	currentDay := daysInMonth
	if today.Year() == in.Year && today.Month() == in.Month {
		currentDay = today.Day()
	}

	this := period{start: monthStart, end: monthStart.AddDate(0, 0, currentDay-1)}
	last := period{start: monthStart.AddDate(0, -1, 0), end: monthStart.AddDate(0, 0, -1)}

	domains := make([]Domain, len(in.Domains))
	for i, d := range in.Domains {
		d.Dates = distinct(d.Dates)
		d.CreatedAt = streak.Day(d.CreatedAt)
		domains[i] = d
	}

	dash := &Dashboard{
		AllTime: allTimeStats(domains, streak.Day(in.AccountCreatedAt), today),
		CurrentMonth: MonthInfo{
			DisplayName: monthStart.Format("January 2006"),
			Year:        in.Year,
			Month:       int(in.Month),
			CurrentDay:  currentDay,
		},
		Domains:     make([]DomainRef, 0, len(domains)),
		DomainStats: make([]DomainStat, 0, len(domains)),
		WeeklyData:  []WeekRow{},
	}

	if len(domains) == 0 {
		return dash, nil
	}

	for _, d := range domains {
		dash.Domains = append(dash.Domains, DomainRef{ID: d.ID, Name: d.Name, Color: d.Color})
		dash.DomainStats = append(dash.DomainStats, domainStat(d, this, last))
	}

	dash.WeeklyData = weeklyRows(domains, monthStart, currentDay)

	return dash, nil
}

func allTimeStats(domains []Domain, accountStart, today time.Time) AllTimeStats {
	all := lo.FlatMap(domains, func(d Domain, _ int) []time.Time { return d.Dates })
	total := len(all)
	ageDays := max(daysBetween(accountStart, today), 1)

	return AllTimeStats{
		TotalDaysTracked:      total,
		OverallCompletionRate: int(math.Round(float64(total) / float64(ageDays) * 100)),
		AccountStartDate:      streak.FormatDate(accountStart),
		AccountAgeDays:        ageDays,
		LongestDailyStreak:    LongestDailyStreak(all),
	}
}

func domainStat(d Domain, this, last period) DomainStat {
	thisMonth := monthly(d, this)
	lastMonth := monthly(d, last)
	trend := thisMonth.Rate - lastMonth.Rate

	direction := TrendNeutral
	switch {
	case trend > 0:
		direction = TrendUp
	case trend < 0:
		direction = TrendDown
	}

	return DomainStat{
		ID:             d.ID,
		Name:           d.Name,
		Color:          d.Color,
		ThisMonth:      thisMonth,
		LastMonth:      lastMonth,
		Trend:          trend,
		TrendDirection: direction,
	}
}

func monthly(d Domain, p period) MonthlyCompletion {
	completed := p.count(d.Dates)
	total := p.available(d.CreatedAt)
	return MonthlyCompletion{
		Completed: completed,
		Total:     total,
		Rate:      streak.Percent(completed, total),
	}
}

// weeklyRows splits the month into fixed seven-day buckets (1-7, 8-14, ...)
// up to currentDay.
func weeklyRows(domains []Domain, monthStart time.Time, currentDay int) []WeekRow {
	weeks := (currentDay + 6) / 7
	rows := make([]WeekRow, 0, weeks)

	for n := 1; n <= weeks; n++ {
		firstDay := (n-1)*7 + 1
		lastDay := min(n*7, currentDay)
		p := period{
			start: monthStart.AddDate(0, 0, firstDay-1),
			end:   monthStart.AddDate(0, 0, lastDay-1),
		}

		counts := make(map[string]int, len(domains))
		for _, d := range domains {
			counts[d.ID] = p.count(d.Dates)
		}

		rows = append(rows, WeekRow{
			Week:       fmt.Sprintf("Week %d", n),
			WeekNumber: n,
			DateRange:  fmt.Sprintf("%s %d-%d", monthStart.Format("Jan"), firstDay, lastDay),
			Counts:     counts,
		})
	}
	return rows
}

// LongestDailyStreak returns the longest run of consecutive calendar days
// with at least one completion. Dates from any number of domains may be
// mixed; duplicates collapse.
func LongestDailyStreak(dates []time.Time) int {
	days := distinct(dates)
	if len(days) == 0 {
		return 0
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

func distinct(dates []time.Time) []time.Time {
	return lo.Uniq(lo.Map(dates, func(d time.Time, _ int) time.Time { return streak.Day(d) }))
}

// daysBetween counts whole calendar days from a to b. Both are expected to be
// normalised with streak.Day.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
