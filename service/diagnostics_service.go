package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmomatt/referralpro/models"
	"github.com/cmomatt/referralpro/repository"
)

// TableProber runs the raw table-level operations behind the test-db routes
type TableProber interface {
	ProbeTable(ctx context.Context, table string) (int, error)
	DeleteByIDPrefix(ctx context.Context, table, prefix string) (int64, error)
}

// SeedStores groups the per-resource creates the seeder needs
type SeedStores struct {
	Users interface {
		Create(ctx context.Context, user *models.User) error
	}
	Contacts interface {
		Create(ctx context.Context, contact *models.Contact) error
	}
	Referrals interface {
		Create(ctx context.Context, referral *models.Referral) error
		ListByIDPrefix(ctx context.Context, prefix string) ([]*models.Referral, error)
	}
	Rewards interface {
		Create(ctx context.Context, reward *models.ReferralReward) error
	}
	Meetings interface {
		Create(ctx context.Context, meeting *models.Meeting) error
	}
	Tasks interface {
		Create(ctx context.Context, task *models.Task) error
	}
}

// Diagnostics implements the connection check, best-effort seeding, and
// prefix-matched bulk clearing behind /api/test-db
type Diagnostics struct {
	prober TableProber
	stores SeedStores
	tables []string
}

// DiagnosticsOption is a functional option for Diagnostics
type DiagnosticsOption func(*Diagnostics)

// DiagnosticsWithProber sets the table prober
func DiagnosticsWithProber(p TableProber) DiagnosticsOption {
	return func(d *Diagnostics) {
		d.prober = p
	}
}

// DiagnosticsWithStores sets the per-resource stores used by seeding
func DiagnosticsWithStores(s SeedStores) DiagnosticsOption {
	return func(d *Diagnostics) {
		d.stores = s
	}
}

// DiagnosticsWithTables overrides the probed table list
func DiagnosticsWithTables(tables []string) DiagnosticsOption {
	return func(d *Diagnostics) {
		d.tables = tables
	}
}

// NewDiagnostics creates a diagnostics service over the default domain tables
func NewDiagnostics(opts ...DiagnosticsOption) *Diagnostics {
	d := &Diagnostics{tables: repository.DomainTables}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TableResult is the outcome of probing one table
type TableResult struct {
	Table  string `json:"table"`
	Status string `json:"status"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// CheckResult is the outcome of the connection test
type CheckResult struct {
	Success bool          `json:"success"`
	Results []TableResult `json:"results"`
}

// SeedPrefix is the id prefix shared by every seeded row
const SeedPrefix = "test-"

// Check probes each domain table with a one-row id projection. The overall
// result succeeds only when every table does.
func (d *Diagnostics) Check(ctx context.Context) (*CheckResult, error) {
	if d.prober == nil {
		return nil, errors.New("table prober not set")
	}

	result := &CheckResult{Success: true}
	for _, table := range d.tables {
		count, err := d.prober.ProbeTable(ctx, table)
		if err != nil {
			slog.Error("table probe failed", "table", table, "error", err)
			result.Success = false
			result.Results = append(result.Results, TableResult{
				Table:  table,
				Status: "error",
				Error:  err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, TableResult{
			Table:  table,
			Status: "ok",
			Count:  count,
		})
	}

	return result, nil
}

// SeedResult is the outcome of a seeding run. Individual step failures are
// recorded in Summary but never abort the remaining steps.
type SeedResult struct {
	Success bool     `json:"success"`
	Summary []string `json:"summary"`
}

// Seed inserts a fixed set of synthetic rows across the domain tables.
// Every seeded id carries the "test-" prefix so Clear can find it later.
func (d *Diagnostics) Seed(ctx context.Context) (*SeedResult, error) {
	if d.stores.Users == nil {
		return nil, errors.New("seed stores not set")
	}

	now := time.Now().Unix()
	result := &SeedResult{Success: true}

	step := func(name string, n int, err error) {
		if err != nil {
			slog.Warn("seed step failed", "step", name, "error", err)
			result.Summary = append(result.Summary, fmt.Sprintf("%s: failed: %v", name, err))
			return
		}
		result.Summary = append(result.Summary, fmt.Sprintf("%s: created %d", name, n))
	}

	userIDs := d.seedUsers(ctx, now, &result.Summary)
	if len(userIDs) == 0 {
		// Nothing downstream can reference a user; report and stop.
		result.Success = false
		return result, nil
	}

	contactIDs, err := d.seedContacts(ctx, now, userIDs)
	step("contacts", len(contactIDs), err)

	referralCount, err := d.seedReferrals(ctx, now, userIDs)
	step("referrals", referralCount, err)

	rewardCount, err := d.seedRewards(ctx, now)
	step("rewards", rewardCount, err)

	meetingIDs, err := d.seedMeetings(ctx, now, userIDs, contactIDs)
	step("meetings", len(meetingIDs), err)

	taskCount, err := d.seedTasks(ctx, now, userIDs, contactIDs)
	step("tasks", taskCount, err)

	return result, nil
}

func (d *Diagnostics) seedUsers(ctx context.Context, now int64, summary *[]string) []string {
	seeds := []struct {
		slug  string
		name  string
		email string
	}{
		{"1", "John Doe", fmt.Sprintf("john.doe%d@example.com", now)},
		{"2", "Jane Smith", fmt.Sprintf("jane.smith%d@example.com", now)},
		{"3", "Mike Johnson", fmt.Sprintf("mike.johnson%d@example.com", now)},
	}

	var ids []string
	for _, s := range seeds {
		user := &models.User{
			ID:    fmt.Sprintf("%suser-%s-%d", SeedPrefix, s.slug, now),
			Email: s.email,
			Name:  s.name,
		}
		if err := d.stores.Users.Create(ctx, user); err != nil {
			slog.Warn("seed user failed", "id", user.ID, "error", err)
			continue
		}
		ids = append(ids, user.ID)
	}

	*summary = append(*summary, fmt.Sprintf("users: created %d", len(ids)))
	return ids
}

func (d *Diagnostics) seedContacts(ctx context.Context, now int64, userIDs []string) ([]string, error) {
	seeds := []struct {
		slug       string
		first      string
		last       string
		company    string
		title      string
		reputation int
		notes      string
	}{
		{"1", "Sarah", "Wilson", "Wilson Law Firm", "Managing Partner", 95,
			"Excellent referral partner, specializes in corporate law"},
		{"2", "David", "Brown", "Brown & Associates", "Senior Attorney", 88,
			"Great for family law referrals"},
		{"3", "Emily", "Davis", "Davis Legal Group", "Partner", 92,
			"Specializes in real estate law"},
	}

	var ids []string
	for i, s := range seeds {
		email := fmt.Sprintf("%s.%s%d@example.com", s.first, s.last, now)
		contact := &models.Contact{
			ID:              fmt.Sprintf("%scontact-%s-%d", SeedPrefix, s.slug, now),
			UserID:          userIDs[i%len(userIDs)],
			FirstName:       s.first,
			LastName:        s.last,
			Email:           &email,
			Company:         strPtr(s.company),
			Title:           strPtr(s.title),
			ReputationScore: intPtr(s.reputation),
			Notes:           strPtr(s.notes),
		}
		if err := d.stores.Contacts.Create(ctx, contact); err != nil {
			return ids, err
		}
		ids = append(ids, contact.ID)
	}

	return ids, nil
}

func (d *Diagnostics) seedReferrals(ctx context.Context, now int64, userIDs []string) (int, error) {
	created := 0
	for i := 1; i <= 3; i++ {
		referral := &models.Referral{
			ID:           fmt.Sprintf("%sreferral-%d-%d", SeedPrefix, i, now),
			ReferrerID:   userIDs[(i-1)%len(userIDs)],
			RefereeEmail: fmt.Sprintf("referral%d@example.com", i),
			Status:       models.ReferralStatusPending,
		}
		if err := d.stores.Referrals.Create(ctx, referral); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedRewards links rewards to whichever seeded referrals actually exist,
// so a failed referral step only shrinks this one rather than failing it.
func (d *Diagnostics) seedRewards(ctx context.Context, now int64) (int, error) {
	referrals, err := d.stores.Referrals.ListByIDPrefix(ctx, SeedPrefix+"referral-")
	if err != nil {
		return 0, err
	}
	if len(referrals) == 0 {
		return 0, errors.New("no seeded referrals found to attach rewards to")
	}

	seeds := []struct {
		slug        string
		rtype       models.RewardType
		amount      string
		description string
	}{
		{"1", models.RewardTypeCash, "1500.00",
			"Referral bonus for successful client acquisition"},
		{"2", models.RewardTypeCredit, "800.00",
			"Credit for future services based on referral"},
	}

	created := 0
	for i, s := range seeds {
		reward := &models.ReferralReward{
			ID:          fmt.Sprintf("%sreward-%s-%d", SeedPrefix, s.slug, now),
			ReferralID:  referrals[i%len(referrals)].ID,
			Type:        s.rtype,
			Amount:      strPtr(s.amount),
			Description: s.description,
			Status:      models.RewardStatusPending,
		}
		if err := d.stores.Rewards.Create(ctx, reward); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (d *Diagnostics) seedMeetings(ctx context.Context, now int64, userIDs, contactIDs []string) ([]string, error) {
	if len(contactIDs) == 0 {
		return nil, errors.New("no seeded contacts found to attach meetings to")
	}

	seeds := []struct {
		slug        string
		title       string
		description string
		inDays      int
		duration    int
		status      string
	}{
		{"1", "Initial Consultation",
			"Discuss potential business formation and legal needs", 7, 60, "scheduled"},
		{"2", "Follow-up Discussion",
			"Review case details and referral process", 3, 45, "confirmed"},
	}

	var ids []string
	for i, s := range seeds {
		when := time.Now().Add(time.Duration(s.inDays) * 24 * time.Hour)
		meeting := &models.Meeting{
			ID:          fmt.Sprintf("%smeeting-%s-%d", SeedPrefix, s.slug, now),
			UserID:      userIDs[i%len(userIDs)],
			ContactID:   contactIDs[i%len(contactIDs)],
			Title:       s.title,
			Description: strPtr(s.description),
			Datetime:    &when,
			Duration:    intPtr(s.duration),
			Status:      strPtr(s.status),
		}
		if err := d.stores.Meetings.Create(ctx, meeting); err != nil {
			return ids, err
		}
		ids = append(ids, meeting.ID)
	}
	return ids, nil
}

func (d *Diagnostics) seedTasks(ctx context.Context, now int64, userIDs, contactIDs []string) (int, error) {
	if len(contactIDs) == 0 {
		return 0, errors.New("no seeded contacts found to attach tasks to")
	}

	seeds := []struct {
		slug        string
		title       string
		description string
		inDays      int
		status      string
		priority    string
	}{
		{"1", "Send referral agreement",
			"Email the standard referral agreement template to Sarah Wilson", 2, "open", "high"},
		{"2", "Schedule follow-up call",
			"Call David Brown to discuss the family law referral details", 1, "in_progress", "medium"},
	}

	created := 0
	for i, s := range seeds {
		due := time.Now().Add(time.Duration(s.inDays) * 24 * time.Hour)
		contactID := contactIDs[i%len(contactIDs)]
		task := &models.Task{
			ID:          fmt.Sprintf("%stask-%s-%d", SeedPrefix, s.slug, now),
			UserID:      userIDs[i%len(userIDs)],
			ContactID:   &contactID,
			Title:       s.title,
			Description: strPtr(s.description),
			DueDate:     &due,
			Status:      s.status,
			Priority:    s.priority,
		}
		if err := d.stores.Tasks.Create(ctx, task); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ClearResult is the outcome of clearing seeded rows
type ClearResult struct {
	DeletedCount int64            `json:"deletedCount"`
	PerTable     map[string]int64 `json:"perTable"`
}

// Clear deletes every row whose id carries the seed prefix, per table.
// A failure on one table is logged and does not block the remaining tables.
func (d *Diagnostics) Clear(ctx context.Context) (*ClearResult, error) {
	if d.prober == nil {
		return nil, errors.New("table prober not set")
	}

	result := &ClearResult{PerTable: make(map[string]int64)}

	// Reverse dependency order so child rows go before their parents.
	for i := len(d.tables) - 1; i >= 0; i-- {
		table := d.tables[i]
		deleted, err := d.prober.DeleteByIDPrefix(ctx, table, SeedPrefix)
		if err != nil {
			slog.Warn("clear step failed", "table", table, "error", err)
			continue
		}
		result.PerTable[table] = deleted
		result.DeletedCount += deleted
	}

	return result, nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
