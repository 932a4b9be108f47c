package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/sewasew/census-backend/internal/clients/redis"
	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/repos"
	"github.com/sewasew/census-backend/internal/types"
)

const (
	cacheKeyKPIs      = "analytics:kpis"
	cacheKeyDashboard = "analytics:dashboard"
	cacheKeyTithe     = "analytics:tithe"

	analyticsCacheTTL = 30 * time.Second

	communityFallback = "Unknown"
)

// KPIs is the top-line roll-up for the dashboard header.
type KPIs struct {
	TotalHouseholds int64 `json:"totalHouseholds"`
	TotalMembers    int64 `json:"totalMembers"`
	ActiveTithers   int64 `json:"activeTithers"`
	EngagedServers  int64 `json:"engagedServers"`
}

// NameCount is one labelled bucket of a breakdown.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DashboardCharts bundles the three chart series the dashboard renders.
type DashboardCharts struct {
	GenderData   []NameCount `json:"genderData"`
	AgeData      []NameCount `json:"ageData"`
	LocationData []NameCount `json:"locationData"`
}

// MemberWithCoords is the member listing row, joined with the owning
// household's coordinates.
type MemberWithCoords struct {
	types.FamilyMember
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AnalyticsService is the stateless read side. Every method is an independent
// non-transactional snapshot; sub-queries inside one response may observe
// slightly different states and that is accepted.
type AnalyticsService interface {
	ListHouseholds(ctx context.Context) ([]*types.Household, error)
	ListMembers(ctx context.Context) ([]MemberWithCoords, error)
	GetKPIs(ctx context.Context) (*KPIs, error)
	TitheBreakdown(ctx context.Context) ([]NameCount, error)
	Dashboard(ctx context.Context) (*DashboardCharts, error)
}

type analyticsService struct {
	db            *gorm.DB
	log           *logger.Logger
	householdRepo repos.HouseholdRepo
	memberRepo    repos.FamilyMemberRepo
	cache         redisclient.AnalyticsCache // nil when redis is not configured
	now           func() time.Time
}

func NewAnalyticsService(db *gorm.DB, log *logger.Logger, householdRepo repos.HouseholdRepo, memberRepo repos.FamilyMemberRepo, cache redisclient.AnalyticsCache) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		db:            db,
		log:           serviceLog,
		householdRepo: householdRepo,
		memberRepo:    memberRepo,
		cache:         cache,
		now:           time.Now,
	}
}

func (as *analyticsService) ListHouseholds(ctx context.Context) ([]*types.Household, error) {
	return as.householdRepo.GetAll(ctx, nil)
}

func (as *analyticsService) ListMembers(ctx context.Context) ([]MemberWithCoords, error) {
	households, err := as.householdRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	coords := make(map[uuid.UUID]*types.Household, len(households))
	for _, h := range households {
		coords[h.ID] = h
	}

	members, err := as.memberRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]MemberWithCoords, 0, len(members))
	for _, m := range members {
		row := MemberWithCoords{FamilyMember: *m}
		if h, ok := coords[m.HouseholdID]; ok {
			row.Latitude = h.Latitude
			row.Longitude = h.Longitude
		}
		out = append(out, row)
	}
	return out, nil
}

func (as *analyticsService) GetKPIs(ctx context.Context) (*KPIs, error) {
	if as.cache != nil {
		var cached KPIs
		if hit, err := as.cache.Get(ctx, cacheKeyKPIs, &cached); err != nil {
			as.log.Warn("KPI cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	households, err := as.householdRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	members, err := as.memberRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	tithers, err := as.householdRepo.CountByTitheStatus(ctx, nil, "paid")
	if err != nil {
		return nil, err
	}
	servers, err := as.memberRepo.CountByServeInChurch(ctx, nil, "yes")
	if err != nil {
		return nil, err
	}

	kpis := &KPIs{
		TotalHouseholds: households,
		TotalMembers:    members,
		ActiveTithers:   tithers,
		EngagedServers:  servers,
	}
	as.cacheSet(ctx, cacheKeyKPIs, kpis)
	return kpis, nil
}

// TitheBreakdown always returns exactly the Paid and Pending buckets, each
// zero-filled when no household matches.
func (as *analyticsService) TitheBreakdown(ctx context.Context) ([]NameCount, error) {
	if as.cache != nil {
		var cached []NameCount
		if hit, err := as.cache.Get(ctx, cacheKeyTithe, &cached); err != nil {
			as.log.Warn("Tithe cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	paid, err := as.householdRepo.CountByTitheStatus(ctx, nil, "paid")
	if err != nil {
		return nil, err
	}
	pending, err := as.householdRepo.CountByTitheStatus(ctx, nil, "pending")
	if err != nil {
		return nil, err
	}

	breakdown := []NameCount{
		{Name: "Paid", Count: paid},
		{Name: "Pending", Count: pending},
	}
	as.cacheSet(ctx, cacheKeyTithe, breakdown)
	return breakdown, nil
}

func (as *analyticsService) Dashboard(ctx context.Context) (*DashboardCharts, error) {
	if as.cache != nil {
		var cached DashboardCharts
		if hit, err := as.cache.Get(ctx, cacheKeyDashboard, &cached); err != nil {
			as.log.Warn("Dashboard cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	genderRows, err := as.memberRepo.GenderCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	birthDates, err := as.memberRepo.BirthDates(ctx, nil)
	if err != nil {
		return nil, err
	}
	communityRows, err := as.memberRepo.CommunityCounts(ctx, nil, communityFallback)
	if err != nil {
		return nil, err
	}

	charts := &DashboardCharts{
		GenderData:   genderBreakdown(genderRows),
		AgeData:      ageBreakdown(birthDates, as.now()),
		LocationData: groupToNameCounts(communityRows),
	}
	as.cacheSet(ctx, cacheKeyDashboard, charts)
	return charts, nil
}

func (as *analyticsService) cacheSet(ctx context.Context, key string, value any) {
	if as.cache == nil {
		return
	}
	if err := as.cache.Set(ctx, key, value, analyticsCacheTTL); err != nil {
		as.log.Warn("Analytics cache write failed", "key", key, "error", err)
	}
}

// The two gender encodings the census forms store.
var genderLabels = map[string]string{
	"ወንድ": "Male",
	"ሴት":  "Female",
}

func genderBreakdown(rows []repos.GroupCount) []NameCount {
	counts := map[string]int64{"Male": 0, "Female": 0}
	for _, row := range rows {
		label, ok := genderLabels[strings.TrimSpace(row.Key)]
		if !ok {
			label = row.Key
		}
		counts[label] += row.Count
	}
	out := []NameCount{
		{Name: "Male", Count: counts["Male"]},
		{Name: "Female", Count: counts["Female"]},
	}
	for label, count := range counts {
		if label == "Male" || label == "Female" {
			continue
		}
		out = append(out, NameCount{Name: label, Count: count})
	}
	return out
}

var ageBucketNames = []string{"Under 13", "13-25", "26-60", "Over 60"}

// ageBucket is exhaustive over non-negative ages.
func ageBucket(age int) string {
	switch {
	case age < 13:
		return ageBucketNames[0]
	case age <= 25:
		return ageBucketNames[1]
	case age <= 60:
		return ageBucketNames[2]
	default:
		return ageBucketNames[3]
	}
}

// ageAt computes full calendar years between birth and now.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ageBreakdown buckets ages computed from the stored birthdates at query
// time. All four bands are always present. Unparseable dates are skipped.
func ageBreakdown(birthDates []string, now time.Time) []NameCount {
	counts := make(map[string]int64, len(ageBucketNames))
	for _, raw := range birthDates {
		birth, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		age := ageAt(birth, now)
		if age < 0 {
			continue
		}
		counts[ageBucket(age)]++
	}
	out := make([]NameCount, 0, len(ageBucketNames))
	for _, name := range ageBucketNames {
		out = append(out, NameCount{Name: name, Count: counts[name]})
	}
	return out
}

func groupToNameCounts(rows []repos.GroupCount) []NameCount {
	out := make([]NameCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, NameCount{Name: row.Key, Count: row.Count})
	}
	return out
}
