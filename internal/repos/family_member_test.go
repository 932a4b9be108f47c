package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sewasew/census-backend/internal/repos/testutil"
	"github.com/sewasew/census-backend/internal/types"
)

func seedMembers(t *testing.T, repo FamilyMemberRepo, householdID uuid.UUID) {
	t.Helper()
	members := []*types.FamilyMember{
		{HouseholdID: householdID, Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ", ServeInChurch: strPtr("Yes"), Community: strPtr("Bole")},
		{HouseholdID: householdID, Name: "Sara", BirthDate: "2015-06-01", Gender: "ሴት", Community: strPtr("Bole")},
		{HouseholdID: householdID, Name: "Ruth", BirthDate: "1960-03-10", Gender: "ሴት"},
	}
	if _, err := repo.Create(context.Background(), nil, members); err != nil {
		t.Fatalf("Create members: %v", err)
	}
}

func TestFamilyMemberRepo_Aggregations(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	households := NewHouseholdRepo(db, log)
	repo := NewFamilyMemberRepo(db, log)
	ctx := context.Background()

	hh, err := households.Create(ctx, nil, &types.Household{Latitude: 9.03, Longitude: 38.74})
	if err != nil {
		t.Fatalf("Create household: %v", err)
	}
	seedMembers(t, repo, hh.ID)

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("Count: expected 3, got %d", count)
	}

	servers, err := repo.CountByServeInChurch(ctx, nil, "yes")
	if err != nil {
		t.Fatalf("CountByServeInChurch: %v", err)
	}
	if servers != 1 {
		t.Fatalf("CountByServeInChurch: expected 1 (case-insensitive), got %d", servers)
	}

	genders, err := repo.GenderCounts(ctx, nil)
	if err != nil {
		t.Fatalf("GenderCounts: %v", err)
	}
	got := map[string]int64{}
	for _, row := range genders {
		got[row.Key] = row.Count
	}
	if got["ወንድ"] != 1 || got["ሴት"] != 2 {
		t.Fatalf("GenderCounts: unexpected rows %v", got)
	}

	communities, err := repo.CommunityCounts(ctx, nil, "Unknown")
	if err != nil {
		t.Fatalf("CommunityCounts: %v", err)
	}
	byName := map[string]int64{}
	for _, row := range communities {
		byName[row.Key] = row.Count
	}
	if byName["Bole"] != 2 {
		t.Fatalf("CommunityCounts: expected Bole=2, got %v", byName)
	}
	if byName["Unknown"] != 1 {
		t.Fatalf("CommunityCounts: expected NULL community under fallback label, got %v", byName)
	}

	dates, err := repo.BirthDates(ctx, nil)
	if err != nil {
		t.Fatalf("BirthDates: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("BirthDates: expected 3, got %d", len(dates))
	}
}
