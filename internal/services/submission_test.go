package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sewasew/census-backend/internal/census"
	"github.com/sewasew/census-backend/internal/repos"
	"github.com/sewasew/census-backend/internal/repos/testutil"
	"github.com/sewasew/census-backend/internal/types"
)

func newSubmissionService(t *testing.T) (SubmissionService, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewSubmissionService(
		db,
		log,
		repos.NewHouseholdRepo(db, log),
		repos.NewFamilyMemberRepo(db, log),
		repos.NewSubmissionLogRepo(db, log),
		nil, // no SMS in tests
		nil, // no cache in tests
	)
	return svc, db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSubmit_HappyPath(t *testing.T) {
	svc, db := newSubmissionService(t)

	id, err := svc.Submit(context.Background(), "9.03,38.74", []census.RawMember{
		{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("Submit: expected a household identifier")
	}

	var household types.Household
	if err := db.First(&household, "id = ?", id).Error; err != nil {
		t.Fatalf("load household: %v", err)
	}
	if household.Latitude != 9.03 || household.Longitude != 38.74 {
		t.Fatalf("household coords = %v,%v", household.Latitude, household.Longitude)
	}
	if household.TitheStatus != nil {
		t.Fatalf("titheStatus should default to absent, got %q", *household.TitheStatus)
	}

	var members []types.FamilyMember
	if err := db.Where("household_id = ?", id).Find(&members).Error; err != nil {
		t.Fatalf("load members: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Abel" {
		t.Fatalf("members = %+v", members)
	}
	m := members[0]
	for name, got := range map[string]*string{
		"educationLevel":  m.EducationLevel,
		"schoolName":      m.SchoolName,
		"studyType":       m.StudyType,
		"studyYear":       m.StudyYear,
		"disabilityType":  m.DisabilityType,
		"otherDisability": m.OtherDisability,
	} {
		if got != nil {
			t.Fatalf("optional field %s should be stored absent, got %q", name, *got)
		}
	}

	var audits []types.SubmissionLog
	if err := db.Find(&audits).Error; err != nil {
		t.Fatalf("load audit rows: %v", err)
	}
	if len(audits) != 1 || audits[0].Status != types.SubmissionAccepted {
		t.Fatalf("audit rows = %+v", audits)
	}
	if audits[0].HouseholdID == nil || *audits[0].HouseholdID != id {
		t.Fatal("audit row should reference the committed household")
	}
}

func TestSubmit_MemberOrderPreserved(t *testing.T) {
	svc, db := newSubmissionService(t)

	names := []string{"Abel", "Sara", "Ruth", "Dawit"}
	members := make([]census.RawMember, 0, len(names))
	for _, n := range names {
		members = append(members, census.RawMember{Name: n, BirthDate: "1990-01-01", Gender: "ወንድ"})
	}

	id, err := svc.Submit(context.Background(), "9.03,38.74", members)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var stored []types.FamilyMember
	if err := db.Where("household_id = ?", id).Order("created_at ASC, rowid ASC").Find(&stored).Error; err != nil {
		t.Fatalf("load members: %v", err)
	}
	if len(stored) != len(names) {
		t.Fatalf("stored %d members, want %d", len(stored), len(names))
	}
	for i, n := range names {
		if stored[i].Name != n {
			t.Fatalf("member %d = %q, want %q (insert order must match submission order)", i, stored[i].Name, n)
		}
	}
}

func TestSubmit_ValidationRejectsBeforeStore(t *testing.T) {
	svc, db := newSubmissionService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		location string
		members  []census.RawMember
	}{
		{"bad location", "nowhere", []census.RawMember{{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"}}},
		{"empty members", "9.03,38.74", nil},
		{"incomplete member", "9.03,38.74", []census.RawMember{{Name: "Abel", BirthDate: "1990-01-01"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.location, tc.members)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !census.IsValidationError(err) {
				t.Fatalf("error %v should be a validation error", err)
			}
		})
	}

	if n := countRows(t, db, &types.Household{}); n != 0 {
		t.Fatalf("households = %d, want 0 (zero-side-effect rejection)", n)
	}
	if n := countRows(t, db, &types.FamilyMember{}); n != 0 {
		t.Fatalf("members = %d, want 0 (zero-side-effect rejection)", n)
	}
}

func TestSubmit_RejectionIsIdempotent(t *testing.T) {
	svc, _ := newSubmissionService(t)
	ctx := context.Background()

	members := []census.RawMember{
		{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"},
		{Name: "NoGender", BirthDate: "2000-01-01"},
	}
	_, first := svc.Submit(ctx, "9.03,38.74", members)
	_, second := svc.Submit(ctx, "9.03,38.74", members)
	if first == nil || second == nil {
		t.Fatal("expected both submissions to reject")
	}
	if first.Error() != second.Error() {
		t.Fatalf("rejection drifted: %q vs %q", first.Error(), second.Error())
	}

	var incomplete *census.IncompleteMemberError
	if !errors.As(first, &incomplete) || incomplete.Index != 1 {
		t.Fatalf("error = %v, want IncompleteMemberError at index 1", first)
	}
}

func TestSubmit_MemberInsertFailureRollsBackHousehold(t *testing.T) {
	svc, db := newSubmissionService(t)

	// Take the member table away so the second stage of the transaction
	// fails at the store level after the household insert succeeded.
	if err := db.Migrator().DropTable(&types.FamilyMember{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := svc.Submit(context.Background(), "9.03,38.74", []census.RawMember{
		{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"},
		{Name: "Sara", BirthDate: "1992-01-01", Gender: "ሴት"},
	})
	if err == nil {
		t.Fatal("expected store failure")
	}
	var storeErr *census.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error = %T (%v), want *census.StoreError", err, err)
	}

	if n := countRows(t, db, &types.Household{}); n != 0 {
		t.Fatalf("households = %d, want 0 after rollback", n)
	}

	var audits []types.SubmissionLog
	if err := db.Find(&audits).Error; err != nil {
		t.Fatalf("load audit rows: %v", err)
	}
	if len(audits) != 1 || audits[0].Status != types.SubmissionFailed {
		t.Fatalf("audit rows = %+v, want one failed entry", audits)
	}
	if audits[0].HouseholdID != nil {
		t.Fatal("failed submission must not reference a household id")
	}
}

func TestSubmit_AtMostOneAttempt(t *testing.T) {
	svc, db := newSubmissionService(t)

	if err := db.Migrator().DropTable(&types.FamilyMember{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), "9.03,38.74", []census.RawMember{
			{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"},
		})
		if err == nil {
			t.Fatal("expected store failure")
		}
	}

	// Three invocations, three terminal failures, still zero rows: the
	// writer never retried behind the caller's back.
	if n := countRows(t, db, &types.Household{}); n != 0 {
		t.Fatalf("households = %d, want 0", n)
	}
}
