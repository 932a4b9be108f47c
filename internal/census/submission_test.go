package census

import (
	"errors"
	"testing"
)

func validRaw(name string) RawMember {
	return RawMember{Name: name, BirthDate: "1990-01-01", Gender: "ወንድ"}
}

func TestBuildSubmission_HappyPath(t *testing.T) {
	sub, err := BuildSubmission("9.03,38.74", []RawMember{validRaw("Abel"), validRaw("Sara")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Location.Latitude != 9.03 || sub.Location.Longitude != 38.74 {
		t.Fatalf("location = %+v", sub.Location)
	}
	if len(sub.Members) != 2 || sub.Members[0].Name != "Abel" || sub.Members[1].Name != "Sara" {
		t.Fatalf("members out of order: %+v", sub.Members)
	}
}

func TestBuildSubmission_BadLocation(t *testing.T) {
	_, err := BuildSubmission("not-a-location", []RawMember{validRaw("Abel")})
	var locErr *InvalidLocationError
	if !errors.As(err, &locErr) {
		t.Fatalf("error = %v, want *InvalidLocationError", err)
	}
}

func TestBuildSubmission_EmptyMemberList(t *testing.T) {
	for _, members := range [][]RawMember{nil, {}} {
		_, err := BuildSubmission("9.03,38.74", members)
		if !errors.Is(err, ErrEmptyMemberList) {
			t.Fatalf("error = %v, want ErrEmptyMemberList", err)
		}
	}
}

func TestBuildSubmission_FailFastReportsFirstBadIndex(t *testing.T) {
	members := []RawMember{
		validRaw("Abel"),
		{Name: "NoGender", BirthDate: "2000-05-05"},
		{BirthDate: "2001-06-06"},
	}
	_, err := BuildSubmission("9.03,38.74", members)
	var incomplete *IncompleteMemberError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %v, want *IncompleteMemberError", err)
	}
	if incomplete.Index != 1 {
		t.Fatalf("index = %d, want first failing record 1", incomplete.Index)
	}
}

func TestBuildSubmission_RejectionIsIdempotent(t *testing.T) {
	members := []RawMember{{Name: "NoBirthDate", Gender: "ሴት"}}
	_, first := BuildSubmission("9.03,38.74", members)
	_, second := BuildSubmission("9.03,38.74", members)
	if first == nil || second == nil {
		t.Fatal("expected both builds to reject")
	}
	if first.Error() != second.Error() {
		t.Fatalf("rejection drifted between attempts: %q vs %q", first.Error(), second.Error())
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrEmptyMemberList) {
		t.Fatal("ErrEmptyMemberList should be a validation error")
	}
	if !IsValidationError(&InvalidLocationError{Raw: "x"}) {
		t.Fatal("InvalidLocationError should be a validation error")
	}
	if !IsValidationError(&IncompleteMemberError{Index: 0, Fields: []string{"name"}}) {
		t.Fatal("IncompleteMemberError should be a validation error")
	}
	if IsValidationError(&StoreError{Op: "insert", Err: errors.New("boom")}) {
		t.Fatal("StoreError must not be a validation error")
	}
	if IsValidationError(&HouseholdCreationError{}) {
		t.Fatal("HouseholdCreationError must not be a validation error")
	}
}
