package census

import (
	"errors"
	"testing"
)

func TestValidateMember_RequiredFields(t *testing.T) {
	_, err := ValidateMember(RawMember{Name: "Abel", BirthDate: "1990-01-01"}, 3)
	if err == nil {
		t.Fatal("expected rejection for missing gender")
	}
	var incomplete *IncompleteMemberError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %T, want *IncompleteMemberError", err)
	}
	if incomplete.Index != 3 {
		t.Fatalf("index = %d, want 3", incomplete.Index)
	}
	if len(incomplete.Fields) != 1 || incomplete.Fields[0] != "gender" {
		t.Fatalf("fields = %v, want [gender]", incomplete.Fields)
	}
}

func TestValidateMember_ReportsAllMissingFields(t *testing.T) {
	_, err := ValidateMember(RawMember{}, 0)
	var incomplete *IncompleteMemberError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error = %T, want *IncompleteMemberError", err)
	}
	want := []string{"name", "birthDate", "gender"}
	if len(incomplete.Fields) != len(want) {
		t.Fatalf("fields = %v, want %v", incomplete.Fields, want)
	}
	for i, f := range want {
		if incomplete.Fields[i] != f {
			t.Fatalf("fields = %v, want %v", incomplete.Fields, want)
		}
	}
}

func TestValidateMember_OptionalNormalization(t *testing.T) {
	vm, err := ValidateMember(RawMember{
		Name:      "Abel",
		BirthDate: "1990-01-01",
		Gender:    "ወንድ",
		Community: "Bole",
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vm.Community == nil || *vm.Community != "Bole" {
		t.Fatalf("community = %v, want Bole", vm.Community)
	}
	// Every omitted optional resolves to the explicit absent marker.
	for name, got := range map[string]*string{
		"phone":           vm.Phone,
		"serveInChurch":   vm.ServeInChurch,
		"maritalStatus":   vm.MaritalStatus,
		"jobType":         vm.JobType,
		"hasDisability":   vm.HasDisability,
		"educationLevel":  vm.EducationLevel,
		"schoolName":      vm.SchoolName,
		"studyType":       vm.StudyType,
		"studyYear":       vm.StudyYear,
		"disabilityType":  vm.DisabilityType,
		"otherDisability": vm.OtherDisability,
	} {
		if got != nil {
			t.Fatalf("%s = %q, want absent", name, *got)
		}
	}
}

func TestValidateMember_EmptyStringCollapsesToAbsent(t *testing.T) {
	vm, err := ValidateMember(RawMember{
		Name:       "Abel",
		BirthDate:  "1990-01-01",
		Gender:     "ወንድ",
		SchoolName: "",
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vm.SchoolName != nil {
		t.Fatalf("schoolName = %q, want absent", *vm.SchoolName)
	}
}

func TestValidateMember_IsPure(t *testing.T) {
	raw := RawMember{Name: "Abel", BirthDate: "1990-01-01", Gender: "ወንድ"}
	first, err := ValidateMember(raw, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ValidateMember(raw, 0)
	if err != nil {
		t.Fatalf("unexpected error on revalidation: %v", err)
	}
	if first.Name != second.Name || first.BirthDate != second.BirthDate || first.Gender != second.Gender {
		t.Fatal("revalidation produced a different result")
	}
}
