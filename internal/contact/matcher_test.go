package contact

import (
	"reflect"
	"testing"

	"github.com/conflictcheck/namecheck/model"
)

func TestMatchPhoneFormatting(t *testing.T) {
	criteria := model.SearchCriteria{Name: "Sarah Mitchell", PhoneNumber: "(555) 123-4567"}
	records := []model.ReferenceRecord{
		{Name: "S. Mitchell", PhoneNumber: "555-123-4567"},
		{Name: "Other Person", PhoneNumber: "555-999-0000"},
	}

	got := Match(criteria, records)

	want := []model.ContactMatch{{
		Name:         "S. Mitchell",
		MatchedField: model.FieldPhoneNumber,
		MatchedValue: "555-123-4567",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match() = %v, want %v", got, want)
	}
}

func TestMatchEmailCaseInsensitive(t *testing.T) {
	criteria := model.SearchCriteria{Name: "X", Email: " Sarah@Example.COM "}
	records := []model.ReferenceRecord{
		{Name: "Sarah M", Email: "sarah@example.com"},
	}

	got := Match(criteria, records)

	if len(got) != 1 || got[0].MatchedField != model.FieldEmail {
		t.Errorf("Match() = %v, want one email match", got)
	}
}

func TestMatchAddressNormalization(t *testing.T) {
	criteria := model.SearchCriteria{Name: "X", Address: "12 Main St., Springfield"}
	records := []model.ReferenceRecord{
		{Name: "Acme", Address: "12  Main St Springfield"},
	}

	got := Match(criteria, records)

	if len(got) != 1 || got[0].MatchedField != model.FieldAddress {
		t.Errorf("Match() = %v, want one address match", got)
	}
}

func TestMatchPriorityOnePerRecord(t *testing.T) {
	// A record matching on phone and email contributes only the phone
	// match.
	criteria := model.SearchCriteria{
		Name:        "X",
		PhoneNumber: "555-123-4567",
		Email:       "sarah@example.com",
	}
	records := []model.ReferenceRecord{
		{Name: "Sarah M", PhoneNumber: "5551234567", Email: "sarah@example.com"},
	}

	got := Match(criteria, records)

	if len(got) != 1 {
		t.Fatalf("Match() returned %d matches, want 1", len(got))
	}
	if got[0].MatchedField != model.FieldPhoneNumber {
		t.Errorf("MatchedField = %q, want phone to take priority", got[0].MatchedField)
	}
}

func TestMatchMissingFields(t *testing.T) {
	criteria := model.SearchCriteria{Name: "X"}
	records := []model.ReferenceRecord{
		{Name: "Sarah M", PhoneNumber: "5551234567", Email: "sarah@example.com", Address: "12 Main St"},
	}

	if got := Match(criteria, records); len(got) != 0 {
		t.Errorf("Match() with no contact criteria = %v, want none", got)
	}
}

func TestJustification(t *testing.T) {
	m := model.ContactMatch{
		Name:         "S. Mitchell",
		MatchedField: model.FieldPhoneNumber,
		MatchedValue: "555-123-4567",
	}

	want := `Exact Phone Number match: "555-123-4567"`
	if got := Justification(m); got != want {
		t.Errorf("Justification() = %q, want %q", got, want)
	}
}
