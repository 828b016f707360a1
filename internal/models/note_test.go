package models

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFlexTime_MinutesToHHMM(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"start_time: 1290", "21:30"},
		{"start_time: 60", "01:00"},
		{"start_time: 5", "00:05"},
		{"start_time: \"21:30\"", "21:30"},
		{"start_time: '9:00'", "9:00"}, // strings pass through unchanged
		{"start_time: 0", ""},
		{"start_time: null", ""},
		{"start_time:", ""},
	}
	for _, c := range cases {
		var n EventNote
		if err := yaml.Unmarshal([]byte(c.in), &n); err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if string(n.StartTime) != c.want {
			t.Errorf("%q: start time = %q, want %q", c.in, n.StartTime, c.want)
		}
	}
}

func TestFlexTime_HHMM(t *testing.T) {
	if FlexTime("").HHMM() != nil {
		t.Error("empty FlexTime should yield nil")
	}
	got := FlexTime("21:30").HHMM()
	if got == nil || *got != "21:30" {
		t.Errorf("HHMM() = %v", got)
	}
}

func TestContentNote_Eligible(t *testing.T) {
	n := ContentNote{Release: true, FileClass: FileClassContent}
	if !n.Eligible() {
		t.Error("released fc-content note should be eligible")
	}
	n.Release = false
	if n.Eligible() {
		t.Error("unreleased note should not be eligible")
	}
	n = ContentNote{Release: true, FileClass: "fc-other"}
	if n.Eligible() {
		t.Error("wrong fileClass should not be eligible")
	}
}

func TestContentNote_Validate(t *testing.T) {
	n := ContentNote{Type: ContentTypeScenario}
	if err := n.Validate(); err != nil {
		t.Errorf("scenario type should validate: %v", err)
	}
	n.Type = "boardgame"
	if err := n.Validate(); err == nil {
		t.Error("unknown type should fail validation")
	}
	n.Type = ""
	if err := n.Validate(); err == nil {
		t.Error("missing type should fail validation")
	}
}

func TestEventNote_Validate(t *testing.T) {
	n := EventNote{Status: StatusPending}
	if err := n.Validate(); err != nil {
		t.Errorf("pending without date should validate: %v", err)
	}

	n = EventNote{Status: StatusPlanned}
	if err := n.Validate(); err == nil {
		t.Error("planned without date should fail")
	}

	n = EventNote{Status: StatusDone, Date: "2026-01-02"}
	if err := n.Validate(); err != nil {
		t.Errorf("done with date should validate: %v", err)
	}

	n = EventNote{Status: "cancelled", Date: "2026-01-02"}
	if err := n.Validate(); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestEventNote_EndcardRef(t *testing.T) {
	n := EventNote{Endcard: "legacy.png"}
	if got := n.EndcardRef(); got != "legacy.png" {
		t.Errorf("got %q", got)
	}
	n.EndcardImage = "current.png"
	if got := n.EndcardRef(); got != "current.png" {
		t.Errorf("endcard_image should win, got %q", got)
	}
}

func TestDayNote_Validate(t *testing.T) {
	n := DayNote{Date: "2026-03-01", Will: WillTentative}
	if err := n.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	n.Date = ""
	if err := n.Validate(); err == nil {
		t.Error("missing date should fail")
	}
	n = DayNote{Date: "2026-03-01", Will: "busy"}
	if err := n.Validate(); err == nil {
		t.Error("unknown will should fail")
	}
}

func TestDayNote_WillOrDefault(t *testing.T) {
	n := DayNote{}
	if got := n.WillOrDefault(); got != WillFree {
		t.Errorf("got %q, want %q", got, WillFree)
	}
	n.Will = WillBlocked
	if got := n.WillOrDefault(); got != WillBlocked {
		t.Errorf("got %q", got)
	}
}
