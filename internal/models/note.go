// Package models defines the typed frontmatter records the pipeline syncs.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// File-class tags marking which notes are eligible for sync.
const (
	FileClassContent = "fc-content"
	FileClassEvent   = "fc-event"
	FileClassDay     = "fc-day"
)

// Content types. Events without a resolvable content link are "real"
// (non-gaming) entries.
const (
	ContentTypeGame     = "game"
	ContentTypeScenario = "scenario"
	ContentTypeReal     = "real"
)

// Event statuses.
const (
	StatusPending = "pending"
	StatusPlanned = "planned"
	StatusDone    = "done"
)

// Day "will" states.
const (
	WillFree      = "free"
	WillTentative = "tentative"
	WillBlocked   = "blocked"
)

// ContentNote is the frontmatter of a reusable game or scenario definition.
type ContentNote struct {
	ID        string `yaml:"id"`
	Release   bool   `yaml:"release"`
	FileClass string `yaml:"fileClass"`
	Type      string `yaml:"type"`
	Title     string `yaml:"title"`

	OfficialURL string `yaml:"official_url"`
	Genre       string `yaml:"genre"`
	Memo        string `yaml:"memo"`

	// Scenario-only fields.
	Players        string `yaml:"players"`
	GameSystem     string `yaml:"game_system"`
	Production     string `yaml:"production"`
	Creator        string `yaml:"creator"`
	Duration       string `yaml:"duration"`
	PossibleGM     bool   `yaml:"possible_GM"`
	PossibleStream bool   `yaml:"possible_stream"`
	TrailerImage   string `yaml:"trailer_image"`
}

// Eligible reports whether the note should be synced at all. Ineligible
// notes are skipped silently.
func (n *ContentNote) Eligible() bool {
	return n.Release && n.FileClass == FileClassContent
}

// Validate checks fields that warrant a per-file warning when wrong.
func (n *ContentNote) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Type, validation.Required, validation.In(ContentTypeGame, ContentTypeScenario)),
	)
}

// EventNote is the frontmatter of one scheduled occurrence.
type EventNote struct {
	ID        string `yaml:"id"`
	Release   bool   `yaml:"release"`
	FileClass string `yaml:"fileClass"`
	Title     string `yaml:"title"`

	// Content holds at most one embedded [[link]] to a content note.
	Content string `yaml:"content"`

	Status    string   `yaml:"status"`
	Date      string   `yaml:"date"`
	Label     string   `yaml:"label"`
	StartTime FlexTime `yaml:"start_time"`
	Position  string   `yaml:"position"`
	Role      string   `yaml:"role"`
	Members   []string `yaml:"members"`
	PCName    string   `yaml:"pc_name"`
	GMSTName  string   `yaml:"gmst_name"`
	Server    string   `yaml:"server"`
	IsStream  bool     `yaml:"is_stream"`
	StreamURL string   `yaml:"stream_url"`

	// EndcardImage supersedes the legacy Endcard key; both are honored,
	// EndcardImage wins when both are present.
	EndcardImage string `yaml:"endcard_image"`
	Endcard      string `yaml:"endcard"`

	Memo string `yaml:"memo"`
}

func (n *EventNote) Eligible() bool {
	return n.Release && n.FileClass == FileClassEvent
}

// Validate enforces the status enum and the date requirement for
// non-pending events.
func (n *EventNote) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Status, validation.Required, validation.In(StatusPending, StatusPlanned, StatusDone)),
		validation.Field(&n.Date, validation.Required.When(n.Status != "" && n.Status != StatusPending).Error("date is required for non-pending events")),
	)
}

// EndcardRef returns the raw endcard reference, preferring the current key.
func (n *EventNote) EndcardRef() string {
	if n.EndcardImage != "" {
		return n.EndcardImage
	}
	return n.Endcard
}

// DayNote is the frontmatter of a calendar-date status note.
type DayNote struct {
	ID        string `yaml:"id"`
	Release   bool   `yaml:"release"`
	FileClass string `yaml:"fileClass"`
	Title     string `yaml:"title"`

	Date      string `yaml:"date"`
	WorkOff   bool   `yaml:"work_off"`
	StreamOff bool   `yaml:"stream_off"`
	Will      string `yaml:"will"`
	Memo      string `yaml:"memo"`
}

func (n *DayNote) Eligible() bool {
	return n.Release && n.FileClass == FileClassDay
}

func (n *DayNote) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Date, validation.Required),
		validation.Field(&n.Will, validation.In(WillFree, WillTentative, WillBlocked)),
	)
}

// WillOrDefault returns the declared will state, defaulting to "free".
func (n *DayNote) WillOrDefault() string {
	if n.Will == "" {
		return WillFree
	}
	return n.Will
}
