package database

// GameRow is one row of game_info.
type GameRow struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	OfficialURL *string `json:"official_url"`
	Genre       *string `json:"genre"`
	Memo        *string `json:"memo"`
}

// ScenarioRow is one row of scenario_info.
type ScenarioRow struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	OfficialURL    *string `json:"official_url"`
	Genre          *string `json:"genre"`
	Memo           *string `json:"memo"`
	Players        *string `json:"players"`
	GameSystem     *string `json:"game_system"`
	Production     *string `json:"production"`
	Creator        *string `json:"creator"`
	Duration       *string `json:"duration"`
	PossibleGM     bool    `json:"possible_gm"`
	PossibleStream bool    `json:"possible_stream"`
	TrailerImage   *string `json:"trailer_image"`
}

// ScheduleRow is one row of schedules.
type ScheduleRow struct {
	ID           string   `json:"id"`
	ContentType  string   `json:"content_type"`
	ContentID    *string  `json:"content_id"`
	Status       string   `json:"status"`
	Date         *string  `json:"date"`
	Label        *string  `json:"label"`
	StartTime    *string  `json:"start_time"`
	Position     *string  `json:"position"`
	Role         *string  `json:"role"`
	Members      []string `json:"members"`
	PCName       *string  `json:"pc_name"`
	GMSTName     *string  `json:"gmst_name"`
	Server       *string  `json:"server"`
	IsStream     bool     `json:"is_stream"`
	StreamURL    *string  `json:"stream_url"`
	EndcardImage *string  `json:"endcard_image"`
	Memo         *string  `json:"memo"`
}

// SessionRow is one row of scenario_sessions. Its id always equals the
// owning schedule id.
type SessionRow struct {
	ID         string `json:"id"`
	ScheduleID string `json:"schedule_id"`
}

// DayRow is one row of days_status.
type DayRow struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	WorkOff   bool    `json:"work_off"`
	StreamOff bool    `json:"stream_off"`
	Will      string  `json:"will"`
	Memo      *string `json:"memo"`
}
