package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DaySchedule is a single weekday entry in a worker's schedule.
type DaySchedule struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime"` // "HH:MM" in 24h
	EndTime   string `json:"endTime"`   // "HH:MM" in 24h
}

// WeekSchedule maps lowercase weekday names ("monday" ... "sunday") to
// that day's schedule. Stored as JSON in a text column.
type WeekSchedule map[string]DaySchedule

// Value implements the driver.Valuer interface
func (ws WeekSchedule) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(ws)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (ws *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal WeekSchedule: unsupported type %T", value)
	}

	return json.Unmarshal(data, ws)
}

// DefaultWeekSchedule returns the schedule assigned to newly created worker
// profiles: Monday through Saturday 09:00-18:00, Sunday off.
func DefaultWeekSchedule() WeekSchedule {
	ws := WeekSchedule{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		ws[day] = DaySchedule{Available: true, StartTime: "09:00", EndTime: "18:00"}
	}
	ws["sunday"] = DaySchedule{Available: false, StartTime: "09:00", EndTime: "18:00"}
	return ws
}

// WeekdayKey converts a time to the schedule map key for that day.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
