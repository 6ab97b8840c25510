package schedule

import (
	"sort"

	"github.com/clinicdesk/clinic-scheduler/internal/models"
)

// TimeSlot is a selectable start/end pair for the booking UI.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StartSlots lists every interval boundary in [workStart, workEnd) as
// "HH:MM", recomputed fresh on each call.
func StartSlots(dh models.DayHours, intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotMinutes
	}

	workStart, ok := parseHM(dh.Start)
	if !ok {
		workStart, _ = parseHM(DefaultDayStart)
	}
	workEnd, ok := parseHM(dh.End)
	if !ok {
		workEnd, _ = parseHM(DefaultDayEnd)
	}

	var slots []string
	for cur := workStart; cur < workEnd; cur += intervalMinutes {
		slots = append(slots, formatHM(cur))
	}
	return slots
}

// EndSlots lists the selectable end times for an appointment starting
// at startTime: every boundary in (startTime, workEnd], anchored at the
// start. mustInclude, when set and off the grid, is inserted in sorted
// position so an existing appointment's current end time can always be
// displayed while editing.
func EndSlots(startTime string, dh models.DayHours, intervalMinutes int, mustInclude string) []string {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotMinutes
	}

	start, ok := parseHM(startTime)
	if !ok {
		return nil
	}
	workEnd, ok := parseHM(dh.End)
	if !ok {
		workEnd, _ = parseHM(DefaultDayEnd)
	}

	var slots []string
	seen := make(map[string]bool)
	for cur := start + intervalMinutes; cur <= workEnd; cur += intervalMinutes {
		hm := formatHM(cur)
		slots = append(slots, hm)
		seen[hm] = true
	}

	if mustInclude != "" && !seen[mustInclude] {
		if _, valid := parseHM(mustInclude); valid {
			slots = append(slots, mustInclude)
			sort.Slice(slots, func(i, j int) bool {
				a, _ := parseHM(slots[i])
				b, _ := parseHM(slots[j])
				return a < b
			})
		}
	}

	return slots
}
