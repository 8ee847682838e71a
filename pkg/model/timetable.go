package model

import "fmt"

// Class is one schedulable course: a teacher delivering WeeklyBlocks
// blocks in a fixed room.
type Class struct {
	ID           string `json:"id" yaml:"id"`
	Teacher      string `json:"teacher" yaml:"teacher"`
	Room         string `json:"room" yaml:"room"`
	WeeklyBlocks int    `json:"weekly_blocks" yaml:"weekly_blocks"`
}

// TimetableProblem is a fully resolved timetabling instance: classes are
// placed on a (day, block) grid so that no teacher or room is booked
// twice in the same block, and teachers changing rooms between adjacent
// blocks are penalized.
type TimetableProblem struct {
	Days              []string `json:"days" yaml:"days"`
	BlocksPerDay      int      `json:"blocks_per_day" yaml:"blocks_per_day"`
	Teachers          []string `json:"teachers" yaml:"teachers"`
	Classes           []Class  `json:"classes" yaml:"classes"`
	RoomChangePenalty int      `json:"room_change_penalty" yaml:"room_change_penalty"`
}

// Slots returns the total number of schedulable (day, block) positions.
func (p *TimetableProblem) Slots() int { return len(p.Days) * p.BlocksPerDay }

// Validate fails fast on instances no model should be built for.
func (p *TimetableProblem) Validate() error {
	if len(p.Days) == 0 {
		return fmt.Errorf("timetable: day list is empty")
	}
	if p.BlocksPerDay <= 0 {
		return fmt.Errorf("timetable: blocks per day must be positive, got %d", p.BlocksPerDay)
	}
	if len(p.Classes) == 0 {
		return fmt.Errorf("timetable: class list is empty")
	}
	if p.RoomChangePenalty < 0 {
		return fmt.Errorf("timetable: room change penalty must be non-negative, got %d", p.RoomChangePenalty)
	}
	teachers := make(map[string]bool, len(p.Teachers))
	for _, t := range p.Teachers {
		teachers[t] = true
	}
	for _, c := range p.Classes {
		if c.ID == "" {
			return fmt.Errorf("timetable: class with empty id")
		}
		if !teachers[c.Teacher] {
			return fmt.Errorf("timetable: class %q references unknown teacher %q", c.ID, c.Teacher)
		}
		if c.WeeklyBlocks <= 0 {
			return fmt.Errorf("timetable: class %q needs a positive weekly block count, got %d", c.ID, c.WeeklyBlocks)
		}
		if c.WeeklyBlocks > p.Slots() {
			return fmt.Errorf("timetable: class %q demands %d blocks but only %d slots exist", c.ID, c.WeeklyBlocks, p.Slots())
		}
	}
	return nil
}
