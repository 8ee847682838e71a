package timetable

import "github.com/me/rota/pkg/model"

// DemoProblem returns a small school timetabling instance: three
// teachers sharing four rooms over a five-day week with eight blocks
// per day. Abel teaches in two rooms, so the room-change penalty has
// something to bite on.
func DemoProblem() *model.TimetableProblem {
	return &model.TimetableProblem{
		Days:         []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		BlocksPerDay: 8,
		Teachers:     []string{"Abel", "Baker", "Clark"},
		Classes: []model.Class{
			{ID: "math-9a", Teacher: "Abel", Room: "R101", WeeklyBlocks: 5},
			{ID: "math-9b", Teacher: "Abel", Room: "R102", WeeklyBlocks: 5},
			{ID: "physics-9a", Teacher: "Baker", Room: "Lab1", WeeklyBlocks: 4},
			{ID: "physics-9b", Teacher: "Baker", Room: "Lab1", WeeklyBlocks: 4},
			{ID: "history-9a", Teacher: "Clark", Room: "R103", WeeklyBlocks: 3},
			{ID: "history-9b", Teacher: "Clark", Room: "R103", WeeklyBlocks: 3},
		},
		RoomChangePenalty: 2,
	}
}
