package todo

// Seed course IDs, matching course.DefaultCourses.
const (
	seedCourseOS      = "1"
	seedCourseIntroCS = "2"
	seedCourseLLM     = "3"
)

// DefaultItems returns the sample items written to an empty store. The lunch
// item is not included; daily recurrence adds it.
func DefaultItems() []Item {
	return []Item{
		{ID: "1", Title: "LLM poster", Category: Homework, CourseID: seedCourseLLM},
		{
			ID:             "2",
			Title:          "Intro to CS final report",
			Category:       Homework,
			CourseID:       seedCourseIntroCS,
			Time:           "2025-12-11",
			AllDay:         true,
			Deadline:       "2025-12-11",
			DeadlineAllDay: true,
		},
		{ID: "3", Title: "Operating systems", Category: Quiz, CourseID: seedCourseOS},
		{ID: "4", Title: "Intro to CS quiz", Category: Quiz, CourseID: seedCourseIntroCS},
	}
}
