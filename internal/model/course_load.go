package model

// CourseLoad is one course section offered by a program. Display data
// only; it carries no authorization weight.
type CourseLoad struct {
	ID           string `json:"id"`
	PID          int    `json:"pid"`
	SectionID    int    `json:"section_id"`
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	Section      string `json:"section"`
	Credit       int    `json:"credit"`
	StudentCount int    `json:"student_count"`
	WeeklyClass  int    `json:"weekly_class,omitempty"`
	TeacherID    string `json:"teacher_id"`
	TeacherName  string `json:"teacher_name"`
	Designation  string `json:"designation"`
}
