package models

// StatProfile is the editable stat blob attached to a user. Values are
// kept as entered (free text) and parsed on demand; derived scores like
// the SAT total are never stored here.
type StatProfile struct {
	GPA        string `json:"gpa"`
	SATEBRW    string `json:"sat_ebrw"`
	SATMath    string `json:"sat_math"`
	ACTMath    string `json:"act_math"`
	ACTReading string `json:"act_reading"`
	ACTScience string `json:"act_science"`

	TestPath    TestPathContext    `json:"test_path"`
	CollegePath CollegePathContext `json:"college_path"`
}

// TestPathContext is the builder input for the Test Prep path.
type TestPathContext struct {
	DesiredSAT string `json:"desired_sat"`
	DesiredACT string `json:"desired_act"`
	TestDate   string `json:"test_date"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

// CollegePathContext is the builder input for the College Planning path.
type CollegePathContext struct {
	Grade          string `json:"grade"`
	PlanningStage  string `json:"planning_stage"`
	Majors         string `json:"majors"`
	TargetColleges string `json:"target_colleges"`
}

// Set updates a named stat field and reports whether the name is known.
func (s *StatProfile) Set(name, value string) bool {
	switch name {
	case "gpa":
		s.GPA = value
	case "sat_ebrw":
		s.SATEBRW = value
	case "sat_math":
		s.SATMath = value
	case "act_math":
		s.ACTMath = value
	case "act_reading":
		s.ACTReading = value
	case "act_science":
		s.ACTScience = value
	default:
		return false
	}
	return true
}

// Get returns a named stat value, or "" for unknown names.
func (s *StatProfile) Get(name string) string {
	switch name {
	case "gpa":
		return s.GPA
	case "sat_ebrw":
		return s.SATEBRW
	case "sat_math":
		return s.SATMath
	case "act_math":
		return s.ACTMath
	case "act_reading":
		return s.ACTReading
	case "act_science":
		return s.ACTScience
	}
	return ""
}

// User represents a student account.
type User struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	Email    string      `json:"email" gorm:"unique;not null"`
	Name     string      `json:"name" gorm:"not null;default:''"`
	Password string      `json:"-" gorm:"not null"`
	Timezone string      `json:"timezone" gorm:"default:''"`
	Stats    StatProfile `json:"stats" gorm:"serializer:json"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
