package model

// Departments is the closed list of valid teacher departments. The first
// entry doubles as the substitute for unrecognized values.
var Departments = []string{
	"Computer Science",
	"Electronics",
	"Electrical and Electronics",
	"Biomedical",
	"Applied Science",
	"Mechanical",
}

// Classes is the closed list of valid student class labels. The first
// entry doubles as the substitute for unrecognized values.
var Classes = []string{
	"CSA", "CSB", "CSC", "CSBS",
	"ECA", "ECB", "EEE", "EB", "MECH",
}

type Teacher struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Dept     string  `json:"dept" db:"dept"`
	Position string  `json:"position" db:"position"`
	DOB      *string `json:"dob,omitempty" db:"dob"`
	Password string  `json:"password" db:"password"`
}

type Student struct {
	ID                 string  `json:"id" db:"id"`
	Name               string  `json:"name" db:"name"`
	Class              string  `json:"class" db:"class"`
	TotalActivityPoint int     `json:"total_activity_point" db:"total_activity_point"`
	DOB                *string `json:"dob,omitempty" db:"dob"`
	Password           string  `json:"password" db:"password"`
	Gender             *string `json:"gender,omitempty" db:"gender"`
	Income             string  `json:"income" db:"income"`
}

type Scholarship struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Provider    string `json:"provider" db:"provider"`
	Amount      string `json:"amount" db:"amount"`
	Deadline    string `json:"deadline" db:"deadline"`
	Eligibility string `json:"eligibility" db:"eligibility"`
	Description string `json:"description" db:"description"`
	Applied     bool   `json:"applied" db:"applied"`
}
