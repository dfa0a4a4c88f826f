package result

import "fmt"

// Status classifies the terminal outcome of one roll-number lookup.
type Status string

const (
	// StatusFound - the record was located and produced GPA and/or referred-subject data.
	StatusFound Status = "found"
	// StatusDropout - the record matched the chronic-failure pattern (see classify).
	StatusDropout Status = "dropout"
	// StatusNotFound - no record, or a record with no recognizable data; see Outcome.Reason.
	StatusNotFound Status = "not_found"
)

// Reasons for StatusNotFound. The distinction matters to callers: the first
// means the roll/session combination has no result at all, the second flags
// a format anomaly in the source document.
const (
	ReasonRollNotPresent  = "roll not present"
	ReasonNoParseableData = "no parseable data"
)

// GPA is one semester's outcome: either a numeric grade point average
// or a "referred" marker (the student must retake subjects that semester).
type GPA struct {
	Semester int     `json:"semester"` // ordinal, 1..8
	Label    string  `json:"label"`    // "1st".."8th"
	Referred bool    `json:"referred"`
	Score    float64 `json:"score,omitempty"` // only meaningful when !Referred
}

// Outcome is the final classification for one roll number.
// It is a plain value; malformed document text degrades to
// StatusNotFound, never to an error.
type Outcome struct {
	Roll     string   `json:"roll"`
	Status   Status   `json:"status"`
	Reason   string   `json:"reason,omitempty"`
	GPAs     []GPA    `json:"gpas,omitempty"`              // ascending by Semester
	Referred []string `json:"referred_subjects,omitempty"` // deduplicated, e.g. "512(DataStructures)"
}

// Found reports whether the outcome carries result data.
func (o Outcome) Found() bool { return o.Status == StatusFound }

// SemesterLabel maps a semester ordinal to its display label: 1st, 2nd, 3rd, 4th...
func SemesterLabel(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func notFound(roll, reason string) Outcome {
	return Outcome{Roll: roll, Status: StatusNotFound, Reason: reason}
}
