package gateway

import (
	"encoding/json"
	"time"
)

// Student is owned by the external student service; the portal only
// holds a read copy per page load.
type Student struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	UniversityID int64  `json:"universityId,omitempty"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Course is owned by the external course service.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Category   string `json:"category"`
	Schedule   string `json:"schedule"`
}

// Enrollment joins one student to one course. The enrollment service
// serializes the course reference either as "course" or "course_id",
// and "course" may be a bare ID or a nested object; both normalize
// into CourseID.
type Enrollment struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	CourseID   int64     `json:"course"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func (e *Enrollment) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         int64           `json:"id"`
		StudentID  int64           `json:"student_id"`
		Course     json.RawMessage `json:"course"`
		CourseID   int64           `json:"course_id"`
		EnrolledAt time.Time       `json:"enrolled_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	e.ID = aux.ID
	e.StudentID = aux.StudentID
	e.EnrolledAt = aux.EnrolledAt
	e.CourseID = aux.CourseID

	if e.CourseID == 0 && len(aux.Course) > 0 {
		var id int64
		if err := json.Unmarshal(aux.Course, &id); err == nil {
			e.CourseID = id
		} else {
			var nested struct {
				ID int64 `json:"id"`
			}
			if err := json.Unmarshal(aux.Course, &nested); err == nil {
				e.CourseID = nested.ID
			}
		}
	}
	return nil
}

// Translation is the translate endpoint's response. Error, Details and
// Suggestion are populated when the service is reachable but declines
// the request; that outcome is a value, not a Go error.
type Translation struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	OriginalText   string `json:"original_text"`
	Error          string `json:"error,omitempty"`
	Details        string `json:"details,omitempty"`
	Suggestion     string `json:"suggestion,omitempty"`
}

// Declined reports whether the service answered but refused the call.
func (t Translation) Declined() bool {
	return t.Error != ""
}

// Summary is the summarize endpoint's response, with the same declined
// semantics as Translation.
type Summary struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length,omitempty"`
	SummaryLength  int    `json:"summary_length,omitempty"`
	Error          string `json:"error,omitempty"`
	Details        string `json:"details,omitempty"`
	Suggestion     string `json:"suggestion,omitempty"`
}

func (s Summary) Declined() bool {
	return s.Error != ""
}

// RegisterRequest is the self-registration payload for the auth
// service. Role defaults server-side to STUDENT when empty.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Profile is the /api/auth/me response.
type Profile struct {
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
