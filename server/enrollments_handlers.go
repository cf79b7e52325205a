package server

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// EnrollmentRow is one enrollment joined with its student and course
// for display. The join happens here on every page load; the gateway
// only ever serves the raw collections.
type EnrollmentRow struct {
	Enrollment gateway.Enrollment
	Student    *gateway.Student
	Course     *gateway.Course
}

// EnrollmentsPageData contains data for rendering the enrollments page
type EnrollmentsPageData struct {
	AppName      string
	Rows         []EnrollmentRow
	Students     []gateway.Student
	Courses      []gateway.Course
	CountsByName map[string]int
	Error        string
}

// EnrollmentsPageHandler renders the enrollment roster. Students,
// courses and enrollments are fetched in parallel and joined here;
// per-course counts are recomputed from the enrollment collection on
// every load.
func (s *Server) EnrollmentsPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("enrollments.html")
	if err != nil {
		panic("Failed to parse enrollments template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		client := s.gatewayClient(s.sessionStore(r))

		var (
			wg             sync.WaitGroup
			students       []gateway.Student
			courses        []gateway.Course
			enrollments    []gateway.Enrollment
			studentsErr    error
			coursesErr     error
			enrollmentsErr error
		)

		wg.Add(3)
		go func() {
			defer wg.Done()
			students, studentsErr = client.ListStudents(r.Context())
		}()
		go func() {
			defer wg.Done()
			courses, coursesErr = client.ListCourses(r.Context())
		}()
		go func() {
			defer wg.Done()
			enrollments, enrollmentsErr = client.ListEnrollments(r.Context())
		}()
		wg.Wait()

		data := EnrollmentsPageData{
			AppName:  s.config.GetAppName(),
			Students: students,
			Courses:  courses,
			Error:    r.URL.Query().Get("error"),
		}
		for _, fetchErr := range []error{studentsErr, coursesErr, enrollmentsErr} {
			if fetchErr != nil {
				log.Err(fetchErr).Msg("Enrollments page: fetch failed")
				data.Error = gatewayErrorMessage(fetchErr)
				break
			}
		}

		studentsByID := make(map[int64]*gateway.Student, len(students))
		for i := range students {
			studentsByID[students[i].ID] = &students[i]
		}
		coursesByID := make(map[int64]*gateway.Course, len(courses))
		for i := range courses {
			coursesByID[courses[i].ID] = &courses[i]
		}

		counts := gateway.CountByCourse(enrollments)
		data.CountsByName = make(map[string]int, len(counts))
		for courseID, count := range counts {
			if course, ok := coursesByID[courseID]; ok {
				data.CountsByName[course.Name] = count
			}
		}

		data.Rows = make([]EnrollmentRow, 0, len(enrollments))
		for _, e := range enrollments {
			data.Rows = append(data.Rows, EnrollmentRow{
				Enrollment: e,
				Student:    studentsByID[e.StudentID],
				Course:     coursesByID[e.CourseID],
			})
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render enrollments template")
			http.Error(w, "Failed to render enrollments page", http.StatusInternalServerError)
		}
	}
}

// EnrollHandler enrolls a student in a course from the roster form
func (s *Server) EnrollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, studentID, ok := enrollmentForm(r)
		if !ok {
			redirectWithError(w, r, RouteEnrollments, "Select both a student and a course")
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		if _, err := client.EnrollStudent(r.Context(), courseID, studentID); err != nil {
			redirectWithError(w, r, RouteEnrollments, gatewayErrorMessage(err))
			return
		}
		http.Redirect(w, r, RouteEnrollments, http.StatusSeeOther)
	}
}

// UnenrollHandler removes a student from a course
func (s *Server) UnenrollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, studentID, ok := enrollmentForm(r)
		if !ok {
			redirectWithError(w, r, RouteEnrollments, "Select both a student and a course")
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		result, err := client.UnenrollStudent(r.Context(), courseID, studentID)
		if err != nil {
			redirectWithError(w, r, RouteEnrollments, gatewayErrorMessage(err))
			return
		}
		if !result.Success {
			redirectWithError(w, r, RouteEnrollments, "Enrollment could not be removed")
			return
		}
		http.Redirect(w, r, RouteEnrollments, http.StatusSeeOther)
	}
}

func enrollmentForm(r *http.Request) (courseID, studentID int64, ok bool) {
	if err := r.ParseForm(); err != nil {
		return 0, 0, false
	}
	courseID, courseErr := strconv.ParseInt(r.FormValue("courseId"), 10, 64)
	studentID, studentErr := strconv.ParseInt(r.FormValue("studentId"), 10, 64)
	return courseID, studentID, courseErr == nil && studentErr == nil
}
