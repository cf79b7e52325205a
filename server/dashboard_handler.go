package server

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// DashboardPageData contains data for rendering the admin dashboard
type DashboardPageData struct {
	AppName       string
	FullName      string
	StudentCount  int
	CourseCount   int
	Students      []gateway.Student
	Courses       []gateway.Course
	AICallsServed int
	Degraded      bool
}

// DashboardHandler renders the admin landing page. Students and
// courses are fetched in parallel; a failing fetch degrades its
// section to empty rather than failing the whole page.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)
		client := s.gatewayClient(store)

		var (
			wg          sync.WaitGroup
			students    []gateway.Student
			courses     []gateway.Course
			studentsErr error
			coursesErr  error
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			students, studentsErr = client.ListStudents(r.Context())
		}()
		go func() {
			defer wg.Done()
			courses, coursesErr = client.ListCourses(r.Context())
		}()
		wg.Wait()

		if studentsErr != nil {
			log.Err(studentsErr).Msg("Dashboard: students fetch failed")
			students = nil
		}
		if coursesErr != nil {
			log.Err(coursesErr).Msg("Dashboard: courses fetch failed")
			courses = nil
		}
		degraded := studentsErr != nil || coursesErr != nil

		data := DashboardPageData{
			AppName:       s.config.GetAppName(),
			StudentCount:  len(students),
			CourseCount:   len(courses),
			Students:      students,
			Courses:       courses,
			AICallsServed: store.AICalls(),
			Degraded:      degraded,
		}
		if user := store.StoredUser(); user != nil {
			data.FullName = user.FullName
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render dashboard template")
			http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		}
	}
}
