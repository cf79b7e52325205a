package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// StudentsPageData contains data for rendering the students page
type StudentsPageData struct {
	AppName    string
	Students   []gateway.Student
	SearchTerm string
	Error      string
}

// StudentDetailPageData contains data for the single-student page
type StudentDetailPageData struct {
	AppName string
	Student *gateway.Student
	Courses []gateway.Course
	Error   string
}

// StudentsPageHandler lists students, optionally filtered by the "q"
// search parameter.
func (s *Server) StudentsPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("students.html")
	if err != nil {
		panic("Failed to parse students template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		client := s.gatewayClient(s.sessionStore(r))

		term := r.URL.Query().Get("q")
		data := StudentsPageData{
			AppName:    s.config.GetAppName(),
			SearchTerm: term,
			Error:      r.URL.Query().Get("error"),
		}

		var fetchErr error
		if term != "" {
			data.Students, fetchErr = client.SearchStudents(r.Context(), term)
		} else {
			data.Students, fetchErr = client.ListStudents(r.Context())
		}
		if fetchErr != nil {
			log.Err(fetchErr).Msg("Students page: fetch failed")
			data.Error = gatewayErrorMessage(fetchErr)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render students template")
			http.Error(w, "Failed to render students page", http.StatusInternalServerError)
		}
	}
}

// StudentDetailHandler shows one student together with their courses,
// resolved through the GraphQL surface in one round trip.
func (s *Server) StudentDetailHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_detail.html")
	if err != nil {
		panic("Failed to parse student detail template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		client := s.gatewayClient(s.sessionStore(r))

		student, err := client.GetStudent(r.Context(), id)
		if err != nil {
			log.Err(err).Int64("student_id", id).Msg("Student detail: fetch failed")
			redirectWithError(w, r, RouteStudents, gatewayErrorMessage(err))
			return
		}

		data := StudentDetailPageData{
			AppName: s.config.GetAppName(),
			Student: student,
		}
		if data.Courses, err = client.StudentCoursesGraphQL(r.Context(), id); err != nil {
			log.Err(err).Int64("student_id", id).Msg("Student detail: courses fetch failed")
			data.Error = gatewayErrorMessage(err)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render student detail template")
			http.Error(w, "Failed to render student page", http.StatusInternalServerError)
		}
	}
}

// StudentCreateHandler processes the new-student form
func (s *Server) StudentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		student := gateway.Student{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
		}
		if student.FirstName == "" || student.LastName == "" || student.Email == "" {
			redirectWithError(w, r, RouteStudents, "First name, last name and email are required")
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		if _, err := client.CreateStudent(r.Context(), student); err != nil {
			redirectWithError(w, r, RouteStudents, gatewayErrorMessage(err))
			return
		}
		http.Redirect(w, r, RouteStudents, http.StatusSeeOther)
	}
}

// StudentUpdateHandler processes the edit-student form
func (s *Server) StudentUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		student := gateway.Student{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
		}

		client := s.gatewayClient(s.sessionStore(r))
		if _, err := client.UpdateStudent(r.Context(), id, student); err != nil {
			redirectWithError(w, r, RouteStudents, gatewayErrorMessage(err))
			return
		}
		http.Redirect(w, r, RouteStudents, http.StatusSeeOther)
	}
}

// StudentDeleteHandler removes a student
func (s *Server) StudentDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		deleted, err := client.DeleteStudent(r.Context(), id)
		if err != nil {
			redirectWithError(w, r, RouteStudents, gatewayErrorMessage(err))
			return
		}
		if !deleted {
			redirectWithError(w, r, RouteStudents, "Student could not be deleted")
			return
		}
		http.Redirect(w, r, RouteStudents, http.StatusSeeOther)
	}
}

// pathID parses the {id} segment of the route pattern.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// gatewayErrorMessage maps any gateway failure to user-presentable
// text, preferring the service's own message when one exists.
func gatewayErrorMessage(err error) string {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return "The service is temporarily unavailable, please try again"
}
