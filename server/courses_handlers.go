package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// CoursesPageData contains data for rendering the courses page
type CoursesPageData struct {
	AppName    string
	Courses    []gateway.Course
	SearchTerm string
	Error      string
}

// CoursesPageHandler lists courses, optionally filtered by the "q"
// search parameter.
func (s *Server) CoursesPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("courses.html")
	if err != nil {
		panic("Failed to parse courses template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		client := s.gatewayClient(s.sessionStore(r))

		term := r.URL.Query().Get("q")
		data := CoursesPageData{
			AppName:    s.config.GetAppName(),
			SearchTerm: term,
			Error:      r.URL.Query().Get("error"),
		}

		var fetchErr error
		if term != "" {
			data.Courses, fetchErr = client.SearchCourses(r.Context(), term)
		} else {
			data.Courses, fetchErr = client.ListCourses(r.Context())
		}
		if fetchErr != nil {
			log.Err(fetchErr).Msg("Courses page: fetch failed")
			data.Error = gatewayErrorMessage(fetchErr)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render courses template")
			http.Error(w, "Failed to render courses page", http.StatusInternalServerError)
		}
	}
}

// CourseCreateHandler processes the new-course form
func (s *Server) CourseCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		course := gateway.Course{
			Name:       r.FormValue("name"),
			Instructor: r.FormValue("instructor"),
			Category:   r.FormValue("category"),
			Schedule:   r.FormValue("schedule"),
		}
		if course.Name == "" || course.Instructor == "" {
			redirectWithError(w, r, RouteCourses, "Course name and instructor are required")
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		if _, err := client.CreateCourse(r.Context(), course); err != nil {
			redirectWithError(w, r, RouteCourses, gatewayErrorMessage(err))
			return
		}
		http.Redirect(w, r, RouteCourses, http.StatusSeeOther)
	}
}

// CourseUpdateHandler processes the edit-course form
func (s *Server) CourseUpdateHandler() http.HandlerFunc {
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

		course := gateway.Course{
			Name:       r.FormValue("name"),
			Instructor: r.FormValue("instructor"),
			Category:   r.FormValue("category"),
			Schedule:   r.FormValue("schedule"),
		}

		client := s.gatewayClient(s.sessionStore(r))
		if _, err := client.UpdateCourse(r.Context(), id, course); err != nil {
			redirectWithError(w, r, RouteCourses, gatewayErrorMessage(err))
			return
		}
		http.Redirect(w, r, RouteCourses, http.StatusSeeOther)
	}
}

// CourseDeleteHandler removes a course
func (s *Server) CourseDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		client := s.gatewayClient(s.sessionStore(r))
		deleted, err := client.DeleteCourse(r.Context(), id)
		if err != nil {
			redirectWithError(w, r, RouteCourses, gatewayErrorMessage(err))
			return
		}
		if !deleted {
			redirectWithError(w, r, RouteCourses, "Course could not be deleted")
			return
		}
		http.Redirect(w, r, RouteCourses, http.StatusSeeOther)
	}
}
