package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scholara/portal/gateway"
)

// TransportResult is the outcome of loading students and courses over
// one transport.
type TransportResult struct {
	Students []gateway.Student
	Courses  []gateway.Course
	Requests int
	Duration time.Duration
	Error    string
}

// ComparisonPageData contains data for rendering the transport
// comparison page
type ComparisonPageData struct {
	AppName string
	REST    TransportResult
	GraphQL TransportResult
}

// ComparisonPageHandler loads the same students-plus-courses data set
// twice, once as separate REST round trips and once as a single
// GraphQL query, and shows both timings side by side. Either side
// failing reports on that side only.
func (s *Server) ComparisonPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("comparison.html")
	if err != nil {
		panic("Failed to parse comparison template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		client := s.gatewayClient(s.sessionStore(r))

		data := ComparisonPageData{
			AppName: s.config.GetAppName(),
			REST:    loadOverREST(r, client),
			GraphQL: loadOverGraphQL(r, client),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render comparison template")
			http.Error(w, "Failed to render comparison page", http.StatusInternalServerError)
		}
	}
}

func loadOverREST(r *http.Request, client *gateway.Client) TransportResult {
	result := TransportResult{Requests: 2}
	started := time.Now()

	students, err := client.ListStudents(r.Context())
	if err != nil {
		log.Err(err).Msg("Comparison: REST students fetch failed")
		result.Error = gatewayErrorMessage(err)
		return result
	}
	courses, err := client.ListCourses(r.Context())
	if err != nil {
		log.Err(err).Msg("Comparison: REST courses fetch failed")
		result.Error = gatewayErrorMessage(err)
		return result
	}

	result.Duration = time.Since(started)
	result.Students = students
	result.Courses = courses
	return result
}

func loadOverGraphQL(r *http.Request, client *gateway.Client) TransportResult {
	result := TransportResult{Requests: 1}
	started := time.Now()

	students, courses, err := client.StudentsAndCourses(r.Context())
	if err != nil {
		log.Err(err).Msg("Comparison: GraphQL fetch failed")
		result.Error = gatewayErrorMessage(err)
		return result
	}

	result.Duration = time.Since(started)
	result.Students = students
	result.Courses = courses
	return result
}
