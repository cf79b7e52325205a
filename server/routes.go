package server

import (
	"net/http"

	"github.com/scholara/portal/guard"
	"github.com/scholara/portal/session"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))

	// LOGIN / REGISTER
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))

	// Federated sign-in
	s.RegisterRouteFunc("GET "+RouteAuthGoogle, ChainMiddleware(s.GoogleBeginHandler(), s.PageMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthGoogleCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.PageMiddleware()...))

	// Admin pages (role-gated per navigation)
	adminOnly := s.PageMiddleware(s.RequireRoles(session.RoleAdmin))
	s.RegisterRouteFunc("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), adminOnly...))
	s.RegisterRouteFunc("GET "+RouteComparison, ChainMiddleware(s.ComparisonPageHandler(), adminOnly...))

	s.RegisterRouteFunc("GET "+RouteStudents, ChainMiddleware(s.StudentsPageHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteStudents, ChainMiddleware(s.StudentCreateHandler(), adminOnly...))
	s.RegisterRouteFunc("GET "+RouteStudentDetail, ChainMiddleware(s.StudentDetailHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteStudentUpdate, ChainMiddleware(s.StudentUpdateHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteStudentDelete, ChainMiddleware(s.StudentDeleteHandler(), adminOnly...))

	s.RegisterRouteFunc("GET "+RouteCourses, ChainMiddleware(s.CoursesPageHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteCourses, ChainMiddleware(s.CourseCreateHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteCourseUpdate, ChainMiddleware(s.CourseUpdateHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteCourseDelete, ChainMiddleware(s.CourseDeleteHandler(), adminOnly...))

	s.RegisterRouteFunc("GET "+RouteEnrollments, ChainMiddleware(s.EnrollmentsPageHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteEnroll, ChainMiddleware(s.EnrollHandler(), adminOnly...))
	s.RegisterRouteFunc("POST "+RouteUnenroll, ChainMiddleware(s.UnenrollHandler(), adminOnly...))

	// Student pages
	studentOnly := s.PageMiddleware(s.RequireRoles(session.RoleStudent))
	s.RegisterRouteFunc("GET "+RouteChatbot, ChainMiddleware(s.ChatbotPageHandler(), studentOnly...))
	s.RegisterRouteFunc("POST "+RouteChatbotTranslate, ChainMiddleware(s.TranslateHandler(), studentOnly...))
	s.RegisterRouteFunc("POST "+RouteChatbotSummarize, ChainMiddleware(s.SummarizeHandler(), studentOnly...))
}

// IndexHandler routes the bare origin to the visitor's landing page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := s.sessionStore(r)

		if guard.Decide(store) != guard.Allow {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, guard.RoleHome(store.StoredUser().Role), http.StatusSeeOther)
	}
}
