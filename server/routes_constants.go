package server

import "github.com/scholara/portal/guard"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Pages
	RouteLogin    = guard.LoginRoute
	RouteRegister = "/register"

	// Auth Routes - Form submissions
	RouteAuthLogin    = "/auth/login"
	RouteAuthRegister = "/auth/register"
	RouteAuthLogout   = "/auth/logout"

	// Auth Routes - Federated sign-in
	RouteAuthGoogle         = "/auth/google"
	RouteAuthGoogleCallback = "/auth/google/callback"

	// Admin Pages
	RouteDashboard     = guard.DashboardRoute
	RouteComparison    = "/dashboard/comparison"
	RouteStudents      = "/students"
	RouteStudentDetail = "/students/{id}"
	RouteStudentUpdate = "/students/{id}/update"
	RouteStudentDelete = "/students/{id}/delete"
	RouteCourses       = "/courses"
	RouteCourseUpdate  = "/courses/{id}/update"
	RouteCourseDelete  = "/courses/{id}/delete"
	RouteEnrollments   = "/enrollments"
	RouteEnroll        = "/enrollments/enroll"
	RouteUnenroll      = "/enrollments/unenroll"

	// Student Pages
	RouteChatbot          = guard.ChatbotRoute
	RouteChatbotTranslate = "/chatbot/translate"
	RouteChatbotSummarize = "/chatbot/summarize"
)
