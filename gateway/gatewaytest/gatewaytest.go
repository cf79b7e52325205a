// Package gatewaytest provides an in-memory stand-in for the platform
// API gateway, backing handler and flow tests without the real student,
// course, enrollment, auth and AI services.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeded credentials available to every test.
const (
	AdminEmail      = "admin@scholara.com"
	AdminPassword   = "AdminPass1"
	StudentEmail    = "sam@scholara.com"
	StudentPassword = "StudentPass1"
)

type account struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         string
}

type enrollment struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	CourseID   int64     `json:"course"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type student struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Category   string `json:"category"`
	Schedule   string `json:"schedule"`
}

// Server is the running stub. All state lives in memory and is guarded
// by one mutex; the stub is not meant to be fast, only faithful.
type Server struct {
	mu          sync.Mutex
	httpServer  *httptest.Server
	signingKey  []byte
	accounts    map[string]*account
	students    map[int64]student
	courses     map[int64]course
	enrollments map[int64]enrollment
	nextID      int64

	aiDown          bool
	studentsDown    bool
	enrollmentsDown bool
}

// New starts a seeded stub gateway. The caller owns shutdown via Close.
func New() *Server {
	s := &Server{
		signingKey:  []byte(uuid.New().String()),
		accounts:    make(map[string]*account),
		students:    make(map[int64]student),
		courses:     make(map[int64]course),
		enrollments: make(map[int64]enrollment),
		nextID:      100,
	}
	s.seed()
	s.httpServer = httptest.NewServer(s.routes())
	return s
}

func (s *Server) URL() string { return s.httpServer.URL }

func (s *Server) Close() { s.httpServer.Close() }

// SetAIDown toggles the AI endpoints into their declined state.
func (s *Server) SetAIDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiDown = down
}

// SetStudentsDown makes the student endpoints answer 503, leaving the
// rest of the gateway healthy.
func (s *Server) SetStudentsDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentsDown = down
}

// SetEnrollmentsDown makes the enrollment listing answer 503, leaving
// the rest of the gateway healthy.
func (s *Server) SetEnrollmentsDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollmentsDown = down
}

func (s *Server) seed() {
	s.addAccount("Admin User", AdminEmail, AdminPassword, "ADMIN")
	s.addAccount("Sam Student", StudentEmail, StudentPassword, "STUDENT")

	s.students[1] = student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@scholara.com"}
	s.students[2] = student{ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@scholara.com"}
	s.courses[1] = course{ID: 1, Name: "Algebra", Instructor: "Emmy Noether", Category: "Mathematics", Schedule: "Mon 09:00"}
	s.courses[2] = course{ID: 2, Name: "Logic", Instructor: "Gottlob Frege", Category: "Philosophy", Schedule: "Wed 14:00"}
	s.enrollments[1] = enrollment{ID: 1, StudentID: 1, CourseID: 1, EnrolledAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
}

func (s *Server) addAccount(fullName, email, password, role string) *account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	acct := &account{
		ID:           int64(len(s.accounts) + 1),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	s.accounts[email] = acct
	return acct
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) mintToken(acct *account) string {
	claims := jwtlib.MapClaims{
		"iss":   "scholara-stub",
		"sub":   strconv.FormatInt(acct.ID, 10),
		"email": acct.Email,
		"name":  acct.FullName,
		"role":  acct.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"jti":   uuid.New().String(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		panic(fmt.Sprintf("gatewaytest: sign token: %v", err))
	}
	return token
}

// authenticate resolves the Bearer token on a request back to the
// account it was minted for.
func (s *Server) authenticate(r *http.Request) (*account, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return nil, false
	}

	token, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, false
	}
	email, _ := claims["email"].(string)
	acct, ok := s.accounts[email]
	return acct, ok
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/google", s.handleGoogle)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)

	mux.HandleFunc("GET /api/students", s.requireAuth(s.handleListStudents))
	mux.HandleFunc("GET /api/students/search", s.requireAuth(s.handleSearchStudents))
	mux.HandleFunc("POST /api/students", s.requireAuth(s.handleCreateStudent))
	mux.HandleFunc("GET /api/students/{id}", s.requireAuth(s.handleGetStudent))
	mux.HandleFunc("PUT /api/students/{id}", s.requireAuth(s.handleUpdateStudent))
	mux.HandleFunc("DELETE /api/students/{id}", s.requireAuth(s.handleDeleteStudent))
	mux.HandleFunc("GET /api/students/{id}/courses/", s.requireAuth(s.handleStudentCourses))

	mux.HandleFunc("GET /api/courses/", s.requireAuth(s.handleListCourses))
	mux.HandleFunc("POST /api/courses/", s.requireAuth(s.handleCreateCourse))
	mux.HandleFunc("GET /api/courses/{id}/", s.requireAuth(s.handleGetCourse))
	mux.HandleFunc("PUT /api/courses/{id}/", s.requireAuth(s.handleUpdateCourse))
	mux.HandleFunc("DELETE /api/courses/{id}/", s.requireAuth(s.handleDeleteCourse))
	mux.HandleFunc("GET /api/courses/{id}/students/", s.requireAuth(s.handleCourseStudents))
	mux.HandleFunc("POST /api/courses/{id}/enroll/", s.requireAuth(s.handleEnroll))
	mux.HandleFunc("DELETE /api/courses/{id}/unenroll/", s.requireAuth(s.handleUnenroll))

	mux.HandleFunc("GET /api/enrollments/", s.requireAuth(s.handleListEnrollments))

	mux.HandleFunc("POST /api/translate/", s.requireAuth(s.handleTranslate))
	mux.HandleFunc("POST /api/summarize/", s.requireAuth(s.handleSummarize))

	mux.HandleFunc("POST /graphql", s.requireAuth(s.handleGraphQL))

	return mux
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) authPayload(acct *account) map[string]any {
	return map[string]any{
		"accessToken":  s.mintToken(acct),
		"refreshToken": uuid.New().String(),
		"userId":       acct.ID,
		"fullName":     acct.FullName,
		"email":        acct.Email,
		"role":         acct.Role,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[req.Email]
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, s.authPayload(acct))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Full name, email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already registered"})
		return
	}
	if req.Role == "" {
		req.Role = "STUDENT"
	}
	acct := s.addAccount(req.FullName, req.Email, req.Password, req.Role)
	writeJSON(w, http.StatusCreated, s.authPayload(acct))
}

// handleGoogle accepts any non-empty credential and signs in a fixed
// federated account, which is all the portal-side flow needs.
func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing credential"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts["google@scholara.com"]
	if !ok {
		acct = s.addAccount("Google User", "google@scholara.com", uuid.New().String(), "STUDENT")
	}
	writeJSON(w, http.StatusOK, s.authPayload(acct))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	acct, ok := s.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"userId":   acct.ID,
		"fullName": acct.FullName,
		"email":    acct.Email,
		"role":     acct.Role,
	})
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.studentsDown {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Student service unavailable"})
		return
	}

	results := s.studentList()
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(results), "next": nil, "previous": nil, "results": results,
	})
}

func (s *Server) studentList() []student {
	results := make([]student, 0, len(s.students))
	for _, st := range s.students {
		results = append(results, st)
	}
	sortByID(results, func(st student) int64 { return st.ID })
	return results
}

func (s *Server) handleSearchStudents(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("q"))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.studentsDown {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Student service unavailable"})
		return
	}

	results := make([]student, 0)
	for _, st := range s.studentList() {
		haystack := strings.ToLower(st.FirstName + " " + st.LastName + " " + st.Email)
		if strings.Contains(haystack, term) {
			results = append(results, st)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(results), "next": nil, "previous": nil, "results": results,
	})
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Student not found"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var st student
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st.ID = s.allocID()
	s.students[st.ID] = st
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var st student
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Student not found"})
		return
	}
	st.ID = id
	s.students[id] = st
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Student not found"})
		return
	}
	delete(s.students, id)
	for eid, e := range s.enrollments {
		if e.StudentID == id {
			delete(s.enrollments, eid)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Courses answer as a bare JSON array, unlike the student service's
// paginated envelope. Both shapes exist in the real gateway.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(r.URL.Query().Get("search"))
	results := make([]course, 0, len(s.courses))
	for _, c := range s.courses {
		haystack := strings.ToLower(c.Name + " " + c.Instructor + " " + c.Category)
		if term == "" || strings.Contains(haystack, term) {
			results = append(results, c)
		}
	}
	sortByID(results, func(c course) int64 { return c.ID })
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Course not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var c course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.allocID()
	s.courses[c.ID] = c
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Course %q created successfully!", c.Name),
		"course":  c,
	})
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var c course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Course not found"})
		return
	}
	c.ID = id
	s.courses[id] = c
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Course %q updated successfully!", c.Name),
		"course":  c,
	})
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Course not found"})
		return
	}
	delete(s.courses, id)
	for eid, e := range s.enrollments {
		if e.CourseID == id {
			delete(s.enrollments, eid)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enrollmentsDown {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Enrollment service unavailable"})
		return
	}

	results := make([]enrollment, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		results = append(results, e)
	}
	sortByID(results, func(e enrollment) int64 { return e.ID })
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	courseID, _ := pathID(r)
	var req struct {
		StudentID int64 `json:"student_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[courseID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Course not found"})
		return
	}
	if _, ok := s.students[req.StudentID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Student not found"})
		return
	}
	for _, e := range s.enrollments {
		if e.CourseID == courseID && e.StudentID == req.StudentID {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Student already enrolled in this course"})
			return
		}
	}

	e := enrollment{ID: s.allocID(), StudentID: req.StudentID, CourseID: courseID, EnrolledAt: time.Now().UTC()}
	s.enrollments[e.ID] = e
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUnenroll(w http.ResponseWriter, r *http.Request) {
	courseID, _ := pathID(r)
	studentID, err := strconv.ParseInt(r.URL.Query().Get("student_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing student_id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for eid, e := range s.enrollments {
		if e.CourseID == courseID && e.StudentID == studentID {
			delete(s.enrollments, eid)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Enrollment not found"})
}

func (s *Server) handleCourseStudents(w http.ResponseWriter, r *http.Request) {
	courseID, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0)
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			ids = append(ids, e.StudentID)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"student_ids": ids})
}

func (s *Server) handleStudentCourses(w http.ResponseWriter, r *http.Request) {
	studentID, _ := pathID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"courses": s.coursesForStudent(studentID)})
}

func (s *Server) coursesForStudent(studentID int64) []course {
	courses := make([]course, 0)
	for _, e := range s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		if c, ok := s.courses[e.CourseID]; ok {
			courses = append(courses, c)
		}
	}
	sortByID(courses, func(c course) int64 { return c.ID })
	return courses
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	down := s.aiDown
	s.mu.Unlock()
	if down {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":      "Model unavailable",
			"details":    "The translation model is not responding",
			"suggestion": "Try again later",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"translated_text": fmt.Sprintf("[%s] %s", req.TargetLanguage, req.Text),
		"source_language": "auto",
		"target_language": req.TargetLanguage,
		"original_text":   req.Text,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		MaxLength int    `json:"max_length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	down := s.aiDown
	s.mu.Unlock()
	if down {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":      "Model unavailable",
			"details":    "The summarization model is not responding",
			"suggestion": "Try again later",
		})
		return
	}

	summary := req.Text
	if req.MaxLength > 0 && len(summary) > req.MaxLength {
		summary = summary[:req.MaxLength]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":         summary,
		"original_length": len(req.Text),
		"summary_length":  len(summary),
	})
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case strings.Contains(req.Query, "studentCourses"):
		studentID := variableID(req.Variables["studentId"])
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"studentCourses": s.coursesForStudent(studentID)},
		})
	case strings.Contains(req.Query, "students") && strings.Contains(req.Query, "courses"):
		courses := make([]course, 0, len(s.courses))
		for _, c := range s.courses {
			courses = append(courses, c)
		}
		sortByID(courses, func(c course) int64 { return c.ID })
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"students": s.studentList(), "courses": courses},
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"errors": []map[string]string{{"message": "Unknown query"}},
		})
	}
}

// variableID accepts a GraphQL ID serialized as a number or a string.
func variableID(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
