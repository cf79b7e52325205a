package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const enrollmentsPath = "/api/enrollments/"

// EnrollResult is the outcome of an enroll or unenroll call. A 204 No
// Content response carries no enrollment record.
type EnrollResult struct {
	Success    bool
	Enrollment *Enrollment
}

// ListEnrollments returns the full student-course join collection.
// Per-course and per-student counts are derived from it client-side on
// every reload, never persisted.
func (c *Client) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	return list[Enrollment](ctx, c, enrollmentsPath, nil)
}

// GetEnrollment fetches a single enrollment record by ID.
func (c *Client) GetEnrollment(ctx context.Context, id int64) (*Enrollment, error) {
	var enrollment Enrollment
	if err := c.getJSON(ctx, fmt.Sprintf("%s%d/", enrollmentsPath, id), nil, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// EnrollStudent enrolls a student in a course via the course-scoped
// create endpoint and returns the created enrollment.
func (c *Client) EnrollStudent(ctx context.Context, courseID, studentID int64) (*Enrollment, error) {
	path := fmt.Sprintf("/api/courses/%d/enroll/", courseID)
	body, status, err := c.request(ctx, http.MethodPost, path, nil, map[string]int64{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	var enrollment Enrollment
	if err := decodeInto(status, body, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UnenrollStudent removes a student from a course via the scoped
// delete endpoint, identifying the student by query parameter. A 204
// response is normalized to a success result since no body is present.
func (c *Client) UnenrollStudent(ctx context.Context, courseID, studentID int64) (*EnrollResult, error) {
	path := fmt.Sprintf("/api/courses/%d/unenroll/", courseID)
	query := url.Values{"student_id": {strconv.FormatInt(studentID, 10)}}

	body, status, err := c.request(ctx, http.MethodDelete, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	if status == http.StatusNoContent {
		return &EnrollResult{Success: true}, nil
	}

	var enrollment Enrollment
	if err := decodeInto(status, body, &enrollment); err != nil {
		return nil, err
	}
	return &EnrollResult{Success: true, Enrollment: &enrollment}, nil
}

// CourseStudents lists the student IDs enrolled in a course.
func (c *Client) CourseStudents(ctx context.Context, courseID int64) ([]int64, error) {
	var payload struct {
		StudentIDs []int64 `json:"student_ids"`
	}
	path := fmt.Sprintf("/api/courses/%d/students/", courseID)
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.StudentIDs, nil
}

// StudentCourses lists the courses a student is enrolled in.
func (c *Client) StudentCourses(ctx context.Context, studentID int64) ([]Course, error) {
	var payload struct {
		Courses []Course `json:"courses"`
	}
	path := fmt.Sprintf("/api/students/%d/courses/", studentID)
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Courses, nil
}

// CountByCourse derives per-course enrollment counts. Recomputed on
// every data reload; never stored.
func CountByCourse(enrollments []Enrollment) map[int64]int {
	counts := make(map[int64]int)
	for _, e := range enrollments {
		counts[e.CourseID]++
	}
	return counts
}

// CountByStudent derives per-student enrollment counts.
func CountByStudent(enrollments []Enrollment) map[int64]int {
	counts := make(map[int64]int)
	for _, e := range enrollments {
		counts[e.StudentID]++
	}
	return counts
}
