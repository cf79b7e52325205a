package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const studentsPath = "/api/students"

// ListStudents returns every student known to the student service.
func (c *Client) ListStudents(ctx context.Context) ([]Student, error) {
	return list[Student](ctx, c, studentsPath, nil)
}

// GetStudent fetches a single student by ID.
func (c *Client) GetStudent(ctx context.Context, id int64) (*Student, error) {
	var student Student
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d", studentsPath, id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// SearchStudents runs a free-text search on the student service.
func (c *Client) SearchStudents(ctx context.Context, term string) ([]Student, error) {
	return list[Student](ctx, c, studentsPath+"/search", url.Values{"q": {term}})
}

// CreateStudent creates a student and returns the created record.
func (c *Client) CreateStudent(ctx context.Context, student Student) (*Student, error) {
	body, status, err := c.request(ctx, http.MethodPost, studentsPath, nil, student)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	var created Student
	if err := decodeInto(status, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent replaces a student record and returns the updated one.
func (c *Client) UpdateStudent(ctx context.Context, id int64, student Student) (*Student, error) {
	body, status, err := c.request(ctx, http.MethodPut, fmt.Sprintf("%s/%d", studentsPath, id), nil, student)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	var updated Student
	if err := decodeInto(status, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent removes a student. Success is derived from the HTTP
// status alone; no body is decoded.
func (c *Client) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	_, status, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", studentsPath, id), nil, nil)
	if err != nil {
		return false, err
	}
	return success(status), nil
}
