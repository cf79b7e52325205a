package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const coursesPath = "/api/courses/"

// ListCourses returns every course. The course service answers with
// the paginated envelope; callers get a plain slice.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	return list[Course](ctx, c, coursesPath, nil)
}

// GetCourse fetches a single course by ID.
func (c *Client) GetCourse(ctx context.Context, id int64) (*Course, error) {
	var course Course
	if err := c.getJSON(ctx, fmt.Sprintf("%s%d/", coursesPath, id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// SearchCourses filters courses by name, instructor or category.
func (c *Client) SearchCourses(ctx context.Context, term string) ([]Course, error) {
	return list[Course](ctx, c, coursesPath, url.Values{"search": {term}})
}

// CreateCourse creates a course and returns the created record. The
// course service wraps mutations in a {message, course} envelope.
func (c *Client) CreateCourse(ctx context.Context, course Course) (*Course, error) {
	body, status, err := c.request(ctx, http.MethodPost, coursesPath, nil, course)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	return unwrapCourse(status, body)
}

// UpdateCourse replaces a course record and returns the updated one.
func (c *Client) UpdateCourse(ctx context.Context, id int64, course Course) (*Course, error) {
	body, status, err := c.request(ctx, http.MethodPut, fmt.Sprintf("%s%d/", coursesPath, id), nil, course)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, newStatusError(status, body)
	}
	return unwrapCourse(status, body)
}

// DeleteCourse removes a course. Success is derived from the HTTP
// status alone.
func (c *Client) DeleteCourse(ctx context.Context, id int64) (bool, error) {
	_, status, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("%s%d/", coursesPath, id), nil, nil)
	if err != nil {
		return false, err
	}
	return success(status), nil
}

// unwrapCourse accepts both the {message, course} mutation envelope
// and a bare course record.
func unwrapCourse(status int, body []byte) (*Course, error) {
	var envelope struct {
		Course *Course `json:"course"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Course != nil {
		return envelope.Course, nil
	}

	var course Course
	if err := decodeInto(status, body, &course); err != nil {
		return nil, err
	}
	return &course, nil
}
