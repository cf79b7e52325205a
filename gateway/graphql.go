package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/scholara/portal/internal/errors"
)

// The gateway also exposes a single GraphQL endpoint, used as an
// alternate path for combined fetches that would otherwise take
// several REST round trips.

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQL posts a query with variables and decodes the data field into
// out. Errors returned as a list under the errors field are folded
// into one combined error message.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	raw, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errors.Wrapf(err, "[Client.GraphQL] marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(raw))
	if err != nil {
		return errors.Wrapf(err, "[Client.GraphQL] build request")
	}
	for key, value := range c.headers.AuthHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.GraphQL] post")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[Client.GraphQL] read")
	}

	var result graphqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return newStatusError(resp.StatusCode, nil)
	}
	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		return &StatusError{Status: resp.StatusCode, Message: strings.Join(messages, ", ")}
	}
	if !success(resp.StatusCode) {
		return newStatusError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return newStatusError(resp.StatusCode, nil)
	}
	return nil
}

const studentsAndCoursesQuery = `
query {
  students { id firstName lastName email }
  courses { id name instructor category schedule }
}`

// StudentsAndCourses fetches both collections in a single round trip.
func (c *Client) StudentsAndCourses(ctx context.Context) ([]Student, []Course, error) {
	var data struct {
		Students []Student `json:"students"`
		Courses  []Course  `json:"courses"`
	}
	if err := c.GraphQL(ctx, studentsAndCoursesQuery, nil, &data); err != nil {
		return nil, nil, err
	}
	return data.Students, data.Courses, nil
}

const studentCoursesQuery = `
query($studentId: ID!) {
  studentCourses(studentId: $studentId) { id name instructor category schedule }
}`

// StudentCoursesGraphQL resolves a student's courses through the
// GraphQL surface.
func (c *Client) StudentCoursesGraphQL(ctx context.Context, studentID int64) ([]Course, error) {
	var data struct {
		StudentCourses []Course `json:"studentCourses"`
	}
	if err := c.GraphQL(ctx, studentCoursesQuery, map[string]any{"studentId": studentID}, &data); err != nil {
		return nil, err
	}
	return data.StudentCourses, nil
}
