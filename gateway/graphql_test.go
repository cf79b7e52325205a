package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scholara/portal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQLCombinedFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))

		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "students")
		assert.Contains(t, req.Query, "courses")

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"students": []gateway.Student{{ID: 1, FirstName: "Ada", LastName: "Lovelace"}},
				"courses":  []gateway.Course{{ID: 5, Name: "Algebra"}},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL, authedStore(t))
	students, courses, err := client.StudentsAndCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.Len(t, courses, 1)
	assert.Equal(t, "Ada Lovelace", students[0].FullName())
	assert.Equal(t, "Algebra", courses[0].Name)
}

func TestGraphQLErrorsFoldedIntoOneMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{
				{"message": "student not found"},
				{"message": "courses unavailable"},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL, authedStore(t))
	_, _, err := client.StudentsAndCourses(context.Background())
	require.Error(t, err)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "student not found, courses unavailable", statusErr.Message)
}

func TestGraphQLStudentCoursesPassesVariable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 2, req.Variables["studentId"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"studentCourses": []gateway.Course{{ID: 5, Name: "Algebra"}, {ID: 6, Name: "Logic"}},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL, authedStore(t))
	courses, err := client.StudentCoursesGraphQL(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestGraphQLNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL, authedStore(t))
	_, _, err := client.StudentsAndCourses(context.Background())

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}
