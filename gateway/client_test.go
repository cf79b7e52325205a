package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedStore(t *testing.T) *session.Store {
	t.Helper()

	store := session.NewStore(session.NewInMemoryStorage())
	require.NoError(t, store.SetSession(session.Payload{
		AccessToken:  "t1",
		RefreshToken: "r1",
		UserID:       1,
		FullName:     "Admin",
		Email:        "admin@scholara.com",
		Role:         session.RoleAdmin,
	}))
	return store
}

func newClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return gateway.NewClient(server.URL, authedStore(t))
}

func TestListNormalizationBareArrayAndEnvelope(t *testing.T) {
	students := []gateway.Student{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@scholara.com"},
		{ID: 2, FirstName: "Alan", LastName: "Turing", Email: "alan@scholara.com"},
	}

	bare := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(students)
	})
	enveloped := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"count": 2, "next": nil, "previous": nil, "results": students,
		})
	})

	fromBare, err := bare.ListStudents(context.Background())
	require.NoError(t, err)
	fromEnvelope, err := enveloped.ListStudents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromEnvelope)
	assert.Equal(t, students, fromBare)
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []gateway.Course{}})
	})

	courses, err := client.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestAuthorizationHeaderAttached(t *testing.T) {
	var gotAuth, gotContentType string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(gateway.Student{ID: 3})
	})

	_, err := client.CreateStudent(context.Background(), gateway.Student{FirstName: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestStructuredRejectionSurfacesServerMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Student already enrolled"})
	})

	_, err := client.EnrollStudent(context.Background(), 1, 2)
	require.Error(t, err)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "Student already enrolled", statusErr.Message)
}

func TestUnstructuredRejectionSynthesizesMessage(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetStudent(context.Background(), 1)
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Equal(t, "request failed with status 502", statusErr.Message)
}

func TestUndecodableSuccessBodyTreatedAsRejection(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.GetCourse(context.Background(), 1)
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusOK, statusErr.Status)
}

func TestTransportFailureIsNotAStatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // immediately unreachable
	client := gateway.NewClient(server.URL, authedStore(t))

	_, err := client.ListStudents(context.Background())
	require.Error(t, err)
	var statusErr *gateway.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestDeleteReturnsBooleanFromStatus(t *testing.T) {
	ok := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	deleted, err := ok.DeleteStudent(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	deleted, err = missing.DeleteCourse(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEnrollStudentScopedCreate(t *testing.T) {
	enrolledAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/courses/7/enroll/", r.URL.Path)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(2), body["student_id"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 11, "student_id": 2, "course": 7, "enrolled_at": enrolledAt,
		})
	})

	enrollment, err := client.EnrollStudent(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), enrollment.StudentID)
	assert.Equal(t, int64(7), enrollment.CourseID)
	assert.True(t, enrollment.EnrolledAt.Equal(enrolledAt))
}

func TestUnenrollStudentNoContentNormalized(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/courses/7/unenroll/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("student_id"))
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := client.UnenrollStudent(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.Enrollment)
}

func TestEnrollmentCourseFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"course as id", `[{"id":1,"student_id":2,"course":7,"enrolled_at":"2026-02-10T09:00:00Z"}]`},
		{"course_id key", `[{"id":1,"student_id":2,"course_id":7,"enrolled_at":"2026-02-10T09:00:00Z"}]`},
		{"course as object", `[{"id":1,"student_id":2,"course":{"id":7,"name":"Algebra"},"enrolled_at":"2026-02-10T09:00:00Z"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			enrollments, err := client.ListEnrollments(context.Background())
			require.NoError(t, err)
			require.Len(t, enrollments, 1)
			assert.Equal(t, int64(7), enrollments[0].CourseID)
		})
	}
}

func TestCourseMutationEnvelopeUnwrapped(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": `Course "Algebra" created successfully!`,
			"course":  gateway.Course{ID: 5, Name: "Algebra", Instructor: "Noether"},
		})
	})

	course, err := client.CreateCourse(context.Background(), gateway.Course{Name: "Algebra"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), course.ID)
	assert.Equal(t, "Noether", course.Instructor)
}

func TestTranslateDeclinedSurfacesErrorAndSuggestion(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      "Model unavailable",
			"suggestion": "Try again later",
		})
	})

	translation, err := client.Translate(context.Background(), "Bonjour", "en")
	require.NoError(t, err)
	assert.True(t, translation.Declined())
	assert.Equal(t, "Model unavailable", translation.Error)
	assert.Equal(t, "Try again later", translation.Suggestion)
	assert.Empty(t, translation.TranslatedText)
}

func TestTranslateSuccess(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fr", body["target_language"])

		json.NewEncoder(w).Encode(map[string]string{
			"translated_text": "Bonjour",
			"source_language": "en",
			"target_language": "fr",
			"original_text":   "Hello",
		})
	})

	translation, err := client.Translate(context.Background(), "Hello", "fr")
	require.NoError(t, err)
	assert.False(t, translation.Declined())
	assert.Equal(t, "Bonjour", translation.TranslatedText)
}

func TestSummarizeDefaultsMaxLength(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 150, body["max_length"])

		json.NewEncoder(w).Encode(map[string]any{"summary": "short", "original_length": 500})
	})

	summary, err := client.Summarize(context.Background(), "long text", 0)
	require.NoError(t, err)
	assert.Equal(t, "short", summary.Summary)
}

func TestLoginReturnsSessionPayload(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  "t1",
			"refreshToken": "r1",
			"userId":       1,
			"fullName":     "Admin",
			"email":        "admin@scholara.com",
			"role":         "ADMIN",
		})
	})

	payload, err := client.Login(context.Background(), "admin@scholara.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", payload.AccessToken)
	assert.Equal(t, session.RoleAdmin, payload.Role)
}

func TestUnauthenticatedRequestsCarryNoHeader(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL, session.NewStore(session.NewInMemoryStorage()))
	_, err := client.ListStudents(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
}
