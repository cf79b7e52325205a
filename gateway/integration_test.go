package gateway_test

import (
	"context"
	"testing"

	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/gateway/gatewaytest"
	"github.com/scholara/portal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the real client against the stub gateway, end to end
// through login, authorized calls and the enrollment round trip.

func loggedInClient(t *testing.T, server *gatewaytest.Server, email, password string) *gateway.Client {
	t.Helper()

	store := session.NewStore(session.NewInMemoryStorage())
	client := gateway.NewClient(server.URL(), store)

	payload, err := client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NoError(t, store.SetSession(payload))
	return client
}

func TestLoginAgainstStubGateway(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewInMemoryStorage())
	client := gateway.NewClient(server.URL(), store)

	payload, err := client.Login(context.Background(), gatewaytest.AdminEmail, gatewaytest.AdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, payload.AccessToken)
	assert.NotEmpty(t, payload.RefreshToken)
	assert.Equal(t, session.RoleAdmin, payload.Role)
	assert.Equal(t, "Admin User", payload.FullName)
}

func TestLoginRejectedWithWrongPassword(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL(), session.NewStore(session.NewInMemoryStorage()))
	_, err := client.Login(context.Background(), gatewaytest.AdminEmail, "wrong")

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Invalid email or password", statusErr.Message)
}

func TestUnauthenticatedCallRejectedByGateway(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL(), session.NewStore(session.NewInMemoryStorage()))
	_, err := client.ListStudents(context.Background())

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Authentication required", statusErr.Message)
}

func TestEnrollmentRoundTrip(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)
	ctx := context.Background()
	client := loggedInClient(t, server, gatewaytest.AdminEmail, gatewaytest.AdminPassword)

	before, err := client.ListEnrollments(ctx)
	require.NoError(t, err)

	created, err := client.EnrollStudent(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.StudentID)
	assert.Equal(t, int64(2), created.CourseID)

	after, err := client.ListEnrollments(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	// Double enrollment is refused with the service's message intact.
	_, err = client.EnrollStudent(ctx, 2, 1)
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Student already enrolled in this course", statusErr.Message)

	result, err := client.UnenrollStudent(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, result.Success)

	final, err := client.ListEnrollments(ctx)
	require.NoError(t, err)
	assert.Len(t, final, len(before))
}

func TestEnrollmentCountsRecomputedFromCollection(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)
	ctx := context.Background()
	client := loggedInClient(t, server, gatewaytest.AdminEmail, gatewaytest.AdminPassword)

	_, err := client.EnrollStudent(ctx, 1, 2)
	require.NoError(t, err)

	enrollments, err := client.ListEnrollments(ctx)
	require.NoError(t, err)

	byCourse := gateway.CountByCourse(enrollments)
	byStudent := gateway.CountByStudent(enrollments)
	assert.Equal(t, 2, byCourse[1])
	assert.Equal(t, 1, byStudent[1])
	assert.Equal(t, 1, byStudent[2])
}

func TestCourseLifecycleAgainstStub(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)
	ctx := context.Background()
	client := loggedInClient(t, server, gatewaytest.AdminEmail, gatewaytest.AdminPassword)

	created, err := client.CreateCourse(ctx, gateway.Course{Name: "Topology", Instructor: "Poincare", Category: "Mathematics"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.Schedule = "Fri 10:00"
	updated, err := client.UpdateCourse(ctx, created.ID, *created)
	require.NoError(t, err)
	assert.Equal(t, "Fri 10:00", updated.Schedule)

	found, err := client.SearchCourses(ctx, "topology")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, created.ID, found[0].ID)

	deleted, err := client.DeleteCourse(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAIDeclinedAgainstStub(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)
	ctx := context.Background()
	client := loggedInClient(t, server, gatewaytest.StudentEmail, gatewaytest.StudentPassword)

	translation, err := client.Translate(ctx, "Hello", "fr")
	require.NoError(t, err)
	assert.False(t, translation.Declined())
	assert.Equal(t, "[fr] Hello", translation.TranslatedText)

	server.SetAIDown(true)

	translation, err = client.Translate(ctx, "Hello", "fr")
	require.NoError(t, err)
	assert.True(t, translation.Declined())
	assert.Equal(t, "Model unavailable", translation.Error)
	assert.Equal(t, "Try again later", translation.Suggestion)

	summary, err := client.Summarize(ctx, "A long passage", 50)
	require.NoError(t, err)
	assert.True(t, summary.Declined())
}

func TestGraphQLAgainstStub(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)
	ctx := context.Background()
	client := loggedInClient(t, server, gatewaytest.AdminEmail, gatewaytest.AdminPassword)

	students, courses, err := client.StudentsAndCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Len(t, courses, 2)

	enrolled, err := client.StudentCoursesGraphQL(ctx, 1)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "Algebra", enrolled[0].Name)
}

func TestRegisterDefaultsToStudentRole(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)

	client := gateway.NewClient(server.URL(), session.NewStore(session.NewInMemoryStorage()))
	payload, err := client.Register(context.Background(), gateway.RegisterRequest{
		FullName: "New Person",
		Email:    "new@scholara.com",
		Password: "NewPass123",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleStudent, payload.Role)
	assert.NotEmpty(t, payload.AccessToken)

	_, err = client.Register(context.Background(), gateway.RegisterRequest{
		FullName: "New Person",
		Email:    "new@scholara.com",
		Password: "NewPass123",
	})
	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Email already registered", statusErr.Message)
}

func TestMeReturnsProfileForToken(t *testing.T) {
	server := gatewaytest.New()
	t.Cleanup(server.Close)

	client := loggedInClient(t, server, gatewaytest.StudentEmail, gatewaytest.StudentPassword)
	profile, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, gatewaytest.StudentEmail, profile.Email)
	assert.Equal(t, "STUDENT", profile.Role)
}
