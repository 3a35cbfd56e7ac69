package asana_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NirGallner/asana-go/pkg/asana"
	"github.com/NirGallner/asana-go/pkg/asana/asanatest"
)

func newTestClient(t *testing.T) (*asana.Client, *asanatest.Dispatcher) {
	t.Helper()
	dispatcher := asanatest.New()
	client, err := asana.NewClient(
		asana.WithBaseURL("http://app"),
		asana.WithAccessToken("token"),
		asana.WithDispatcher(dispatcher),
	)
	require.NoError(t, err)
	return client, dispatcher
}

func TestClientGet(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me", 200, `{ "data": { "name": "me" }}`)

	me, err := client.Users.Me().Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", me.Name)

	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer token", calls[0].Headers["Authorization"])
	assert.Empty(t, calls[0].RequestBody)
}

func TestErrorKindsByStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		kind     asana.ErrorKind
		message  string
		phrase   string
	}{
		{
			name:     "not authorized",
			status:   401,
			body:     `{ "errors": [{ "message": "Not Authorized" }]}`,
			sentinel: asana.ErrNoAuthorization,
			kind:     asana.KindNoAuthorization,
			message:  "Not Authorized",
		},
		{
			name:     "invalid request",
			status:   400,
			body:     `{ "errors": [{ "message": "Missing input" }] }`,
			sentinel: asana.ErrInvalidRequest,
			kind:     asana.KindInvalidRequest,
			message:  "Missing input",
		},
		{
			name:     "server error",
			status:   500,
			body:     `{ "errors": [ { "message": "Server Error", "phrase": "6 sad squid snuggle softly" } ] }`,
			sentinel: asana.ErrServer,
			kind:     asana.KindServer,
			message:  "Server Error",
			phrase:   "6 sad squid snuggle softly",
		},
		{
			name:     "not found",
			status:   404,
			body:     `{ "errors": [ { "message": "user: Unknown object: 1234" } ] }`,
			sentinel: asana.ErrNotFound,
			kind:     asana.KindNotFound,
			message:  "user: Unknown object: 1234",
		},
		{
			name:     "forbidden",
			status:   403,
			body:     `{ "errors": [ { "message": "user: Forbidden" } ] }`,
			sentinel: asana.ErrForbidden,
			kind:     asana.KindForbidden,
			message:  "user: Forbidden",
		},
		{
			name:     "rate limited falls back to unexpected",
			status:   429,
			body:     `{ "errors": [ { "message": "You have made too many requests recently." } ] }`,
			sentinel: asana.ErrUnexpected,
			kind:     asana.KindUnexpected,
			message:  "You have made too many requests recently.",
		},
		{
			name:     "non json gateway error",
			status:   502,
			body:     `<html>bad gateway</html>`,
			sentinel: asana.ErrServer,
			kind:     asana.KindServer,
			message:  "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, dispatcher := newTestClient(t)
			dispatcher.RegisterResponse("GET", "http://app/users/me", tt.status, tt.body)

			_, err := client.Users.Me().Execute(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *asana.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.phrase, apiErr.Phrase)
		})
	}
}

func TestErrorDoesNotMatchOtherKinds(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me", 404, `{ "errors": [ { "message": "gone" } ] }`)

	_, err := client.Users.Me().Execute(context.Background())
	require.Error(t, err)
	assert.True(t, asana.IsNotFound(err))
	assert.False(t, asana.IsForbidden(err))
	assert.False(t, asana.IsServer(err))
	assert.NotErrorIs(t, err, asana.ErrNoAuthorization)
}

func TestOptionPretty(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me?opt_pretty=true", 200, `{ "data": { "name": "me" } }`)

	me, err := client.Users.Me().Option("pretty", true).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", me.Name)
}

func TestOptionPrettyPOST(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("POST", "http://app/tasks", 200, `{ "data": { "name": "task" } }`)

	task, err := client.Tasks.Create().Option("pretty", true).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task", task.Name)

	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, `{"data":{},"options":{"pretty":true}}`, calls[0].RequestBody)
	assert.Equal(t, "application/json", calls[0].Headers["Content-Type"])
}

func TestOptionFields(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me?opt_fields=name,notes", 200, `{ "data": { "name": "me" } }`)

	me, err := client.Users.Me().Option("fields", []string{"name", "notes"}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", me.Name)
}

func TestOptionFieldsPOST(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("POST", "http://app/tasks", 200, `{ "data": { "name": "task" } }`)

	task, err := client.Tasks.Create().Option("fields", []string{"name", "notes"}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task", task.Name)
	assert.Equal(t, `{"data":{},"options":{"fields":["name","notes"]}}`, dispatcher.Calls()[0].RequestBody)
}

func TestOptionExpand(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("PUT", "http://app/tasks/1001", 200, `{ "data": { "name": "me" } }`)

	task, err := client.Tasks.Update("1001").
		Data("assignee", "1234").
		Option("expand", []string{"projects"}).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", task.Name)
	assert.Equal(t, `{"data":{"assignee":"1234"},"options":{"expand":["projects"]}}`, dispatcher.Calls()[0].RequestBody)
}

func TestUnknownOptionsPassThrough(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/tasks/7?opt_fields=name&opt_whatever=1", 200, `{ "data": { "gid": "7" } }`)

	task, err := client.Tasks.FindByID("7").
		Option("whatever", 1).
		Option("fields", asana.List("name")).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7", task.GID)
}

func TestDeleteSendsNoBody(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse(http.MethodDelete, "http://app/tasks/9", 200, `{ "data": {} }`)

	_, err := client.Tasks.Delete("9").Execute(context.Background())
	require.NoError(t, err)
	call := dispatcher.Calls()[0]
	assert.Empty(t, call.RequestBody)
	assert.NotContains(t, call.Headers, "Content-Type")
}

func TestDeleteSendsOptionsAsQuery(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse(http.MethodDelete, "http://app/tasks/9?opt_pretty=true", 200, `{ "data": {} }`)

	_, err := client.Tasks.Delete("9").Option("pretty", true).Execute(context.Background())
	require.NoError(t, err)
	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].RequestBody)
	assert.NotContains(t, calls[0].Headers, "Content-Type")
}

func TestCreateKeepsNumericOptionTypes(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("POST", "http://app/tasks", 201, `{ "data": { "name": "task" } }`)

	_, err := client.Tasks.Create().
		Option("limit", uint64(5)).
		Option("ratio", 1.5).
		Option("ids", []int{1, 2}).
		Execute(context.Background())
	require.NoError(t, err)
	calls := dispatcher.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"data":{},"options":{"ids":["1","2"],"limit":5,"ratio":1.5}}`, calls[0].RequestBody)
}

func TestEmptyFieldsListIsNotSent(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me", 200, `{ "data": { "name": "me" } }`)

	me, err := client.Users.Me().Option("fields", []string{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", me.Name)
	assert.Equal(t, "http://app/users/me", dispatcher.Calls()[0].URL)
}

func TestDuplicateQueryParamFailsBeforeDispatch(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.Tasks.FindByID("5").
		Data("workspace", "w1").
		Query("workspace", "w2").
		Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"workspace" set more than once`)
	assert.Empty(t, dispatcher.Calls())
}

func TestSuccessWithoutDataIsMalformed(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/users/me", 200, `{ "errors": [] }`)

	_, err := client.Users.Me().Execute(context.Background())
	assert.ErrorIs(t, err, asana.ErrMalformedEnvelope)
	_, isAPIErr := asana.AsError(err)
	assert.False(t, isAPIErr)
}

func TestMissingPathParameterFailsBeforeDispatch(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.Tasks.Update("").Data("name", "x").Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing path parameter "task"`)
	assert.Empty(t, dispatcher.Calls())
}

func TestPathParametersAreEscaped(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Equal(t, "tasks/a%2Fb", client.Tasks.FindByID("a/b").Path())
}

func TestTransportErrorIsWrapped(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Users.Me().Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response registered for GET http://app/users/me")
	_, isAPIErr := asana.AsError(err)
	assert.False(t, isAPIErr)
}

func TestCollectionAllFollowsNextPage(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/projects/42/tasks?limit=2&opt_fields=name", 200,
		`{ "data": [ {"gid":"1"}, {"gid":"2"} ], "next_page": {"offset":"abc","path":"/projects/42/tasks?offset=abc"} }`)
	dispatcher.RegisterResponse("GET", "http://app/projects/42/tasks?limit=2&offset=abc&opt_fields=name", 200,
		`{ "data": [ {"gid":"3"} ], "next_page": null }`)

	tasks, err := client.Tasks.FindByProject("42").
		Limit(2).
		Option("fields", []string{"name"}).
		All(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "3", tasks[2].GID)
	assert.Len(t, dispatcher.Calls(), 2)
}

func TestCollectionPageReturnsNextPage(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/workspaces", 200,
		`{ "data": [ {"gid":"w1","name":"Acme","is_organization":true} ], "next_page": {"offset":"n1"} }`)

	page, err := client.Workspaces.FindAll().Page(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.True(t, page.Data[0].IsOrganization)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, "n1", page.NextPage.Offset)
}

func TestCollectionAllStopsOnRepeatedOffset(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/workspaces", 200, `{ "data": [], "next_page": {"offset":"loop"} }`)
	dispatcher.RegisterResponse("GET", "http://app/workspaces?offset=loop", 200, `{ "data": [], "next_page": {"offset":"loop"} }`)

	_, err := client.Workspaces.FindAll().All(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeated")
}

func TestCollectionQueryFilters(t *testing.T) {
	client, dispatcher := newTestClient(t)
	dispatcher.RegisterResponse("GET", "http://app/tasks?assignee=me&workspace=123", 200, `{ "data": [] }`)

	tasks, err := client.Tasks.FindAll().
		Query("assignee", "me").
		Query("workspace", "123").
		Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestNewClientRejectsEmptyToken(t *testing.T) {
	_, err := asana.NewClient(asana.WithAccessToken("  "))
	require.Error(t, err)
}
