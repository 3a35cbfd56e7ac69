package asana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteExpand(t *testing.T) {
	r := route{method: "GET", template: "workspaces/{workspace}/users"}

	path, err := r.expand("12")
	require.NoError(t, err)
	assert.Equal(t, "workspaces/12/users", path)

	_, err = r.expand()
	assert.ErrorContains(t, err, `missing path parameter "workspace"`)

	_, err = r.expand("1", "2")
	assert.ErrorContains(t, err, "takes 1 path parameters, got 2")
}

func TestLookupRouteUnknownAction(t *testing.T) {
	_, _, err := lookupRoute("tasks.explode")
	assert.ErrorContains(t, err, `unknown action "tasks.explode"`)
}
