package tag

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonWireStrings(t *testing.T) {
	want := map[Reason]string{
		ReasonNameRequired:       "name is required",
		ReasonNoTagsToAdd:        "no tags to add",
		ReasonNoTagsToRemove:     "no tags to remove",
		ReasonNoTagsOrFilesToAdd: "no tags or files to add",
		ReasonUnauthorized:       "unauthorized",
		ReasonFileNotFound:       "file not found",
		ReasonSomeTagsNotFound:   "some tags not found",
	}
	for r, s := range want {
		assert.Equal(t, s, r.String())

		parsed, err := ParseReason(s)
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseReason("teapot")
	assert.Error(t, err)
	assert.Equal(t, "Reason(200)", Reason(200).String())
}

func TestResultJSON(t *testing.T) {
	raw, err := json.Marshal(fileFailed(ReasonSomeTagsNotFound))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"some tags not found"}`, string(raw))

	raw, err = json.Marshal(&FilesTagsResult{Success: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))

	var decoded CreateTagResult
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"error":"unauthorized"}`), &decoded))
	assert.Equal(t, ReasonUnauthorized, decoded.Error)
}

func TestReasonIsInput(t *testing.T) {
	assert.True(t, ReasonNoTagsToAdd.IsInput())
	assert.False(t, ReasonUnauthorized.IsInput())
	assert.False(t, ReasonSomeTagsNotFound.IsInput())
}
