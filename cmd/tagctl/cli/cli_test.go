package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/usecase/tag"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(data interface{}) map[string]interface{} {
	return map[string]interface{}{"code": "SUCCESS", "message": "success", "data": data}
}

func refused(status int, r tag.Reason) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, map[string]interface{}{
			"code":    "UNAUTHORIZED",
			"message": r.String(),
			"details": []map[string]string{{"reason": r.String()}},
		})
	}
}

func run(t *testing.T, mux *http.ServeMux, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "tagctl.yaml"),
		"--server", srv.URL,
		"--token", "tok",
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	v := entity.Tag{ID: uuid.New(), Name: "beach", Color: "#808080"}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, "yaml", v))
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "beach", decoded["name"])
	assert.Equal(t, v.ID.String(), decoded["id"])

	buf.Reset()
	require.NoError(t, render(&buf, "json", v))
	assert.Contains(t, buf.String(), `"name": "beach"`)

	assert.Error(t, render(&buf, "xml", v))
}

func TestTagsAddRoutesByFileCount(t *testing.T) {
	single, bulk := 0, 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/files/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		single++
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, ok(tag.FileTagsResult{Success: true}))
	})
	mux.HandleFunc("POST /api/v1/tags/files", func(w http.ResponseWriter, r *http.Request) {
		bulk++
		writeJSON(w, http.StatusOK, ok(tag.FilesTagsResult{Success: true}))
	})

	tagID := uuid.NewString()
	_, err := run(t, mux, "tags", "add", "--file", uuid.NewString(), "--tag", tagID)
	require.NoError(t, err)
	_, err = run(t, mux, "tags", "add", "--file", uuid.NewString(), "--file", uuid.NewString(), "--tag", tagID)
	require.NoError(t, err)

	assert.Equal(t, 1, single)
	assert.Equal(t, 1, bulk)
}

func TestTagsRemoveRefusal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/files/{id}/tags", refused(http.StatusUnauthorized, tag.ReasonUnauthorized))

	out, err := run(t, mux, "tags", "remove", "--file", uuid.NewString(), "--tag", uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, "refused: unauthorized", err.Error())
	assert.Contains(t, out, `"error": "unauthorized"`)
}

func TestTagsToggleRollsBack(t *testing.T) {
	folderID := uuid.New()
	beach := entity.Tag{ID: uuid.New(), Name: "beach", FolderID: folderID}
	file := entity.File{ID: uuid.New(), FolderID: folderID, Tags: []entity.Tag{beach}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/files/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok(file))
	})
	mux.HandleFunc("GET /api/v1/folders/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ok([]entity.Tag{beach}))
	})
	mux.HandleFunc("DELETE /api/v1/files/{id}/tags", refused(http.StatusNotFound, tag.ReasonFileNotFound))

	out, err := run(t, mux, "tags", "toggle", "--file", file.ID.String(), "--tag", beach.ID.String())
	require.Error(t, err)

	var got toggleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Selected)
	assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(got.Files[file.ID]))
}

func TestSaveCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagctl.yaml")
	require.NoError(t, saveCredentials(path, credentials{Server: "http://gallery", Token: "tok"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var creds credentials
	require.NoError(t, yaml.Unmarshal(raw, &creds))
	assert.Equal(t, "tok", creds.Token)

	assert.Error(t, saveCredentials("", creds))
}
