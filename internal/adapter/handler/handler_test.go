package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leondli/gallery/internal/adapter/repository"
	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/infrastructure/events"
	"github.com/leondli/gallery/internal/infrastructure/session"
	"github.com/leondli/gallery/internal/usecase/access"
	"github.com/leondli/gallery/internal/usecase/auth"
	"github.com/leondli/gallery/internal/usecase/file"
	"github.com/leondli/gallery/internal/usecase/folder"
	"github.com/leondli/gallery/internal/usecase/tag"
	"github.com/leondli/gallery/internal/usecase/user"
	"github.com/leondli/gallery/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details []struct {
		Reason string `json:"reason"`
	} `json:"details"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
	hub    *events.Hub
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db))

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	tagRepo := repository.NewTagRepository(db)

	jwtManager := jwt.NewManager("test-secret", time.Minute, time.Hour, "gallery")
	sessions := session.NewProvider()
	hub := events.NewHub(8)
	accessUseCase := access.NewUseCase(folderRepo, sessions)

	router := gin.New()
	RegisterRoutes(router, &Handlers{
		Auth:   NewAuthHandler(auth.NewUseCase(userRepo, refreshRepo, jwtManager)),
		User:   NewUserHandler(user.NewUseCase(userRepo)),
		Folder: NewFolderHandler(folder.NewUseCase(folderRepo, sessions)),
		File:   NewFileHandler(file.NewUseCase(fileRepo, folderRepo, accessUseCase)),
		Tag:    NewTagHandler(tag.NewUseCase(tagRepo, fileRepo, accessUseCase, sessions, hub)),
		Event:  NewEventHandler(hub, accessUseCase),
	}, jwtManager)

	return &api{t: t, router: router, hub: hub}
}

func (a *api) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) data(env envelope, out interface{}) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(env.Data, out))
}

func (a *api) register(name string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "correct-horse",
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var out auth.AuthOutput
	a.data(env, &out)
	return out.AccessToken
}

func (a *api) folder(token, name string) entity.Folder {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/folders", token, folder.CreateInput{Name: name})
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var f entity.Folder
	a.data(env, &f)
	return f
}

func (a *api) file(token string, folderID uuid.UUID, name string) entity.File {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/folders/"+folderID.String()+"/files", token, file.RegisterInput{
		Name:      name,
		MediaType: entity.MediaTypeImage,
		Size:      1024,
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var f entity.File
	a.data(env, &f)
	return f
}

func (a *api) tag(token string, folderID uuid.UUID, name string, fileID *uuid.UUID) entity.Tag {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/folders/"+folderID.String()+"/tags", token,
		createTagRequest{Name: name, FileID: fileID})
	require.Equal(a.t, http.StatusCreated, status, env.Message)

	var res tag.CreateTagResult
	a.data(env, &res)
	require.True(a.t, res.Success)
	return *res.Tag
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)
	status, _ := a.do(http.MethodGet, "/api/v1/folders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSingleFileTagFlow(t *testing.T) {
	a := newAPI(t)
	token := a.register("ana")
	f := a.folder(token, "Holidays")
	photo := a.file(token, f.ID, "beach.jpg")

	created := a.tag(token, f.ID, "beach", &photo.ID)
	assert.Equal(t, "#808080", created.Color)
	sunset := a.tag(token, f.ID, "sunset", nil)

	status, env := a.do(http.MethodPost, "/api/v1/files/"+photo.ID.String()+"/tags", token,
		fileTagsRequest{TagIDs: []uuid.UUID{created.ID, sunset.ID}})
	require.Equal(t, http.StatusOK, status, env.Message)

	var added tag.FileTagsResult
	a.data(env, &added)
	assert.True(t, added.Success)
	assert.Equal(t, []uuid.UUID{created.ID, sunset.ID}, entity.TagIDs(added.Tags))
	assert.Len(t, added.File.Tags, 2)

	status, env = a.do(http.MethodDelete, "/api/v1/files/"+photo.ID.String()+"/tags", token,
		fileTagsRequest{TagIDs: []uuid.UUID{created.ID}})
	require.Equal(t, http.StatusOK, status, env.Message)

	var removed tag.FileTagsResult
	a.data(env, &removed)
	assert.True(t, removed.Success)
	assert.Equal(t, []uuid.UUID{sunset.ID}, entity.TagIDs(removed.File.Tags))

	status, env = a.do(http.MethodGet, "/api/v1/folders/"+f.ID.String()+"/tags", token, nil)
	require.Equal(t, http.StatusOK, status)
	var tags []entity.Tag
	a.data(env, &tags)
	assert.Len(t, tags, 2)
}

func TestTagRefusals(t *testing.T) {
	a := newAPI(t)
	owner := a.register("ana")
	stranger := a.register("bob")
	f := a.folder(owner, "Holidays")
	photo := a.file(owner, f.ID, "beach.jpg")
	beach := a.tag(owner, f.ID, "beach", nil)
	filePath := "/api/v1/files/" + photo.ID.String() + "/tags"

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
		reason tag.Reason
	}{
		{"empty name", http.MethodPost, "/api/v1/folders/" + f.ID.String() + "/tags", owner,
			createTagRequest{Name: ""}, http.StatusBadRequest, tag.ReasonNameRequired},
		{"foreign folder", http.MethodPost, "/api/v1/folders/" + f.ID.String() + "/tags", stranger,
			createTagRequest{Name: "mine"}, http.StatusUnauthorized, tag.ReasonUnauthorized},
		{"no tags to add", http.MethodPost, filePath, owner,
			fileTagsRequest{}, http.StatusBadRequest, tag.ReasonNoTagsToAdd},
		{"no tags to remove", http.MethodDelete, filePath, owner,
			fileTagsRequest{}, http.StatusBadRequest, tag.ReasonNoTagsToRemove},
		{"unknown file", http.MethodPost, "/api/v1/files/" + uuid.NewString() + "/tags", owner,
			fileTagsRequest{TagIDs: []uuid.UUID{beach.ID}}, http.StatusNotFound, tag.ReasonFileNotFound},
		{"unknown tag", http.MethodPost, filePath, owner,
			fileTagsRequest{TagIDs: []uuid.UUID{uuid.New()}}, http.StatusNotFound, tag.ReasonSomeTagsNotFound},
		{"stranger on file", http.MethodPost, filePath, stranger,
			fileTagsRequest{TagIDs: []uuid.UUID{beach.ID}}, http.StatusUnauthorized, tag.ReasonUnauthorized},
		{"bulk without files", http.MethodPost, "/api/v1/tags/files", owner,
			filesTagsRequest{TagIDs: []uuid.UUID{beach.ID}}, http.StatusBadRequest, tag.ReasonNoTagsOrFilesToAdd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.reason.String(), env.Message)
			require.Len(t, env.Details, 1)
			assert.Equal(t, tt.reason.String(), env.Details[0].Reason)
		})
	}
}

func TestBulkTagFlow(t *testing.T) {
	a := newAPI(t)
	token := a.register("ana")
	f := a.folder(token, "Holidays")
	first := a.file(token, f.ID, "a.jpg")
	second := a.file(token, f.ID, "b.jpg")
	beach := a.tag(token, f.ID, "beach", &first.ID)

	status, env := a.do(http.MethodPost, "/api/v1/tags/files", token, filesTagsRequest{
		FileIDs: []uuid.UUID{second.ID, first.ID},
		TagIDs:  []uuid.UUID{beach.ID},
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var res tag.FilesTagsResult
	a.data(env, &res)
	require.Len(t, res.Files, 2)
	assert.Equal(t, second.ID, res.Files[0].ID)
	for _, got := range res.Files {
		assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(got.Tags))
	}

	status, env = a.do(http.MethodGet, "/api/v1/folders/"+f.ID.String()+"/files?tag_id="+beach.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"total":2`)

	status, env = a.do(http.MethodDelete, "/api/v1/tags/files", token, filesTagsRequest{
		FileIDs: []uuid.UUID{first.ID, second.ID},
		TagIDs:  []uuid.UUID{beach.ID},
	})
	require.Equal(t, http.StatusOK, status, env.Message)
	a.data(env, &res)
	for _, got := range res.Files {
		assert.Empty(t, got.Tags)
	}
}

func TestEventStream(t *testing.T) {
	a := newAPI(t)
	token := a.register("ana")
	f := a.folder(token, "Holidays")
	photo := a.file(token, f.ID, "beach.jpg")
	beach := a.tag(token, f.ID, "beach", nil)

	srv := httptest.NewServer(a.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") +
		"/api/v1/folders/" + f.ID.String() + "/events?access_token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	assert.Equal(t, 1, a.hub.Subscribers(f.ID))

	status, env := a.do(http.MethodPost, "/api/v1/files/"+photo.ID.String()+"/tags", token,
		fileTagsRequest{TagIDs: []uuid.UUID{beach.ID}})
	require.Equal(t, http.StatusOK, status, env.Message)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event entity.TagEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, entity.TagEventAttached, event.Type)
	assert.Equal(t, f.ID, event.FolderID)
	assert.Equal(t, []uuid.UUID{photo.ID}, event.FileIDs)
	assert.Equal(t, []uuid.UUID{beach.ID}, event.TagIDs)
}

func TestEventStreamRejectsStranger(t *testing.T) {
	a := newAPI(t)
	owner := a.register("ana")
	stranger := a.register("bob")
	f := a.folder(owner, "Holidays")

	status, _ := a.do(http.MethodGet, "/api/v1/folders/"+f.ID.String()+"/events", stranger, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Zero(t, a.hub.Subscribers(f.ID))
}
