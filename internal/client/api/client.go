// Package api is a typed client for the gallery HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	"github.com/leondli/gallery/internal/usecase/auth"
	"github.com/leondli/gallery/internal/usecase/tag"
)

// Error is a failure answered by the server that is not a tag refusal
type Error struct {
	Status  int
	Code    string
	Message string

	reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// refusal returns the tag refusal carried by err, if any
func refusal(err error) (tag.Reason, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.reason == "" {
		return tag.ReasonNone, false
	}
	r, parseErr := tag.ParseReason(apiErr.reason)
	if parseErr != nil || r == tag.ReasonNone {
		return tag.ReasonNone, false
	}
	return r, true
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details []struct {
		Reason string `json:"reason"`
	} `json:"details"`
}

// Client talks to the gallery API. It implements the tag mutation
// operations so it can back a tagstate.Controller.
type Client struct {
	http    *resty.Client
	baseURL string
	log     zerolog.Logger
}

type noReplayKey struct{}

// noReplay marks a request that must not be sent twice, such as one that
// creates a row on every call
func noReplay(ctx context.Context) context.Context {
	return context.WithValue(ctx, noReplayKey{}, true)
}

// replayable retries transport failures unless the request is marked noReplay
func replayable(resp *resty.Response, err error) bool {
	if err == nil {
		return false
	}
	if resp == nil || resp.Request == nil {
		return true
	}
	marked, _ := resp.Request.Context().Value(noReplayKey{}).(bool)
	return !marked
}

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	log := logger.NewLogger("api-client")
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL+"/api/v1").
			SetTimeout(15*time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500*time.Millisecond).
			AddRetryCondition(replayable).
			SetLogger(restyLogger{log: log}).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		baseURL: baseURL,
		log:     log,
	}
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// Token returns the current bearer token
func (c *Client) Token() string {
	return c.http.Token
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var ok, failed envelope
	req := c.http.R().
		SetContext(ctx).
		SetResult(&ok).
		SetError(&failed)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("API call")

	if resp.IsError() {
		apiErr := &Error{Status: resp.StatusCode(), Code: failed.Code, Message: failed.Message}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		if len(failed.Details) > 0 {
			apiErr.reason = failed.Details[0].Reason
		}
		return apiErr
	}

	if out != nil && len(ok.Data) > 0 {
		if err := json.Unmarshal(ok.Data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// Login exchanges credentials for tokens and keeps the access token
func (c *Client) Login(ctx context.Context, email, password string) (*auth.AuthOutput, error) {
	var out auth.AuthOutput
	if err := c.call(noReplay(ctx), http.MethodPost, "/auth/login", auth.LoginInput{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// Folders lists the caller's folders
func (c *Client) Folders(ctx context.Context) ([]entity.Folder, error) {
	var folders []entity.Folder
	if err := c.call(ctx, http.MethodGet, "/folders", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// Files lists the files of a folder, optionally only those carrying tagID
func (c *Client) Files(ctx context.Context, folderID uuid.UUID, tagID *uuid.UUID) ([]entity.File, error) {
	path := "/folders/" + folderID.String() + "/files"
	if tagID != nil {
		path += "?tag_id=" + tagID.String()
	}

	var page struct {
		Items []entity.File `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// File fetches one file with its tags
func (c *Client) File(ctx context.Context, fileID uuid.UUID) (*entity.File, error) {
	var f entity.File
	if err := c.call(ctx, http.MethodGet, "/files/"+fileID.String(), nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FolderTags lists every tag of a folder
func (c *Client) FolderTags(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error) {
	var tags []entity.Tag
	if err := c.call(ctx, http.MethodGet, "/folders/"+folderID.String()+"/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

type createTagBody struct {
	Name   string     `json:"name"`
	Color  string     `json:"color,omitempty"`
	FileID *uuid.UUID `json:"file_id,omitempty"`
}

type fileTagsBody struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

type filesTagsBody struct {
	FileIDs []uuid.UUID `json:"file_ids"`
	TagIDs  []uuid.UUID `json:"tag_ids"`
}

// CreateTag creates a tag in input.FolderID
func (c *Client) CreateTag(ctx context.Context, input *tag.CreateTagInput) (*tag.CreateTagResult, error) {
	var res tag.CreateTagResult
	err := c.call(noReplay(ctx), http.MethodPost, "/folders/"+input.FolderID.String()+"/tags",
		createTagBody{Name: input.Name, Color: input.Color, FileID: input.FileID}, &res)
	if r, ok := refusal(err); ok {
		return &tag.CreateTagResult{Error: r}, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddTagsToFile ensures tagIDs are attached to fileID
func (c *Client) AddTagsToFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error) {
	return c.fileTags(ctx, http.MethodPost, fileID, tagIDs)
}

// RemoveTagsFromFile ensures tagIDs are detached from fileID
func (c *Client) RemoveTagsFromFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error) {
	return c.fileTags(ctx, http.MethodDelete, fileID, tagIDs)
}

// AddTagsToFiles ensures tagIDs are attached to every file in fileIDs
func (c *Client) AddTagsToFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error) {
	return c.filesTags(ctx, http.MethodPost, fileIDs, tagIDs)
}

// RemoveTagsFromFiles ensures tagIDs are detached from every file in fileIDs
func (c *Client) RemoveTagsFromFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error) {
	return c.filesTags(ctx, http.MethodDelete, fileIDs, tagIDs)
}

func (c *Client) fileTags(ctx context.Context, method string, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error) {
	var res tag.FileTagsResult
	err := c.call(ctx, method, "/files/"+fileID.String()+"/tags", fileTagsBody{TagIDs: tagIDs}, &res)
	if r, ok := refusal(err); ok {
		return &tag.FileTagsResult{Error: r}, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) filesTags(ctx context.Context, method string, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error) {
	var res tag.FilesTagsResult
	err := c.call(ctx, method, "/tags/files", filesTagsBody{FileIDs: fileIDs, TagIDs: tagIDs}, &res)
	if r, ok := refusal(err); ok {
		return &tag.FilesTagsResult{Error: r}, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// EventsURL returns the websocket URL streaming the events of folderID
func (c *Client) EventsURL(folderID uuid.UUID) (string, error) {
	u, err := url.Parse(c.baseURL + "/api/v1/folders/" + folderID.String() + "/events")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	q := u.Query()
	q.Set("access_token", c.Token())
	u.RawQuery = q.Encode()
	return u.String(), nil
}
