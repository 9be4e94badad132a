package tagstate

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/usecase/tag"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) AddTagsToFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error) {
	args := m.Called(ctx, fileID, tagIDs)
	res, _ := args.Get(0).(*tag.FileTagsResult)
	return res, args.Error(1)
}

func (m *serviceMock) RemoveTagsFromFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*tag.FileTagsResult, error) {
	args := m.Called(ctx, fileID, tagIDs)
	res, _ := args.Get(0).(*tag.FileTagsResult)
	return res, args.Error(1)
}

func (m *serviceMock) AddTagsToFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error) {
	args := m.Called(ctx, fileIDs, tagIDs)
	res, _ := args.Get(0).(*tag.FilesTagsResult)
	return res, args.Error(1)
}

func (m *serviceMock) RemoveTagsFromFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*tag.FilesTagsResult, error) {
	args := m.Called(ctx, fileIDs, tagIDs)
	res, _ := args.Get(0).(*tag.FilesTagsResult)
	return res, args.Error(1)
}

type notes struct {
	messages []string
}

func (n *notes) Notify(message string) {
	n.messages = append(n.messages, message)
}

func newTag(name string) entity.Tag {
	return entity.Tag{ID: uuid.New(), Name: name}
}

func newFile(tags ...entity.Tag) entity.File {
	return entity.File{ID: uuid.New(), Tags: tags}
}

func TestSelectKeepsLocalStateOnSuccess(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	file := newFile()
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, []entity.File{file}, []entity.Tag{beach})

	svc.On("AddTagsToFile", ctx, file.ID, []uuid.UUID{beach.ID}).
		Run(func(mock.Arguments) {
			// applied before the call returns
			assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(c.Tags(file.ID)))
		}).
		Return(&tag.FileTagsResult{Success: true}, nil)

	assert.True(t, c.Select(ctx, beach))
	assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(c.Tags(file.ID)))
	assert.Empty(t, n.messages)
	svc.AssertExpectations(t)
}

func TestSelectRollsBackOnRefusal(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	file := newFile()
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, []entity.File{file}, nil)

	svc.On("AddTagsToFile", ctx, file.ID, []uuid.UUID{beach.ID}).
		Return(&tag.FileTagsResult{Error: tag.ReasonUnauthorized}, nil)

	assert.False(t, c.Select(ctx, beach))
	assert.Empty(t, c.Tags(file.ID))
	assert.Equal(t, []string{MessageAddFailed}, n.messages)
}

func TestBulkSelectRevertsOnlyChangedFiles(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	tagged := newFile(beach)
	untagged := newFile()
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, []entity.File{tagged, untagged}, nil)

	svc.On("AddTagsToFiles", ctx, []uuid.UUID{tagged.ID, untagged.ID}, []uuid.UUID{beach.ID}).
		Return(nil, errors.New("connection reset"))

	assert.False(t, c.Select(ctx, beach))
	assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(c.Tags(tagged.ID)))
	assert.Empty(t, c.Tags(untagged.ID))
	assert.Equal(t, []string{MessageAddFailed}, n.messages)
	svc.AssertNotCalled(t, "AddTagsToFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnselectRollsBack(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	sunset := newTag("sunset")
	tagged := newFile(beach, sunset)
	untagged := newFile(sunset)
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, []entity.File{tagged, untagged}, nil)

	svc.On("RemoveTagsFromFiles", ctx, []uuid.UUID{tagged.ID, untagged.ID}, []uuid.UUID{beach.ID}).
		Return(&tag.FilesTagsResult{Error: tag.ReasonSomeTagsNotFound}, nil)

	assert.False(t, c.Unselect(ctx, beach))
	assert.ElementsMatch(t, []uuid.UUID{beach.ID, sunset.ID}, entity.TagIDs(c.Tags(tagged.ID)))
	assert.Equal(t, []uuid.UUID{sunset.ID}, entity.TagIDs(c.Tags(untagged.ID)))
	assert.Equal(t, []string{MessageRemoveFailed}, n.messages)
}

func TestUnselectSingleFile(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	file := newFile(beach)
	svc := new(serviceMock)
	c := NewController(svc, nil, []entity.File{file}, nil)

	svc.On("RemoveTagsFromFile", ctx, file.ID, []uuid.UUID{beach.ID}).
		Return(&tag.FileTagsResult{Success: true}, nil)

	assert.True(t, c.Unselect(ctx, beach))
	assert.Empty(t, c.Tags(file.ID))
}

func TestAddedJoinsFolderTagsAndSelects(t *testing.T) {
	ctx := context.Background()
	existing := newTag("beach")
	created := newTag("sunset")
	file := newFile()
	svc := new(serviceMock)
	c := NewController(svc, nil, []entity.File{file}, []entity.Tag{existing})

	svc.On("AddTagsToFile", ctx, file.ID, []uuid.UUID{created.ID}).
		Return(&tag.FileTagsResult{Success: true}, nil)

	assert.True(t, c.Added(ctx, created))
	assert.Equal(t, []uuid.UUID{existing.ID, created.ID}, entity.TagIDs(c.FolderTags()))
	assert.Equal(t, []uuid.UUID{created.ID}, entity.TagIDs(c.Tags(file.ID)))
}

func TestAddedKeepsFolderTagOnFailure(t *testing.T) {
	ctx := context.Background()
	created := newTag("sunset")
	file := newFile()
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, []entity.File{file}, nil)

	svc.On("AddTagsToFile", ctx, file.ID, []uuid.UUID{created.ID}).
		Return(&tag.FileTagsResult{Error: tag.ReasonFileNotFound}, nil)

	assert.False(t, c.Added(ctx, created))
	assert.Equal(t, []uuid.UUID{created.ID}, entity.TagIDs(c.FolderTags()))
	assert.Empty(t, c.Tags(file.ID))
	assert.Equal(t, []string{MessageAddFailed}, n.messages)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	file := newFile(beach)
	svc := new(serviceMock)
	c := NewController(svc, nil, []entity.File{file}, nil)

	svc.On("RemoveTagsFromFile", ctx, file.ID, []uuid.UUID{beach.ID}).
		Return(&tag.FileTagsResult{Success: true}, nil).Once()
	svc.On("AddTagsToFile", ctx, file.ID, []uuid.UUID{beach.ID}).
		Return(&tag.FileTagsResult{Success: true}, nil).Once()

	assert.True(t, c.Selected(beach))
	assert.True(t, c.Toggle(ctx, beach))
	assert.False(t, c.Selected(beach))
	assert.True(t, c.Toggle(ctx, beach))
	assert.True(t, c.Selected(beach))
	svc.AssertExpectations(t)
}

func TestDuplicateTargetsCollapse(t *testing.T) {
	file := newFile()
	c := NewController(new(serviceMock), nil, []entity.File{file, file}, nil)
	assert.Equal(t, []uuid.UUID{file.ID}, c.snapshotTargets())
}

func TestNoTargetsIsSilent(t *testing.T) {
	ctx := context.Background()
	beach := newTag("beach")
	svc := new(serviceMock)
	n := &notes{}
	c := NewController(svc, n, nil, nil)

	assert.False(t, c.Select(ctx, beach))
	assert.False(t, c.Unselect(ctx, beach))
	assert.False(t, c.Added(ctx, beach))
	assert.Equal(t, []uuid.UUID{beach.ID}, entity.TagIDs(c.FolderTags()))
	assert.Empty(t, n.messages)
	svc.AssertNotCalled(t, "AddTagsToFiles", mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "RemoveTagsFromFiles", mock.Anything, mock.Anything, mock.Anything)
}
