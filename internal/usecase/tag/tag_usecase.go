package tag

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

const defaultColor = "#808080"

// UseCase defines the tag use case interface.
//
// Refusals (bad input, missing session, foreign folder, unknown file or
// tags) come back as a result with Success false. The error return is
// reserved for faults such as an unreachable database.
type UseCase interface {
	CreateTag(ctx context.Context, input *CreateTagInput) (*CreateTagResult, error)
	AddTagsToFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*FileTagsResult, error)
	RemoveTagsFromFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*FileTagsResult, error)
	AddTagsToFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*FilesTagsResult, error)
	RemoveTagsFromFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*FilesTagsResult, error)
	ListFolderTags(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error)
}

// FolderAuthorizer decides folder-owner access for the current caller
type FolderAuthorizer interface {
	HasFolderOwnerAccess(ctx context.Context, folderID uuid.UUID) (bool, error)
}

// SessionProvider resolves the caller of a request
type SessionProvider interface {
	Current(ctx context.Context) *entity.Session
}

// Publisher receives an event after each persisted mutation
type Publisher interface {
	Publish(event entity.TagEvent)
}

type tagUseCase struct {
	tagRepo    repository.TagRepository
	fileRepo   repository.FileRepository
	authorizer FolderAuthorizer
	sessions   SessionProvider
	publisher  Publisher
	log        zerolog.Logger
	now        func() time.Time
}

// NewUseCase creates a new tag use case
func NewUseCase(
	tagRepo repository.TagRepository,
	fileRepo repository.FileRepository,
	authorizer FolderAuthorizer,
	sessions SessionProvider,
	publisher Publisher,
) UseCase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &tagUseCase{
		tagRepo:    tagRepo,
		fileRepo:   fileRepo,
		authorizer: authorizer,
		sessions:   sessions,
		publisher:  publisher,
		log:        logger.NewLogger("tag"),
		now:        time.Now,
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(entity.TagEvent) {}

func (u *tagUseCase) CreateTag(ctx context.Context, input *CreateTagInput) (*CreateTagResult, error) {
	if input.Name == "" {
		return createFailed(ReasonNameRequired), nil
	}

	// ownership is checked before the session on this path
	reason, err := u.authorize(ctx, input.FolderID)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return createFailed(reason), nil
	}
	s := u.sessions.Current(ctx)
	if s == nil {
		return createFailed(ReasonUnauthorized), nil
	}

	color := input.Color
	if color == "" {
		color = defaultColor
	}
	tag := &entity.Tag{
		Name:     input.Name,
		Color:    color,
		FolderID: input.FolderID,
		OwnerID:  s.User.ID,
	}
	if err := u.tagRepo.Create(ctx, tag, input.FileID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("file")
		}
		return nil, apperrors.InternalError("failed to create tag", err)
	}

	event := u.event(entity.TagEventCreated, tag.FolderID, s.User.ID, []uuid.UUID{tag.ID})
	if input.FileID != nil {
		event.FileIDs = []uuid.UUID{*input.FileID}
	}
	u.publisher.Publish(event)

	u.log.Debug().
		Str("tag_id", tag.ID.String()).
		Str("folder_id", tag.FolderID.String()).
		Bool("attached", input.FileID != nil).
		Msg("Tag created")

	return &CreateTagResult{Success: true, Tag: tag}, nil
}

func (u *tagUseCase) AddTagsToFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*FileTagsResult, error) {
	if len(tagIDs) == 0 {
		return fileFailed(ReasonNoTagsToAdd), nil
	}

	target, reason, err := u.resolveFile(ctx, fileID, tagIDs)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return fileFailed(reason), nil
	}

	existing, added := partition(target.tags, target.file.Tags)
	// runs even when nothing is new
	file, err := u.fileRepo.UpdateTags(ctx, fileID, entity.TagIDs(added), nil)
	if err != nil {
		return nil, apperrors.InternalError("failed to attach tags", err)
	}

	if len(added) > 0 {
		event := u.event(entity.TagEventAttached, file.FolderID, target.actor, entity.TagIDs(added))
		event.FileIDs = []uuid.UUID{fileID}
		u.publisher.Publish(event)
	}

	u.log.Debug().
		Str("file_id", fileID.String()).
		Int("requested", len(tagIDs)).
		Int("attached", len(added)).
		Msg("Tags attached to file")

	return &FileTagsResult{
		Success: true,
		Tags:    append(existing, added...),
		File:    file,
	}, nil
}

func (u *tagUseCase) RemoveTagsFromFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*FileTagsResult, error) {
	if len(tagIDs) == 0 {
		return fileFailed(ReasonNoTagsToRemove), nil
	}

	target, reason, err := u.resolveFile(ctx, fileID, tagIDs)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return fileFailed(reason), nil
	}

	existing, added := partition(target.tags, target.file.Tags)
	// detach the whole resolved set; absent edges are a no-op
	file, err := u.fileRepo.UpdateTags(ctx, fileID, nil, entity.TagIDs(target.tags))
	if err != nil {
		return nil, apperrors.InternalError("failed to detach tags", err)
	}

	if len(existing) > 0 {
		event := u.event(entity.TagEventDetached, file.FolderID, target.actor, entity.TagIDs(existing))
		event.FileIDs = []uuid.UUID{fileID}
		u.publisher.Publish(event)
	}

	u.log.Debug().
		Str("file_id", fileID.String()).
		Int("requested", len(tagIDs)).
		Int("detached", len(existing)).
		Msg("Tags detached from file")

	return &FileTagsResult{
		Success: true,
		Tags:    append(existing, added...),
		File:    file,
	}, nil
}

func (u *tagUseCase) AddTagsToFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*FilesTagsResult, error) {
	if len(fileIDs) == 0 || len(tagIDs) == 0 {
		return filesFailed(ReasonNoTagsOrFilesToAdd), nil
	}

	target, reason, err := u.resolveFiles(ctx, fileIDs, tagIDs, true)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return filesFailed(reason), nil
	}

	updated := make([]entity.File, 0, len(target.files))
	events := make([]entity.TagEvent, 0, len(target.files))
	for _, f := range target.files {
		_, added := partition(target.tags, f.Tags)
		file, err := u.fileRepo.UpdateTags(ctx, f.ID, entity.TagIDs(added), nil)
		if err != nil {
			return nil, apperrors.InternalError("failed to attach tags", err)
		}
		updated = append(updated, *file)

		if len(added) > 0 {
			event := u.event(entity.TagEventAttached, target.folderID, target.actor, entity.TagIDs(added))
			event.FileIDs = []uuid.UUID{f.ID}
			events = append(events, event)
		}
	}
	u.publishAll(events)

	u.log.Debug().
		Str("folder_id", target.folderID.String()).
		Int("files", len(updated)).
		Int("tags", len(target.tags)).
		Msg("Tags attached to files")

	return &FilesTagsResult{Success: true, Tags: target.tags, Files: updated}, nil
}

func (u *tagUseCase) RemoveTagsFromFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID) (*FilesTagsResult, error) {
	if len(fileIDs) == 0 || len(tagIDs) == 0 {
		return filesFailed(ReasonNoTagsToRemove), nil
	}

	target, reason, err := u.resolveFiles(ctx, fileIDs, tagIDs, false)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return filesFailed(reason), nil
	}

	detach := entity.TagIDs(target.tags)
	updated := make([]entity.File, 0, len(target.files))
	events := make([]entity.TagEvent, 0, len(target.files))
	for _, f := range target.files {
		existing, _ := partition(target.tags, f.Tags)
		file, err := u.fileRepo.UpdateTags(ctx, f.ID, nil, detach)
		if err != nil {
			return nil, apperrors.InternalError("failed to detach tags", err)
		}
		updated = append(updated, *file)

		if len(existing) > 0 {
			event := u.event(entity.TagEventDetached, target.folderID, target.actor, entity.TagIDs(existing))
			event.FileIDs = []uuid.UUID{f.ID}
			events = append(events, event)
		}
	}
	u.publishAll(events)

	u.log.Debug().
		Str("folder_id", target.folderID.String()).
		Int("files", len(updated)).
		Int("tags", len(target.tags)).
		Msg("Tags detached from files")

	return &FilesTagsResult{Success: true, Tags: target.tags, Files: updated}, nil
}

func (u *tagUseCase) ListFolderTags(ctx context.Context, folderID uuid.UUID) ([]entity.Tag, error) {
	reason, err := u.authorize(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if reason != ReasonNone {
		return nil, apperrors.UnauthorizedError(reason.String())
	}

	tags, err := u.tagRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, apperrors.InternalError("failed to list tags", err)
	}
	return tags, nil
}

// fileTarget is a single file that passed every check
type fileTarget struct {
	actor uuid.UUID
	file  *entity.File
	tags  []entity.Tag
}

// filesTarget is a set of files in one folder that passed every check
type filesTarget struct {
	actor    uuid.UUID
	folderID uuid.UUID
	files    []entity.File // input order
	tags     []entity.Tag
}

// resolveFile runs session, file, access and tag checks in that order
func (u *tagUseCase) resolveFile(ctx context.Context, fileID uuid.UUID, tagIDs []uuid.UUID) (*fileTarget, Reason, error) {
	s := u.sessions.Current(ctx)
	if s == nil {
		return nil, ReasonUnauthorized, nil
	}

	file, err := u.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ReasonFileNotFound, nil
		}
		return nil, ReasonNone, apperrors.InternalError("failed to get file", err)
	}

	if reason, err := u.authorize(ctx, file.FolderID); reason != ReasonNone || err != nil {
		return nil, reason, err
	}

	tags, reason, err := u.resolveTags(ctx, tagIDs, s.User.ID, file.FolderID)
	if reason != ReasonNone || err != nil {
		return nil, reason, err
	}
	return &fileTarget{actor: s.User.ID, file: file, tags: tags}, ReasonNone, nil
}

// resolveFiles is the bulk counterpart of resolveFile. requireAll makes a
// missing file a failure; otherwise missing ids are skipped.
func (u *tagUseCase) resolveFiles(ctx context.Context, fileIDs, tagIDs []uuid.UUID, requireAll bool) (*filesTarget, Reason, error) {
	s := u.sessions.Current(ctx)
	if s == nil {
		return nil, ReasonUnauthorized, nil
	}

	loaded, err := u.fileRepo.ListByIDs(ctx, fileIDs)
	if err != nil {
		return nil, ReasonNone, apperrors.InternalError("failed to get files", err)
	}
	if requireAll && len(loaded) < len(fileIDs) {
		return nil, ReasonFileNotFound, nil
	}

	folderID, ok := sharedFolder(loaded)
	if !ok {
		u.log.Warn().
			Str("user_id", s.User.ID.String()).
			Int("files", len(loaded)).
			Msg("Files do not share one folder")
		return nil, ReasonUnauthorized, nil
	}

	if reason, err := u.authorize(ctx, folderID); reason != ReasonNone || err != nil {
		return nil, reason, err
	}

	tags, reason, err := u.resolveTags(ctx, tagIDs, s.User.ID, folderID)
	if reason != ReasonNone || err != nil {
		return nil, reason, err
	}

	return &filesTarget{
		actor:    s.User.ID,
		folderID: folderID,
		files:    inInputOrder(loaded, fileIDs),
		tags:     tags,
	}, ReasonNone, nil
}

func (u *tagUseCase) authorize(ctx context.Context, folderID uuid.UUID) (Reason, error) {
	ok, err := u.authorizer.HasFolderOwnerAccess(ctx, folderID)
	if err != nil {
		if apperrors.GetAppError(err) != nil {
			return ReasonNone, err
		}
		return ReasonNone, apperrors.InternalError("failed to check folder access", err)
	}
	if !ok {
		u.log.Warn().Str("folder_id", folderID.String()).Msg("Folder owner access denied")
		return ReasonUnauthorized, nil
	}
	return ReasonNone, nil
}

// resolveTags is strict: every requested id must resolve, duplicates included
func (u *tagUseCase) resolveTags(ctx context.Context, tagIDs []uuid.UUID, ownerID, folderID uuid.UUID) ([]entity.Tag, Reason, error) {
	tags, err := u.tagRepo.FindOwned(ctx, tagIDs, ownerID, folderID)
	if err != nil {
		return nil, ReasonNone, apperrors.InternalError("failed to resolve tags", err)
	}
	if len(tags) != len(tagIDs) {
		return nil, ReasonSomeTagsNotFound, nil
	}
	return tags, ReasonNone, nil
}

func (u *tagUseCase) event(typ entity.TagEventType, folderID, actor uuid.UUID, tagIDs []uuid.UUID) entity.TagEvent {
	return entity.TagEvent{
		Type:       typ,
		FolderID:   folderID,
		TagIDs:     tagIDs,
		ActorID:    actor,
		OccurredAt: u.now().UTC(),
	}
}

func (u *tagUseCase) publishAll(events []entity.TagEvent) {
	for _, e := range events {
		u.publisher.Publish(e)
	}
}

// partition splits resolved into the tags already in current and the rest,
// keeping resolved order in both
func partition(resolved, current []entity.Tag) (existing, added []entity.Tag) {
	onFile := make(map[uuid.UUID]struct{}, len(current))
	for _, t := range current {
		onFile[t.ID] = struct{}{}
	}

	existing = make([]entity.Tag, 0, len(resolved))
	added = make([]entity.Tag, 0, len(resolved))
	for _, t := range resolved {
		if _, ok := onFile[t.ID]; ok {
			existing = append(existing, t)
		} else {
			added = append(added, t)
		}
	}
	return existing, added
}

// sharedFolder returns the single folder of files; false when files is
// empty or spans several folders
func sharedFolder(files []entity.File) (uuid.UUID, bool) {
	if len(files) == 0 {
		return uuid.Nil, false
	}
	folderID := files[0].FolderID
	for _, f := range files[1:] {
		if f.FolderID != folderID {
			return uuid.Nil, false
		}
	}
	return folderID, true
}

// inInputOrder reorders loaded to follow ids, skipping unknown and repeated ids
func inInputOrder(loaded []entity.File, ids []uuid.UUID) []entity.File {
	byID := make(map[uuid.UUID]entity.File, len(loaded))
	for _, f := range loaded {
		byID[f.ID] = f
	}

	ordered := make([]entity.File, 0, len(loaded))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
			delete(byID, id)
		}
	}
	return ordered
}
