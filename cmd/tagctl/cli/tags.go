package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leondli/gallery/internal/client/tagstate"
	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/usecase/tag"
)

func newTagsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
		Long:  "List and create folder tags, attach or detach them on one or many files.",
	}

	cmd.AddCommand(newTagsListCommand(a))
	cmd.AddCommand(newTagsCreateCommand(a))
	cmd.AddCommand(newTagsMutateCommand(a, true))
	cmd.AddCommand(newTagsMutateCommand(a, false))
	cmd.AddCommand(newTagsToggleCommand(a))

	return cmd
}

func refusedError(r tag.Reason) error {
	return fmt.Errorf("refused: %s", r)
}

func newTagsListCommand(a *app) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tags of a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID("folder", folder)
			if err != nil {
				return err
			}
			tags, err := a.client().FolderTags(cmd.Context(), folderID)
			if err != nil {
				return err
			}
			return a.print(cmd, tags)
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder id")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

func newTagsCreateCommand(a *app) *cobra.Command {
	var folder, name, color, file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag, optionally attaching it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID("folder", folder)
			if err != nil {
				return err
			}
			fileID, err := optionalID("file", file)
			if err != nil {
				return err
			}

			res, err := a.client().CreateTag(cmd.Context(), &tag.CreateTagInput{
				Name:     name,
				Color:    color,
				FolderID: folderID,
				FileID:   fileID,
			})
			if err != nil {
				return err
			}
			if err := a.print(cmd, res); err != nil {
				return err
			}
			if !res.Success {
				return refusedError(res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder id")
	cmd.Flags().StringVar(&name, "name", "", "tag name")
	cmd.Flags().StringVar(&color, "color", "", "tag colour (default #808080)")
	cmd.Flags().StringVar(&file, "file", "", "attach the new tag to this file")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}

// newTagsMutateCommand builds "add" or "remove". One --file uses the
// single-file operation, several use the bulk one.
func newTagsMutateCommand(a *app, attach bool) *cobra.Command {
	var files, tags []string

	use, short := "remove", "Detach tags from files"
	if attach {
		use, short = "add", "Attach tags to files"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileIDs, err := parseIDs("file", files)
			if err != nil {
				return err
			}
			tagIDs, err := parseIDs("tag", tags)
			if err != nil {
				return err
			}

			c := a.client()
			ctx := cmd.Context()

			if len(fileIDs) == 1 {
				var res *tag.FileTagsResult
				if attach {
					res, err = c.AddTagsToFile(ctx, fileIDs[0], tagIDs)
				} else {
					res, err = c.RemoveTagsFromFile(ctx, fileIDs[0], tagIDs)
				}
				if err != nil {
					return err
				}
				if err := a.print(cmd, res); err != nil {
					return err
				}
				if !res.Success {
					return refusedError(res.Error)
				}
				return nil
			}

			var res *tag.FilesTagsResult
			if attach {
				res, err = c.AddTagsToFiles(ctx, fileIDs, tagIDs)
			} else {
				res, err = c.RemoveTagsFromFiles(ctx, fileIDs, tagIDs)
			}
			if err != nil {
				return err
			}
			if err := a.print(cmd, res); err != nil {
				return err
			}
			if !res.Success {
				return refusedError(res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "file id (repeatable)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag id (repeatable)")

	return cmd
}

type toggleOutput struct {
	Tag      entity.Tag                 `json:"tag"`
	Selected bool                       `json:"selected"`
	Files    map[uuid.UUID][]entity.Tag `json:"files"`
}

func newTagsToggleCommand(a *app) *cobra.Command {
	var files []string
	var tagArg string

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle a tag on files",
		Long:  "Removes the tag when every file carries it and adds it otherwise. Local state is rolled back if the server refuses.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileIDs, err := parseIDs("file", files)
			if err != nil {
				return err
			}
			if len(fileIDs) == 0 {
				return fmt.Errorf("at least one --file is required")
			}
			tagID, err := parseID("tag", tagArg)
			if err != nil {
				return err
			}

			c := a.client()
			ctx := cmd.Context()

			loaded := make([]entity.File, 0, len(fileIDs))
			for _, id := range fileIDs {
				f, err := c.File(ctx, id)
				if err != nil {
					return err
				}
				loaded = append(loaded, *f)
			}

			folderTags, err := c.FolderTags(ctx, loaded[0].FolderID)
			if err != nil {
				return err
			}
			var target *entity.Tag
			for i := range folderTags {
				if folderTags[i].ID == tagID {
					target = &folderTags[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("tag %s is not in folder %s", tagID, loaded[0].FolderID)
			}

			notifier := tagstate.NotifierFunc(func(message string) {
				a.log.Warn().Str("tag", target.Name).Msg(message)
			})
			ctrl := tagstate.NewController(c, notifier, loaded, folderTags)

			ok := ctrl.Toggle(ctx, *target)

			out := toggleOutput{
				Tag:      *target,
				Selected: ctrl.Selected(*target),
				Files:    make(map[uuid.UUID][]entity.Tag, len(loaded)),
			}
			for _, f := range loaded {
				out.Files[f.ID] = ctrl.Tags(f.ID)
			}
			if err := a.print(cmd, out); err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("toggle of %q was rolled back", target.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "file id (repeatable)")
	cmd.Flags().StringVar(&tagArg, "tag", "", "tag id")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}
