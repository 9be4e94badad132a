package cli

import (
	"github.com/spf13/cobra"
)

func newFoldersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := a.client().Folders(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, folders)
		},
	})

	return cmd
}

func newFilesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect files",
	}

	var folder, tagID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the files of a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID("folder", folder)
			if err != nil {
				return err
			}
			filter, err := optionalID("tag", tagID)
			if err != nil {
				return err
			}

			files, err := a.client().Files(cmd.Context(), folderID, filter)
			if err != nil {
				return err
			}
			return a.print(cmd, files)
		},
	}
	list.Flags().StringVar(&folder, "folder", "", "folder id")
	list.Flags().StringVar(&tagID, "tag", "", "only files carrying this tag")
	_ = list.MarkFlagRequired("folder")

	cmd.AddCommand(list)
	return cmd
}
