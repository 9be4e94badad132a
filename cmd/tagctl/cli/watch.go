package cli

import (
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/leondli/gallery/internal/domain/entity"
)

func newWatchCommand(a *app) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream tag events of a folder",
		Long:  "Connects to the folder event stream and prints every tag event until the connection closes or the command is interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID, err := parseID("folder", folder)
			if err != nil {
				return err
			}

			url, err := a.client().EventsURL(folderID)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			defer conn.Close()

			go func() {
				<-ctx.Done()
				_ = conn.Close()
			}()

			a.log.Info().Str("folder_id", folderID.String()).Msg("Watching tag events")
			for {
				var event entity.TagEvent
				if err := conn.ReadJSON(&event); err != nil {
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
						return nil
					}
					return err
				}
				if err := a.print(cmd, event); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "folder id")
	_ = cmd.MarkFlagRequired("folder")

	return cmd
}
