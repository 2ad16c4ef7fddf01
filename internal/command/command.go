package command

import (
	commandHandler "skusync/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewSyncHandler)

type Command struct {
	syncCommandHandler *commandHandler.SyncHandler
}

// NewCommand .
func NewCommand(
	syncCommandHandler *commandHandler.SyncHandler,
) *Command {
	return &Command{
		syncCommandHandler: syncCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "sync",
			Short: "run a single catalog sync pass and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					return err
				}
				defer cleanup()

				return command.syncCommandHandler.Run(cmd, args)
			},
		},
	)
}
