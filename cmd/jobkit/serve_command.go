package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jobkit/internal/httpserver"
	"jobkit/internal/job"
)

func newServeCommand() *cobra.Command {
	flags := job.NewFlags()
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a small HTTP server that echoes request metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.New("Http Server", job.WithFlags(flags), job.WithReadOnly())
			if err != nil {
				return err
			}
			if err := j.Start(true); err != nil {
				return fail(j, "Job could not start", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := httpserver.New(j.Out, port, nil)
			if err := server.Run(ctx); err != nil {
				return fail(j, "Server failed", err)
			}

			j.Finish(0)
			return nil
		},
	}

	flags.Register(cmd)
	cmd.Flags().IntVar(&port, "port", httpserver.DefaultPort, "TCP port to listen on")

	return cmd
}
