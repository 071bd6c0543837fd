// featflow is an MCP server that tracks feature-development workflows:
// numbered feature directories, phase documents, and a task checklist
// whose state drives the workflow's phase and progress.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/HendryAvila/featflow/internal/log"
	"github.com/HendryAvila/featflow/internal/server"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	cli "github.com/urfave/cli/v3"
)

func main() {
	// Best effort: a missing .env just means defaults apply.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "featflow",
		Usage: "Feature workflow MCP server",
		Description: "Tracks feature workflows through user-stories, architecture, " +
			"implementation, and testing, keeping a markdown checklist in sync with " +
			"the record store.",
		Commands: []*cli.Command{
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the MCP server on stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, cleanup, err := server.New()
			if err != nil {
				return fmt.Errorf("initializing server: %w", err)
			}
			defer cleanup()

			log.GetLogger().Info("featflow serving on stdio")
			if err := mcpserver.ServeStdio(s); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the server version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("featflow %s\n", server.Version)
			return nil
		},
	}
}
