// Package cmd is the teamhub command line: the HTTP server plus maintenance
// commands that talk to the same Firebase project.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teamhub",
	Short: "Team collaboration dashboard backend",
	Long: `teamhub serves the team dashboard API: tasks with one level of subtasks,
announcements, team chat, shared documents and leader-approved password resets.
All state lives in Firestore and Firebase Storage; every instance keeps a live
cache of it.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statsCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("error:", err)
		stop()
		os.Exit(1)
	}
}
