package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskshare/core/cmd/api/commands"
)

// @title TaskShare API
// @version 1.0
// @description Multi-user task tracking with ownership-based sharing

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskshare",
		Short: "TaskShare API Server",
		Long:  `TaskShare is a multi-user task tracking service where users create, edit, delete and share tasks with other users.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
