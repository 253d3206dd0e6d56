package main

import (
	"os"

	"github.com/oakensoul/aida/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.UpdateCmd())
	rootCmd.AddCommand(commands.ValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
