package main

import (
	"fmt"

	"github.com/edulab/peerreview/storage/database"
)

// migrate applies all pending migrations.
func (cli *commandLine) migrate() error {
	if err := database.Migrate(cli.db); err != nil {
		return err
	}
	fmt.Println("database is up to date")
	return nil
}
