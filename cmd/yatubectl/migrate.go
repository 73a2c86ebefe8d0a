package main

import (
	"fmt"

	"yatube/internal/repository/mysql"

	"github.com/urfave/cli/v2"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: `Creates or updates the tables for users, groups, posts, comments, follows and the outbox.`,
		Action: func(ctx *cli.Context) error {
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			if err := mysql.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(ctx.App.Writer, "Database migrated")
			return nil
		},
	}
}
