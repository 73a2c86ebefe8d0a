package main

import (
	"fmt"

	"yatube/internal/service"

	"github.com/urfave/cli/v2"
)

func groupCmd() *cli.Command {
	return &cli.Command{
		Name:  "group",
		Usage: "Manage post groups",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a group",
				ArgsUsage: "<slug>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Group title",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Group description",
					},
				},
				Action: func(ctx *cli.Context) error {
					slug := ctx.Args().First()
					if slug == "" {
						return cli.Exit("slug is required", 1)
					}
					db, err := openDB(ctx)
					if err != nil {
						return err
					}
					g, err := service.NewGroupService(db).CreateGroup(ctx.Context, ctx.String("title"), slug, ctx.String("description"))
					if err != nil {
						return err
					}
					fmt.Fprintf(ctx.App.Writer, "Created group %d %s\n", g.ID, g.Slug)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List groups",
				Action: func(ctx *cli.Context) error {
					db, err := openDB(ctx)
					if err != nil {
						return err
					}
					groups, err := service.NewGroupService(db).ListGroups(ctx.Context)
					if err != nil {
						return err
					}
					for _, g := range groups {
						fmt.Fprintf(ctx.App.Writer, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
					}
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a group, its posts stay without a group",
				ArgsUsage: "<slug>",
				Action: func(ctx *cli.Context) error {
					slug := ctx.Args().First()
					if slug == "" {
						return cli.Exit("slug is required", 1)
					}
					db, err := openDB(ctx)
					if err != nil {
						return err
					}
					if err := service.NewGroupService(db).DeleteGroup(ctx.Context, slug); err != nil {
						return err
					}
					fmt.Fprintf(ctx.App.Writer, "Deleted group %s\n", slug)
					return nil
				},
			},
		},
	}
}
