package main

import (
	"fmt"
	"os"

	"yatube/internal/config"
	"yatube/internal/pkg/logger"
	"yatube/internal/repository/mysql"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootApp() *cli.App {
	return &cli.App{
		Name:  "yatubectl",
		Usage: "Yatube administration",
		Description: `Administrative commands for a Yatube installation.

		The configuration is read from <config>/config.yaml, YATUBE_ prefixed
		environment variables override it, e.g.:

		database.dsn => YATUBE_DATABASE_DSN
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "./configs",
				Usage:   "Directory containing config.yaml",
				EnvVars: []string{"YATUBE_CONFIG_DIR"},
			},
		},
		Commands: []*cli.Command{
			migrateCmd(),
			groupCmd(),
		},
		Action: func(ctx *cli.Context) error {
			return cli.ShowAppHelp(ctx)
		},
	}
}

// openDB 读取配置并连接数据库
func openDB(ctx *cli.Context) (*gorm.DB, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	logger.InitLogger(cfg.Log.Level)
	return mysql.InitDB(cfg.DB)
}
