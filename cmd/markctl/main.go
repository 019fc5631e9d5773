package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mkoval/markd/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "markctl",
		Usage:   "Command-line client for the markd bookmark daemon",
		Version: fmt.Sprintf("%s (commit=%s)", version.Version, version.Commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "base URL of the markd server",
				Value:   "http://localhost:7629",
				EnvVars: []string{"MARKD_SERVER"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all bookmarks",
				Action:  listCommand,
			},
			{
				Name:      "add",
				Usage:     "Add a bookmark",
				ArgsUsage: "<title> <url>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "category name"},
					&cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "tag (repeatable)"},
					&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "free-form notes"},
					&cli.StringFlag{Name: "remind-at", Usage: "reminder time of day, HH:MM"},
					&cli.StringFlag{Name: "remind-every", Usage: "reminder frequency: daily, weekly, custom, once", Value: "daily"},
					&cli.IntSliceFlag{Name: "remind-day", Usage: "weekday for weekly reminders, 0=Sunday (repeatable)"},
					&cli.IntFlag{Name: "remind-interval", Usage: "interval in days for custom reminders"},
				},
				Action: addCommand,
			},
			{
				Name:      "get",
				Usage:     "Show one bookmark",
				ArgsUsage: "<id>",
				Action:    getCommand,
			},
			{
				Name:      "rm",
				Usage:     "Delete a bookmark",
				ArgsUsage: "<id>",
				Action:    rmCommand,
			},
			{
				Name:      "search",
				Usage:     "Search bookmarks by title, URL, category or notes",
				ArgsUsage: "<query>",
				Action:    searchCommand,
			},
			{
				Name:      "visit",
				Usage:     "Record a visit to a bookmark",
				ArgsUsage: "<id>",
				Action:    visitCommand,
			},
			{
				Name:    "reminders",
				Aliases: []string{"rem"},
				Usage:   "List bookmarks with reminders",
				Action:  remindersCommand,
			},
			{
				Name:      "complete",
				Usage:     "Mark a reminder as done for today",
				ArgsUsage: "<id>",
				Action:    completeCommand,
			},
			{
				Name:      "snooze",
				Usage:     "Snooze a reminder",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "minutes", Aliases: []string{"m"}, Usage: "minutes to snooze", Value: 60},
				},
				Action: snoozeCommand,
			},
			{
				Name:   "check",
				Usage:  "Trigger an immediate reminder check",
				Action: checkCommand,
			},
			{
				Name:      "import",
				Usage:     "Import a Netscape HTML or JSON bookmark file",
				ArgsUsage: "<file>",
				Action:    importCommand,
			},
			{
				Name:  "export",
				Usage: "Export all bookmarks as a Netscape HTML file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default: stdout)"},
				},
				Action: exportCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
