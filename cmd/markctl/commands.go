package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mkoval/markd/internal/domain"
)

func listCommand(c *cli.Context) error {
	var bookmarks []domain.Bookmark
	if err := newClient(c).do(http.MethodGet, "/api/bookmarks", nil, &bookmarks); err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("no bookmarks")
		return nil
	}
	for _, bm := range bookmarks {
		printBookmark(bm)
	}
	return nil
}

func addCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: markctl add <title> <url>", 1)
	}

	input := domain.CreateInput{
		Title:    c.Args().Get(0),
		URL:      c.Args().Get(1),
		Category: c.String("category"),
		Tags:     c.StringSlice("tag"),
		Notes:    c.String("notes"),
	}
	if at := c.String("remind-at"); at != "" {
		input.Reminder = &domain.Reminder{
			Enabled: true,
			Frequency: domain.Frequency{
				Kind:         domain.FrequencyKind(c.String("remind-every")),
				IntervalDays: c.Int("remind-interval"),
			},
			Time: at,
			Days: c.IntSlice("remind-day"),
		}
	}

	var bm domain.Bookmark
	if err := newClient(c).do(http.MethodPost, "/api/bookmarks", input, &bm); err != nil {
		return err
	}
	fmt.Printf("added bookmark %d\n", bm.ID)
	return nil
}

func getCommand(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	var bm domain.Bookmark
	if err := newClient(c).do(http.MethodGet, fmt.Sprintf("/api/bookmarks/%d", id), nil, &bm); err != nil {
		return err
	}
	printBookmark(bm)
	return nil
}

func rmCommand(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := newClient(c).do(http.MethodDelete, fmt.Sprintf("/api/bookmarks/%d", id), nil, nil); err != nil {
		return err
	}
	fmt.Printf("deleted bookmark %d\n", id)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: markctl search <query>", 1)
	}
	var bookmarks []domain.Bookmark
	path := "/api/bookmarks/search?q=" + urlQueryEscape(c.Args().First())
	if err := newClient(c).do(http.MethodGet, path, nil, &bookmarks); err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, bm := range bookmarks {
		printBookmark(bm)
	}
	return nil
}

func visitCommand(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := newClient(c).do(http.MethodPost, fmt.Sprintf("/api/bookmarks/%d/visit", id), nil, nil); err != nil {
		return err
	}
	fmt.Printf("visit recorded for bookmark %d\n", id)
	return nil
}

func remindersCommand(c *cli.Context) error {
	var bookmarks []domain.Bookmark
	if err := newClient(c).do(http.MethodGet, "/api/reminders", nil, &bookmarks); err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("no reminders")
		return nil
	}
	for _, bm := range bookmarks {
		printBookmark(bm)
	}
	return nil
}

func completeCommand(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := newClient(c).do(http.MethodPost, fmt.Sprintf("/api/bookmarks/%d/complete", id), nil, nil); err != nil {
		return err
	}
	fmt.Printf("reminder %d completed\n", id)
	return nil
}

func snoozeCommand(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	minutes := c.Int("minutes")
	body := map[string]int{"minutes": minutes}
	if err := newClient(c).do(http.MethodPost, fmt.Sprintf("/api/bookmarks/%d/snooze", id), body, nil); err != nil {
		return err
	}
	fmt.Printf("reminder %d snoozed for %d minutes\n", id, minutes)
	return nil
}

func checkCommand(c *cli.Context) error {
	if err := newClient(c).do(http.MethodPost, "/api/reminders/check", nil, nil); err != nil {
		return err
	}
	fmt.Println("check triggered")
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("usage: markctl import <file>", 1)
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	var result struct {
		Parsed   int `json:"parsed"`
		Imported int `json:"imported"`
	}
	resp, err := newClient(c).doRaw(http.MethodPost, "/api/import", f)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := decodeJSON(resp.Body, &result); err != nil {
		return err
	}
	fmt.Printf("imported %d of %d bookmarks\n", result.Imported, result.Parsed)
	return nil
}

func exportCommand(c *cli.Context) error {
	resp, err := newClient(c).doRaw(http.MethodGet, "/api/export", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out := io.Writer(os.Stdout)
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err = io.Copy(out, resp.Body)
	return err
}
