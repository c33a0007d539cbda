package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ishell "github.com/abiosoft/ishell"

	"github.com/askhatb/challenge-on/internal/client/api"
	"github.com/askhatb/challenge-on/internal/client/calendar"
	"github.com/askhatb/challenge-on/internal/models"
)

// lastListing maps the numbers printed by `list` to challenge ids, so other
// commands can take `view 2` instead of a raw id.
var lastListing []models.Challenge

func refreshListing() error {
	challenges, err := apiClient.ListChallenges()
	if err != nil {
		return err
	}
	lastListing = challenges
	return nil
}

// resolveChallenge turns a command argument (a listing number) into a
// challenge from the last listing, refreshing it when needed.
func resolveChallenge(c *ishell.Context) (*models.Challenge, bool) {
	if len(c.Args) != 1 {
		c.Println("Usage: " + c.Cmd.Name + " <number from 'list'>")
		return nil, false
	}

	if len(lastListing) == 0 {
		if err := refreshListing(); err != nil {
			c.Println("Error: " + err.Error())
			return nil, false
		}
	}

	n, err := strconv.Atoi(c.Args[0])
	if err != nil || n < 1 || n > len(lastListing) {
		c.Printf("No challenge #%s. Run 'list' first.\n", c.Args[0])
		return nil, false
	}

	return &lastListing[n-1], true
}

func printChallengeLine(c *ishell.Context, index int, challenge models.Challenge) {
	c.Printf("%2d. %-24s %s - %s  (%d logs)\n",
		index+1,
		challenge.Name,
		challenge.StartDate.Format(calendar.DayFormat),
		challenge.EndDate.Format(calendar.DayFormat),
		len(challenge.ProgressLogs),
	)
}

func printLog(c *ishell.Context, log models.ProgressLog) {
	line := fmt.Sprintf("  %s  %s", log.Date.Format(calendar.DayFormat), log.Description)
	if log.MediaURL != "" {
		line += "  [" + log.MediaURL + "]"
	}
	c.Println(line)
}

// promptField reads a line, falling back to the current value on empty input.
func promptField(c *ishell.Context, label, current string) string {
	if current != "" {
		c.Printf("%s [%s]: ", label, current)
	} else {
		c.Print(label + ": ")
	}
	value := strings.TrimSpace(c.ReadLine())
	if value == "" {
		return current
	}
	return value
}

func listCommand() Command {
	return Command{
		Name: "list",
		Desc: "List your challenges",
		Func: func(c *ishell.Context) {
			if err := refreshListing(); err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			if len(lastListing) == 0 {
				c.Println("No challenges yet. Create one with 'new'.")
				return
			}
			for i, challenge := range lastListing {
				printChallengeLine(c, i, challenge)
			}
		},
	}
}

func viewCommand() Command {
	return Command{
		Name: "view",
		Desc: "Show a challenge and its progress logs",
		Func: func(c *ishell.Context) {
			selected, ok := resolveChallenge(c)
			if !ok {
				return
			}

			challenge, err := apiClient.GetChallenge(selected.ID.Hex())
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}

			c.Println(challenge.Name)
			if challenge.Description != "" {
				c.Println(challenge.Description)
			}
			c.Printf("From %s to %s\n",
				challenge.StartDate.Format(calendar.DayFormat),
				challenge.EndDate.Format(calendar.DayFormat))
			if challenge.ReminderTime != "" {
				c.Println("Reminder: " + challenge.ReminderTime)
			}

			if len(challenge.ProgressLogs) == 0 {
				c.Println("No progress logged yet.")
				return
			}
			c.Println("Progress:")
			for _, log := range challenge.ProgressLogs {
				printLog(c, log)
			}
		},
	}
}

func newCommand() Command {
	return Command{
		Name: "new",
		Desc: "Create a new challenge",
		Func: func(c *ishell.Context) {
			input := api.ChallengeInput{
				Name:         promptField(c, "Name", ""),
				Description:  promptField(c, "Description", ""),
				StartDate:    promptField(c, "Start date (YYYY-MM-DD)", ""),
				EndDate:      promptField(c, "End date (YYYY-MM-DD)", ""),
				ReminderTime: promptField(c, "Reminder time (optional, e.g. 09:00)", ""),
			}

			created, err := apiClient.CreateChallenge(input)
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Printf("Created challenge %q.\n", created.Name)
		},
	}
}

func editCommand() Command {
	return Command{
		Name: "edit",
		Desc: "Edit a challenge",
		Func: func(c *ishell.Context) {
			selected, ok := resolveChallenge(c)
			if !ok {
				return
			}

			input := api.ChallengeInput{
				Name:         promptField(c, "Name", selected.Name),
				Description:  promptField(c, "Description", selected.Description),
				StartDate:    promptField(c, "Start date (YYYY-MM-DD)", selected.StartDate.Format(calendar.DayFormat)),
				EndDate:      promptField(c, "End date (YYYY-MM-DD)", selected.EndDate.Format(calendar.DayFormat)),
				ReminderTime: promptField(c, "Reminder time", selected.ReminderTime),
			}

			updated, err := apiClient.UpdateChallenge(selected.ID.Hex(), input)
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Printf("Updated challenge %q.\n", updated.Name)
		},
	}
}

func deleteCommand() Command {
	return Command{
		Name: "delete",
		Desc: "Delete a challenge and its progress logs",
		Func: func(c *ishell.Context) {
			selected, ok := resolveChallenge(c)
			if !ok {
				return
			}

			c.Printf("Delete %q and all its progress logs? (y/N): ", selected.Name)
			if !strings.EqualFold(strings.TrimSpace(c.ReadLine()), "y") {
				c.Println("Cancelled.")
				return
			}

			if err := apiClient.DeleteChallenge(selected.ID.Hex()); err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Println("Deleted.")
			lastListing = nil
		},
	}
}

func logCommand() Command {
	return Command{
		Name: "log",
		Desc: "Record progress for a challenge",
		Func: func(c *ishell.Context) {
			selected, ok := resolveChallenge(c)
			if !ok {
				return
			}

			input := api.ProgressInput{
				ChallengeID: selected.ID.Hex(),
				Date:        promptField(c, "Date (YYYY-MM-DD)", time.Now().Format(calendar.DayFormat)),
				Description: promptField(c, "What did you do?", ""),
				MediaURL:    promptField(c, "Media URL (optional)", ""),
			}

			if _, err := apiClient.CreateProgress(input); err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			c.Println("Progress recorded.")
		},
	}
}

func logsCommand() Command {
	return Command{
		Name: "logs",
		Desc: "Show a challenge's progress logs, most recent first",
		Func: func(c *ishell.Context) {
			selected, ok := resolveChallenge(c)
			if !ok {
				return
			}

			logs, err := apiClient.ListProgress(selected.ID.Hex())
			if err != nil {
				c.Println("Error: " + err.Error())
				return
			}
			if len(logs) == 0 {
				c.Println("No progress logged yet.")
				return
			}
			for _, log := range logs {
				printLog(c, log)
			}
		},
	}
}

func calendarCommand() Command {
	return Command{
		Name: "calendar",
		Desc: "Show this month's activity across all challenges",
		Func: func(c *ishell.Context) {
			if err := refreshListing(); err != nil {
				c.Println("Error: " + err.Error())
				return
			}

			var all []models.ProgressLog
			for _, challenge := range lastListing {
				all = append(all, challenge.ProgressLogs...)
			}

			now := time.Now()
			marked := calendar.MarkedDates(all)
			c.Println(calendar.RenderMonth(now.Year(), now.Month(), marked, now))

			today := marked[now.Format(calendar.DayFormat)]
			if len(today) > 0 {
				c.Println("Today:")
				for _, log := range today {
					printLog(c, log)
				}
			}
		},
	}
}
