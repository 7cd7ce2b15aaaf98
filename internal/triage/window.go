package triage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is preselected in the interactive window menu.
const DefaultWindow = "7d"

type windowChoice struct {
	key   string
	label string
}

var windowChoices = []windowChoice{
	{"today", "Today (since 00:00)"},
	{"2d", "Last 2 days"},
	{"7d", "Last 7 days"},
	{"14d", "Last 14 days"},
	{"30d", "Last 30 days"},
	{"60d", "Last 60 days"},
	{"365d", "Last 365 days"},
	{"all", "All messages (no time filter)"},
}

var windowAliases = map[string]string{
	"today":         "today",
	"2d":            "2d",
	"2days":         "2d",
	"couple days":   "2d",
	"couple day":    "2d",
	"7d":            "7d",
	"7days":         "7d",
	"week":          "7d",
	"1w":            "7d",
	"14d":           "14d",
	"14days":        "14d",
	"two weeks":     "14d",
	"2w":            "14d",
	"30d":           "30d",
	"30days":        "30d",
	"month":         "30d",
	"1m":            "30d",
	"60d":           "60d",
	"60days":        "60d",
	"2m":            "60d",
	"two months":    "60d",
	"couple months": "60d",
	"365d":          "365d",
	"365days":       "365d",
	"year":          "365d",
	"1y":            "365d",
	"all":           "all",
	"none":          "all",
	"no limit":      "all",
}

// NormalizeWindow maps user input (canonical keys plus spelled-out aliases
// like "week" or "no limit") to a canonical window key.
func NormalizeWindow(value string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if key, ok := windowAliases[cleaned]; ok {
		return key, nil
	}
	keys := make([]string, 0, len(windowChoices))
	for _, c := range windowChoices {
		keys = append(keys, c.key)
	}
	return "", fmt.Errorf("invalid message window %q, use one of: %s", value, strings.Join(keys, ", "))
}

// WindowSinceMS converts a canonical window key to an epoch-ms lower bound.
// ok is false for "all", which imposes no bound.
func WindowSinceMS(key string, now time.Time) (int64, bool) {
	switch key {
	case "all":
		return 0, false
	case "today":
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.UnixMilli(), true
	case "2d":
		return now.AddDate(0, 0, -2).UnixMilli(), true
	case "7d":
		return now.AddDate(0, 0, -7).UnixMilli(), true
	case "14d":
		return now.AddDate(0, 0, -14).UnixMilli(), true
	case "30d":
		return now.AddDate(0, 0, -30).UnixMilli(), true
	case "60d":
		return now.AddDate(0, 0, -60).UnixMilli(), true
	case "365d":
		return now.AddDate(0, 0, -365).UnixMilli(), true
	default:
		return 0, false
	}
}

// SelectWindow shows the numbered window menu and blocks for a choice.
// Empty input picks DefaultWindow; any alias is accepted as well. ok is
// false when the user cancels.
func (p *Prompter) SelectWindow(ctx context.Context) (string, bool) {
	for {
		fmt.Fprint(p.out, "\nMessage window:\n")
		for i, c := range windowChoices {
			marker := ""
			if c.key == DefaultWindow {
				marker = " (default)"
			}
			fmt.Fprintf(p.out, "  [%d] %s%s\n", i+1, c.label, marker)
		}
		fmt.Fprint(p.out, "> ")

		choice, ok := p.readLine(ctx)
		if !ok {
			return "", false
		}
		if choice == "" {
			return DefaultWindow, true
		}
		if n, err := strconv.Atoi(choice); err == nil {
			if n >= 1 && n <= len(windowChoices) {
				return windowChoices[n-1].key, true
			}
			fmt.Fprintln(p.out, "Invalid choice. Try again.")
			continue
		}
		key, err := NormalizeWindow(choice)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid choice. Try again.")
			continue
		}
		return key, true
	}
}
