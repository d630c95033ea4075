package ascii

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/denchenko/userdir/internal/core/domain"
)

const (
	boxWidth         = 100
	boxTitlePadding  = 5
	boxBottomPadding = 2
)

var (
	//go:embed users.tmpl
	usersTemplate string

	//go:embed lookups.tmpl
	lookupsTemplate string
)

// UsersData holds data for the user listing template.
type UsersData struct {
	Users     []domain.User
	Timestamp time.Time
}

// LookupsData holds data for the user lookup template.
type LookupsData struct {
	Lookups []domain.Lookup
}

// FormatUsers formats the full user listing.
func FormatUsers(users []domain.User) (string, error) {
	return execute("users", usersTemplate, UsersData{
		Users:     users,
		Timestamp: time.Now(),
	})
}

// FormatLookups formats the result of looking up users by ID.
func FormatLookups(lookups []domain.Lookup) (string, error) {
	return execute("lookups", lookupsTemplate, LookupsData{Lookups: lookups})
}

func execute(name, templateStr string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return strings.TrimLeft(buf.String(), "\n"), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime":      formatTime,
		"formatBoxTitle":  formatBoxTitle,
		"formatBoxBottom": formatBoxBottom,
		"padRight":        padRight,
		"bold": func(text string) string {
			return "\033[1m" + text + "\033[0m"
		},
	}
}

func formatBoxTitle(title string) string {
	titleMax := boxWidth - boxTitlePadding // space for ┌─, ─┐, and spaces

	// Strip ANSI escape codes for length calculation
	cleanTitle := strings.ReplaceAll(title, "\033[1m", "")
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[0m", "")

	n := utf8.RuneCountInString(cleanTitle)
	if n > titleMax {
		n = titleMax
	}

	dashCount := max(boxWidth-n-boxTitlePadding, 0)

	return "┌─ " + title + " " + strings.Repeat("─", dashCount) + "┐"
}

func formatBoxBottom() string {
	return "└" + strings.Repeat("─", boxWidth-boxBottomPadding) + "┘"
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func padRight(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}

	return text + strings.Repeat(" ", width-n)
}
