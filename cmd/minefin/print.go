package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

var (
	heading    = color.New(color.FgCyan, color.Bold)
	successOut = color.New(color.FgGreen)
	warnOut    = color.New(color.FgYellow)
)

// newTable returns a tabwriter on stdout; call Flush when done.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// emptyNote distinguishes "no records" from a failed fetch, which surfaces
// as an error instead.
func emptyNote(what string) {
	warnOut.Printf("No %s recorded yet.\n", what)
}
