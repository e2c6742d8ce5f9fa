// Package console implements the tool's collaborator contracts for a plain
// terminal: an interactive presenter driven by stdin prompts, a
// non-interactive presenter for scripted runs, and a host stand-in that reads
// the mods directory from configuration.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bottle-mods/modfixer/internal/model"
)

// Presenter runs the review flow over a terminal. Mismatched mods are listed
// with checkboxes; the user toggles entries by number, uses "all"/"none", or
// narrows the list with "/text" before committing with an empty line.
type Presenter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPresenter creates a terminal presenter reading from in and writing to out
func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	return &Presenter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// SelectDirectory prompts for a directory path; a blank line cancels
func (p *Presenter) SelectDirectory(prompt string) (string, bool) {
	fmt.Fprintf(p.out, "%s (blank to cancel): ", prompt)
	if !p.in.Scan() {
		return "", false
	}
	path := strings.TrimSpace(p.in.Text())
	if path == "" {
		return "", false
	}
	return path, true
}

// Confirm prints the summary and asks for yes/no
func (p *Presenter) Confirm(summary string) bool {
	fmt.Fprintln(p.out, summary)
	fmt.Fprint(p.out, "Proceed? (yes/no): ")
	if !p.in.Scan() {
		return false
	}
	return confirmInput(p.in.Text())
}

// Info prints an informational message
func (p *Presenter) Info(title, message string) {
	fmt.Fprintf(p.out, "\n[%s]\n%s\n", title, message)
}

// Warn prints a warning message
func (p *Presenter) Warn(title, message string) {
	fmt.Fprintf(p.out, "\n[%s] WARNING\n%s\n", title, message)
}

// ReviewPlan lets the user pick which mismatched mods to update. Everything
// starts selected; the returned slice keeps plan order.
func (p *Presenter) ReviewPlan(plan *model.UpdatePlan) []*model.Record {
	selected := make(map[string]bool, len(plan.Mismatched))
	for _, rec := range plan.Mismatched {
		selected[rec.Identifier] = true
	}

	filter := ""
	for {
		visible := filterRecords(plan.Mismatched, filter)
		p.printReview(visible, selected, filter)
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			break
		}
		input := strings.TrimSpace(p.in.Text())
		if input == "" {
			break
		}
		switch {
		case strings.EqualFold(input, "all"):
			for _, rec := range visible {
				selected[rec.Identifier] = true
			}
		case strings.EqualFold(input, "none"):
			for _, rec := range visible {
				selected[rec.Identifier] = false
			}
		case strings.HasPrefix(input, "/"):
			filter = strings.TrimSpace(strings.TrimPrefix(input, "/"))
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(visible) {
				fmt.Fprintf(p.out, "Unrecognized input %q. Enter a number, \"all\", \"none\", \"/text\" to filter, or an empty line to continue.\n", input)
				continue
			}
			rec := visible[n-1]
			selected[rec.Identifier] = !selected[rec.Identifier]
		}
	}

	var out []*model.Record
	for _, rec := range plan.Mismatched {
		if selected[rec.Identifier] {
			out = append(out, rec)
		}
	}
	return out
}

func (p *Presenter) printReview(visible []*model.Record, selected map[string]bool, filter string) {
	fmt.Fprintln(p.out)
	if filter != "" {
		fmt.Fprintf(p.out, "Mods needing update (filter %q):\n", filter)
	} else {
		fmt.Fprintln(p.out, "Mods needing update:")
	}
	if len(visible) == 0 {
		fmt.Fprintln(p.out, "  (no mods match the filter)")
	}
	for i, rec := range visible {
		mark := " "
		if selected[rec.Identifier] {
			mark = "x"
		}
		fmt.Fprintf(p.out, "  %2d. [%s] %s (%s)\n", i+1, mark, rec.Identifier, rec.ChangeString())
	}
	fmt.Fprintln(p.out, "Toggle by number, \"all\", \"none\", \"/text\" to filter, empty line to continue.")
}

func filterRecords(records []*model.Record, filter string) []*model.Record {
	if filter == "" {
		return records
	}
	needle := strings.ToLower(filter)
	var out []*model.Record
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Identifier), needle) {
			out = append(out, rec)
		}
	}
	return out
}

func confirmInput(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// AutoApprove is a Presenter for non-interactive runs: it approves the whole
// mismatched set and answers yes without prompting. Directory selection is
// declined since there is nobody to ask.
type AutoApprove struct {
	out io.Writer
}

// NewAutoApprove creates a presenter that approves everything
func NewAutoApprove(out io.Writer) *AutoApprove {
	return &AutoApprove{out: out}
}

// SelectDirectory always declines; non-interactive runs must configure a path
func (a *AutoApprove) SelectDirectory(prompt string) (string, bool) {
	fmt.Fprintf(a.out, "%s: no interactive session, skipping.\n", prompt)
	return "", false
}

// Confirm prints the summary and approves it
func (a *AutoApprove) Confirm(summary string) bool {
	fmt.Fprintln(a.out, summary)
	return true
}

// ReviewPlan approves every mismatched record
func (a *AutoApprove) ReviewPlan(plan *model.UpdatePlan) []*model.Record {
	return plan.Mismatched
}

// Info prints an informational message
func (a *AutoApprove) Info(title, message string) {
	fmt.Fprintf(a.out, "\n[%s]\n%s\n", title, message)
}

// Warn prints a warning message
func (a *AutoApprove) Warn(title, message string) {
	fmt.Fprintf(a.out, "\n[%s] WARNING\n%s\n", title, message)
}

// LocalHost stands in for a mod manager when the tool runs standalone.
// ModsPath returns the configured directory and Refresh has nobody to notify.
type LocalHost struct {
	Dir string
}

// ModsPath returns the configured mods directory
func (h LocalHost) ModsPath() (string, error) {
	if h.Dir == "" {
		return "", errors.New("no mods folder configured")
	}
	return h.Dir, nil
}

// Refresh is a no-op for standalone runs
func (h LocalHost) Refresh() error {
	return nil
}
