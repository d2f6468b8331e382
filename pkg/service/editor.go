package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/history"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
)

const editorHelp = `Commands:
  list                    show the rows with pending values
  name <row> <name>       rename the version of a row
  desc <row> [text]       set the version description of a row
  select <row>...         mark rows for deletion
  unselect <row>...       unmark rows
  delete <row>            delete one deployment
  delete-selected         delete the marked deployments
  pending                 show the pending edits
  save                    apply the pending edits and leave
  cancel                  discard the pending edits and leave
  help                    show this text`

// Editor drives the edit mode of the deployment history from typed commands.
type Editor struct {
	session  *history.Session
	prompter *prompter.Prompter
	rows     []api.Deployment
}

// NewEditor creates an editor over a loaded session.
func NewEditor(session *history.Session, p *prompter.Prompter) *Editor {
	return &Editor{session: session, prompter: p}
}

// EditDeployments opens the filtered history in edit mode
func (ds *DeploymentService) EditDeployments(ctx context.Context, opts FilterOptions) error {
	session, err := ds.open(ctx, opts)
	if err != nil {
		return err
	}
	return NewEditor(session, ds.prompter).Run(ctx)
}

// Run enters edit mode and reads commands until the edits are saved or
// discarded. End of input discards them.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.session.BeginEdit(); err != nil {
		return err
	}
	e.list()

	for e.session.Mode() != history.ModeViewing {
		line, err := e.prompter.String("edit> ")
		if errors.Is(err, io.EOF) {
			return e.discard(ctx)
		}
		if err != nil {
			return err
		}
		if err := e.Exec(ctx, line); err != nil {
			if errors.Is(err, io.EOF) {
				return e.discard(ctx)
			}
			output.PrintError("%s", err.Error())
		}
	}

	output.PrintInfo("Left edit mode.")
	return nil
}

func (e *Editor) discard(ctx context.Context) error {
	if e.session.Mode() != history.ModeEditing {
		if err := e.session.Abort(); err != nil {
			return err
		}
	}
	if err := e.session.RequestCancel(); err != nil {
		return err
	}
	if e.session.Mode() == history.ModeCancelling {
		if _, err := e.session.Confirm(ctx); err != nil {
			return err
		}
	}
	output.PrintInfo("Pending edits discarded.")
	return nil
}

// Exec runs one command line.
func (e *Editor) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	logger.Debug("Editor command", "command", cmd, "args", args)

	switch cmd {
	case "list", "ls":
		e.list()
	case "help", "?":
		fmt.Fprintln(output.Out, editorHelp)
	case "name":
		if len(args) < 2 {
			return fmt.Errorf("usage: name <row> <name>")
		}
		r, err := e.row(args[0])
		if err != nil {
			return err
		}
		value := restAfter(line, 2)
		return e.session.SetEdit(r, history.FieldVersionName, value)
	case "desc":
		if len(args) < 1 {
			return fmt.Errorf("usage: desc <row> [text]")
		}
		r, err := e.row(args[0])
		if err != nil {
			return err
		}
		value := restAfter(line, 2)
		return e.session.SetEdit(r, history.FieldVersionDescription, value)
	case "select", "unselect":
		for _, a := range args {
			r, err := e.row(a)
			if err != nil {
				return err
			}
			if cmd == "unselect" {
				e.session.Deselect(r)
				continue
			}
			if err := e.session.Select(r); err != nil {
				return err
			}
		}
		fmt.Fprintf(output.Out, "%s selected\n", output.Count(len(e.session.Selected()), "row", "rows", "rows"))
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <row>")
		}
		r, err := e.row(args[0])
		if err != nil {
			return err
		}
		if err := e.session.RequestDelete(r); err != nil {
			return err
		}
		return e.answer(ctx, fmt.Sprintf("Delete deployment of %s %s to %s?", r.AppKey, r.VersionName, r.EnvironmentName))
	case "delete-selected":
		n := len(e.session.Selected())
		if err := e.session.RequestDeleteSelected(); err != nil {
			return err
		}
		return e.answer(ctx, fmt.Sprintf("Delete %s?", output.Count(n, "selected deployment", "selected deployments", "selected deployments")))
	case "pending":
		e.pending()
	case "save":
		if err := e.session.RequestCommit(); err != nil {
			return err
		}
		if e.session.Mode() == history.ModeConfirming {
			return e.answer(ctx, fmt.Sprintf("Save %s?", output.Count(len(e.session.PendingEdits()), "edit", "edits", "edits")))
		}
	case "cancel":
		if err := e.session.RequestCancel(); err != nil {
			return err
		}
		if e.session.Mode() == history.ModeCancelling {
			return e.answer(ctx, fmt.Sprintf("Discard %s?", output.Count(len(e.session.PendingEdits()), "edit", "edits", "edits")))
		}
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
	return nil
}

// answer resolves the open confirmation from the user's reply.
func (e *Editor) answer(ctx context.Context, question string) error {
	ok, err := e.prompter.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		return e.session.Abort()
	}

	deleting := e.session.Mode() == history.ModeDeletingOne || e.session.Mode() == history.ModeDeletingMany
	if _, err := e.session.Confirm(ctx); err != nil {
		return err
	}
	if deleting {
		e.list()
	}
	return nil
}

// restAfter drops the first n words of line, keeping the inner spacing of the
// remainder.
func restAfter(line string, n int) string {
	s := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(s, unicode.IsSpace)
		if idx < 0 {
			return ""
		}
		s = strings.TrimSpace(s[idx:])
	}
	return s
}

func (e *Editor) row(arg string) (api.Deployment, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(e.rows) {
		return api.Deployment{}, fmt.Errorf("no row %q, rows are numbered 1 to %d", arg, len(e.rows))
	}
	return e.rows[n-1], nil
}

func (e *Editor) list() {
	e.rows = e.session.Rows()
	if len(e.rows) == 0 {
		output.PrintInfo("No deployments found.")
		return
	}
	printDeploymentTable(e.session, e.rows, true)
}

func (e *Editor) pending() {
	entries := e.session.PendingEdits()
	if len(entries) == 0 {
		output.PrintInfo("No pending edits.")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		u := entry.Update()
		rows = append(rows, []string{
			entry.Record.AppKey,
			entry.Record.VersionName,
			u.Name,
			output.Truncate(u.Description, 40),
		})
	}
	output.PrintTable([]string{"APP", "VERSION", "NEW NAME", "NEW DESCRIPTION"}, rows)
}
