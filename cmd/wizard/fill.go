// cmd/wizard/fill.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/form"
	"apply-wizard/internal/models"
	"apply-wizard/internal/steps"
)

// fillCmd runs the whole wizard interactively
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Walk through every step interactively",
	Long: `Prompt for each field of each step, submit it and move on until the
review step. Press enter to keep the shown value, "-" to clear it.

Without --session a new session id is generated and printed.`,
	Args: cobra.NoArgs,
	RunE: runFill,
}

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " [y/N]")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

func runFill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	session := sessionID
	if session == "" {
		session = uuid.New().String()
		fmt.Fprintf(out, "session: %s\n", session)
	}

	e, err := openEnv(ctx, session)
	if err != nil {
		return err
	}
	defer e.Close()

	p := &prompter{scanner: bufio.NewScanner(cmd.InOrStdin()), out: out}
	nav := e.session.Navigator()

	for {
		st := e.session.Step()
		fmt.Fprintf(out, "\n== %d/%d %s ==\n", nav.Current()+1, nav.Len(), st.Title)

		if st.Form == nil {
			if nav.Current() == nav.Len()-1 {
				return printCompletion(ctx, e, out)
			}
			if _, err := p.ask("press enter to continue"); err != nil {
				return err
			}
			if err := e.session.Select(nav.Current() + 1); err != nil {
				return err
			}
			continue
		}

		c, err := e.session.Current(ctx)
		if err != nil {
			return err
		}
		if c.State() == form.StateLoading {
			return errors.NewFormNotReadyError(st.Form.Key, c.State().String())
		}
		if err := fillForm(p, c); err != nil {
			return err
		}
		advanced, err := c.Submit(ctx)
		if err != nil {
			return err
		}
		if !advanced {
			fmt.Fprintln(out, "please fix:")
			printErrors(out, c.Errors())
		}
	}
}

func fillForm(p *prompter, c *form.Controller) error {
	def := c.Step()
	for _, in := range def.Inputs {
		if !visible(c, in) {
			continue
		}
		if err := promptInput(p, c, in, in.Path); err != nil {
			return err
		}
	}

	for _, layout := range def.Lists {
		list, _ := def.Schema.FindList(layout.Name)
		if list.Gate != "" && !c.Record().Bool(list.Gate) {
			continue
		}
		for i := range c.Record().List(layout.Name) {
			if err := promptElement(p, c, layout, i); err != nil {
				return err
			}
		}
		for {
			more, err := p.confirm("add " + strings.ToLower(layout.Label) + "?")
			if err != nil {
				return err
			}
			if !more {
				break
			}
			if err := c.AppendListItem(layout.Name, nil); err != nil {
				return err
			}
			if err := promptElement(p, c, layout, len(c.Record().List(layout.Name))-1); err != nil {
				return err
			}
		}
	}
	return nil
}

func promptElement(p *prompter, c *form.Controller, layout steps.ListLayout, index int) error {
	fmt.Fprintf(p.out, "-- %s #%d\n", layout.Label, index+1)
	for _, in := range layout.Inputs {
		if err := promptInput(p, c, in, models.JoinPath(layout.Name, fmt.Sprint(index), in.Path)); err != nil {
			return err
		}
	}
	return nil
}

func promptInput(p *prompter, c *form.Controller, in steps.Input, path string) error {
	label := in.Label
	if len(in.Options) > 0 {
		label += " [" + strings.Join(in.Options, "/") + "]"
	}
	for {
		current, _ := c.Value(path)
		answer, err := p.ask(fmt.Sprintf("%s (%s)", label, display(current)))
		if err != nil {
			return err
		}
		switch answer {
		case "":
			return nil
		case "-":
			answer = ""
		}
		if err := applyInput(c, path, answer); err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		if msg, ok := c.Errors()[path]; ok {
			fmt.Fprintf(p.out, "  %s\n", msg)
		}
		return nil
	}
}

func printCompletion(ctx context.Context, e *env, out io.Writer) error {
	complete, failing, err := e.session.Complete(ctx)
	if err != nil {
		return err
	}
	if complete {
		fmt.Fprintln(out, "application complete")
		return nil
	}
	fmt.Fprintln(out, "application incomplete:")
	for _, def := range steps.Definitions() {
		if errs, ok := failing[def.Key]; ok {
			fmt.Fprintf(out, "%s:\n", def.Key)
			printErrors(out, errs)
		}
	}
	return nil
}
