// cmd/wizard/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/schema"
	"apply-wizard/internal/steps"
	"apply-wizard/pkg/registry"
)

var (
	submitSets    []string
	submitAdds    []string
	submitRemoves []string
	showValidate  bool
	registryOut   string
	registryVer   string
)

// newCmd prints a fresh session id
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a new session id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), uuid.New().String())
		return nil
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps in order",
	Args:  cobra.NoArgs,
	RunE:  runSteps,
}

var showCmd = &cobra.Command{
	Use:   "show <step>",
	Short: "Print the live record of a step",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var submitCmd = &cobra.Command{
	Use:   "submit <step>",
	Short: "Edit a step and submit it",
	Long: `Apply edits to a step's record and submit it. Edits run in this order:
--add appends a blank list element, --remove deletes list:index, --set
assigns path=value through the field's input (select, date, phone, ...).

Multi-select values are comma separated. Toggles take true/false.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

var resetCmd = &cobra.Command{
	Use:   "reset <step>",
	Short: "Clear the stored record of a step",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Print every stored step and whether the application is complete",
	Args:  cobra.NoArgs,
	RunE:  runReview,
}

var schemaCmd = &cobra.Command{
	Use:   "schema <step>",
	Short: "Print the JSON schema of a step",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchema,
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Export the step registry document",
	Args:  cobra.NoArgs,
	RunE:  runRegistry,
}

func init() {
	showCmd.Flags().BoolVar(&showValidate, "validate", false, "Also print validation errors")

	submitCmd.Flags().StringArrayVar(&submitSets, "set", nil, "path=value, repeatable")
	submitCmd.Flags().StringArrayVar(&submitAdds, "add", nil, "List to append a blank element to, repeatable")
	submitCmd.Flags().StringArrayVar(&submitRemoves, "remove", nil, "list:index to remove, repeatable")

	registryCmd.Flags().StringVar(&registryOut, "out", "", "Write to file instead of stdout")
	registryCmd.Flags().StringVar(&registryVer, "version", "1.0.0", "Registry version")
}

func runSteps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, st := range steps.Catalog() {
		key := "-"
		if st.Form != nil {
			key = st.Form.Key
		}
		fmt.Fprintf(out, "%d\t%-16s\t%-24s\t%s\n", i+1, st.Title, st.Route, key)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, sessionID)
	if err != nil {
		return err
	}
	defer e.Close()

	c, err := formFor(ctx, e, args[0])
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), c.Record()); err != nil {
		return err
	}
	if showValidate {
		printErrors(cmd.OutOrStdout(), c.Step().Schema.Validate(c.Record()))
	}
	return nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, sessionID)
	if err != nil {
		return err
	}
	defer e.Close()

	c, err := formFor(ctx, e, args[0])
	if err != nil {
		return err
	}
	def := c.Step()

	for _, list := range submitAdds {
		if err := c.AppendListItem(list, nil); err != nil {
			return err
		}
	}
	for _, target := range submitRemoves {
		list, index, err := parseRemove(target)
		if err != nil {
			return err
		}
		if err := c.RemoveListItem(list, index); err != nil {
			return err
		}
	}
	for _, assignment := range submitSets {
		fieldPath, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return errors.NewInvalidFieldPathError(assignment, fmt.Errorf("expected path=value"))
		}
		if err := applyInput(c, fieldPath, raw); err != nil {
			return err
		}
	}

	advanced, err := c.Submit(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !advanced {
		errs := c.Errors()
		printErrors(out, errs)
		return fmt.Errorf("%s: %d field(s) invalid", def.Key, len(errs))
	}

	next := e.session.Navigator().CurrentStep()
	fmt.Fprintf(out, "%s saved, next: %s (%s)\n", def.Key, next.Title, next.Route)
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, sessionID)
	if err != nil {
		return err
	}
	defer e.Close()

	c, err := formFor(ctx, e, args[0])
	if err != nil {
		return err
	}
	if err := c.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", c.Step().Key)
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, sessionID)
	if err != nil {
		return err
	}
	defer e.Close()

	app, err := e.session.Application(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := printJSON(out, app); err != nil {
		return err
	}

	complete, failing, err := e.session.Complete(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "complete: %t\n", complete)
	for _, def := range steps.Definitions() {
		if errs, ok := failing[def.Key]; ok {
			fmt.Fprintf(out, "%s:\n", def.Key)
			printErrors(out, errs)
		}
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	def, ok := steps.Lookup(args[0])
	if !ok {
		return errors.NewStepNotFoundError(args[0])
	}
	return printJSON(cmd.OutOrStdout(), def.Schema.JSONSchema())
}

func runRegistry(cmd *cobra.Command, args []string) error {
	reg := registry.Build(registryVer)
	if registryOut == "" {
		return printJSON(cmd.OutOrStdout(), reg)
	}
	if err := registry.WriteRegistry(registryOut, reg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "registry written to %s\n", registryOut)
	return nil
}

func parseRemove(target string) (string, int, error) {
	list, rawIndex, ok := strings.Cut(target, ":")
	if !ok {
		return "", 0, errors.NewInvalidFieldPathError(target, fmt.Errorf("expected list:index"))
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return "", 0, errors.NewInvalidFieldPathError(target, err)
	}
	return list, index, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printErrors(w io.Writer, errs schema.Errors) {
	for _, field := range errs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", field, errs[field])
	}
}
