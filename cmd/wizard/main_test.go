package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apply-wizard/internal/common/errors"
	"apply-wizard/internal/steps"
	"apply-wizard/pkg/registry"
)

// setupWorkspace points the global flags at a file-backed store in a temp
// directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := "storage:\n  driver: file\n  file:\n    path: " + filepath.Join(dir, "storage.json") + "\nlogging:\n  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	resetFlags()
	configPath = path
	sessionID = "test-session"
	t.Cleanup(resetFlags)
	return dir
}

func resetFlags() {
	configPath, sessionID, logLevel = "", "", ""
	submitSets, submitAdds, submitRemoves = nil, nil, nil
	showValidate = false
	registryOut, registryVer = "", "1.0.0"
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := fn(cmd, args)
	return out.String(), err
}

var personalInfoSets = []string{
	"firstName=Ana",
	"lastName=Popescu",
	"dateOfBirth=01/05/1994",
	"age=30",
	"gender=female",
	"email=ana@example.com",
	"phone=0712 345 678",
	"country=romania",
	"city=timisoara",
	"street=Strada Lunga 1",
}

// useWorkspace clears per-command flags but keeps config and session.
func useWorkspace() {
	cfg, session := configPath, sessionID
	resetFlags()
	configPath, sessionID = cfg, session
}

func TestSubmitThenShow(t *testing.T) {
	setupWorkspace(t)

	submitSets = personalInfoSets
	out, err := run(t, runSubmit, "", "personalInfo")
	require.NoError(t, err)
	assert.Contains(t, out, "personalInfo saved, next: Additional info (/apply/additional-info)")

	useWorkspace()
	showValidate = true
	out, err = run(t, runShow, "", "personal-info")
	require.NoError(t, err)

	var rec map[string]interface{}
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&rec))
	assert.Equal(t, "+40712345678", rec["phone"])
	assert.Equal(t, "1994-05-01", rec["dateOfBirth"])
	assert.Equal(t, "female", rec["gender"])
}

func TestSubmit_InvalidFieldsAreReported(t *testing.T) {
	setupWorkspace(t)

	submitSets = append(append([]string{}, personalInfoSets...), "email=not-an-email")
	out, err := run(t, runSubmit, "", "personalInfo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 field(s) invalid")
	assert.Contains(t, out, "email: Invalid email")
	assert.NotContains(t, out, "saved")
}

func TestSubmit_WidgetRejectsUnknownOption(t *testing.T) {
	setupWorkspace(t)

	submitSets = []string{"country=atlantis"}
	_, err := run(t, runSubmit, "", "personalInfo")
	assert.Error(t, err)
}

func TestSubmit_ListElementNeedsAdd(t *testing.T) {
	setupWorkspace(t)

	submitSets = []string{
		"employmentStatus=employed",
		"reasonLeavingPreviousJob=smallSalary",
		"education=college",
		"previousEmployers.0.employerName=A",
	}
	_, err := run(t, runSubmit, "", "historyInfo")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeListIndexOutOfRange))

	useWorkspace()
	out, err := run(t, runShow, "", "historyInfo")
	require.NoError(t, err)
	assert.NotContains(t, out, "employerName")
}

func TestSubmit_HistoryListsAndReset(t *testing.T) {
	setupWorkspace(t)

	submitAdds = []string{"previousEmployers"}
	submitSets = []string{
		"employmentStatus=employed",
		"reasonLeavingPreviousJob=other",
		"otherReasonForLeavingPreviousJob=Relocation",
		"education=college",
		"previousEmployers.0.employerName=Acme",
		"previousEmployers.0.jobTitle=Engineer",
	}
	out, err := run(t, runSubmit, "", "historyInfo")
	require.NoError(t, err)
	assert.Contains(t, out, "historyInfo saved, next: Skills")

	useWorkspace()
	out, err = run(t, runShow, "", "historyInfo")
	require.NoError(t, err)
	assert.Contains(t, out, `"hasPreviousEmployers": true`)
	assert.Contains(t, out, `"employerName": "Acme"`)

	useWorkspace()
	submitRemoves = []string{"previousEmployers:0"}
	_, err = run(t, runSubmit, "", "historyInfo")
	require.NoError(t, err)

	useWorkspace()
	out, err = run(t, runShow, "", "historyInfo")
	require.NoError(t, err)
	assert.Contains(t, out, `"hasPreviousEmployers": false`)

	useWorkspace()
	out, err = run(t, runReset, "", "historyInfo")
	require.NoError(t, err)
	assert.Equal(t, "historyInfo reset\n", out)

	useWorkspace()
	out, err = run(t, runShow, "", "historyInfo")
	require.NoError(t, err)
	assert.Contains(t, out, `"employmentStatus": ""`)
}

func TestShow_StepWithoutForm(t *testing.T) {
	setupWorkspace(t)

	_, err := run(t, runShow, "", "review")
	assert.ErrorContains(t, err, "has no form")

	_, err = run(t, runShow, "", "nowhere")
	assert.True(t, errors.HasCode(err, errors.ErrCodeStepNotFound))
}

func TestReview(t *testing.T) {
	setupWorkspace(t)

	submitSets = personalInfoSets
	_, err := run(t, runSubmit, "", "personalInfo")
	require.NoError(t, err)

	useWorkspace()
	out, err := run(t, runReview, "")
	require.NoError(t, err)
	assert.Contains(t, out, "complete: false")
	assert.Contains(t, out, "historyInfo:")
	assert.Contains(t, out, "skills:")
	assert.NotContains(t, out, "personalInfo:\n")
}

func TestSessionsAreIsolated(t *testing.T) {
	setupWorkspace(t)

	submitSets = personalInfoSets
	_, err := run(t, runSubmit, "", "personalInfo")
	require.NoError(t, err)

	useWorkspace()
	sessionID = "someone-else"
	out, err := run(t, runShow, "", "personalInfo")
	require.NoError(t, err)
	assert.Contains(t, out, `"firstName": ""`)
}

func TestSchemaAndRegistry(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := run(t, runSchema, "", "skills")
	require.NoError(t, err)
	assert.Contains(t, out, `"$schema"`)
	assert.Contains(t, out, `"skillSets"`)

	_, err = run(t, runSchema, "", "review")
	assert.True(t, errors.HasCode(err, errors.ErrCodeStepNotFound))

	registryOut = filepath.Join(dir, "out", "registry.json")
	registryVer = "2.0.0"
	out, err = run(t, runRegistry, "")
	require.NoError(t, err)
	assert.Contains(t, out, "registry written to")

	reg, err := registry.LoadRegistry(registryOut)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", reg.Version)
	assert.Len(t, reg.Steps, len(steps.Catalog()))
}

func TestStepsAndNew(t *testing.T) {
	out, err := run(t, runSteps, "")
	require.NoError(t, err)
	assert.Equal(t, len(steps.Catalog()), strings.Count(out, "\n"))
	assert.Contains(t, out, "/apply/history")

	out, err = run(t, newCmd.RunE, "")
	require.NoError(t, err)
	_, err = uuid.Parse(strings.TrimSpace(out))
	assert.NoError(t, err)
}

func TestFill_WalksEveryStep(t *testing.T) {
	setupWorkspace(t)
	sessionID = ""

	script := strings.Join([]string{
		// personal info
		"Ana", "Popescu", "1994-05-01", "30", "female", "ana@example.com",
		"+40712345678", "romania", "oradea", "Strada Lunga 1",
		// additional info
		"",
		// history
		"unemployed", "false", "smallSalary", "college", "false",
		// skills
		"English,German", "Leadership", "3", "4", "5", "2", "1", "n",
	}, "\n") + "\n"

	out, err := run(t, runFill, script)
	require.NoError(t, err)
	assert.Contains(t, out, "session: ")
	assert.Contains(t, out, "== 5/5 Review ==")
	assert.Contains(t, out, "application complete")
	assert.Empty(t, sessionID, "the generated session stays local to fill")

	generated := strings.TrimSpace(strings.SplitN(strings.SplitN(out, "session: ", 2)[1], "\n", 2)[0])
	require.NotEmpty(t, generated)

	useWorkspace()
	sessionID = ""
	out, err = run(t, runShow, "", "personalInfo")
	require.NoError(t, err)
	assert.NotContains(t, out, "Popescu")

	useWorkspace()
	sessionID = generated
	out, err = run(t, runShow, "", "personalInfo")
	require.NoError(t, err)
	assert.Contains(t, out, "Popescu")
}

func TestFill_RepromptsInvalidStepAndStopsAtEOF(t *testing.T) {
	setupWorkspace(t)

	script := strings.Join([]string{
		"Ana", "Popescu", "1994-05-01", "30", "female", "not-an-email",
		"+40712345678", "romania", "oradea", "Strada Lunga 1",
	}, "\n") + "\n"

	out, err := run(t, runFill, script)
	assert.Error(t, err)
	assert.Contains(t, out, "please fix:")
	assert.Contains(t, out, "email: Invalid email")
}

func TestParseRemoveAndInputFor(t *testing.T) {
	list, index, err := parseRemove("previousEmployers:2")
	require.NoError(t, err)
	assert.Equal(t, "previousEmployers", list)
	assert.Equal(t, 2, index)

	_, _, err = parseRemove("previousEmployers")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFieldPath))
	_, _, err = parseRemove("previousEmployers:x")
	assert.Error(t, err)

	in, ok := inputFor(steps.History(), "educationalInstitutions.1.graduatedDate")
	require.True(t, ok)
	assert.Equal(t, steps.InputDate, in.Kind)
	assert.Equal(t, "educationalInstitutions.1.graduatedDate", in.Path)

	in, ok = inputFor(steps.History(), "hasPreviousEmployers")
	require.True(t, ok)
	assert.Equal(t, steps.InputToggle, in.Kind)

	_, ok = inputFor(steps.History(), "nothing")
	assert.False(t, ok)

	assert.Equal(t, []string{"English", "German"}, splitValues(" English, German,,English"))
	assert.Equal(t, "a,b", display([]interface{}{"a", "b"}))
	assert.Equal(t, "true", display(true))
}
