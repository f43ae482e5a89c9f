package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/internal/store"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// env is an isolated config directory and data file for one test.
type env struct {
	t         *testing.T
	configDir string
	dataFile  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("ADDRESSBOOK_BACKEND", "")
	t.Setenv("ADDRESSBOOK_OUTPUT", "")
	t.Setenv("ADDRESSBOOK_DATA_FILE", "")
	dir := t.TempDir()
	return &env{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataFile:  filepath.Join(dir, "book.jsonl"),
	}
}

// run executes the CLI with the env's directories and returns stdout.
func (e *env) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-file", e.dataFile}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return out.String(), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err)
	return out
}

func (e *env) book() *types.AddressBook {
	e.t.Helper()
	book, err := store.JSONL{}.Load(e.dataFile)
	require.NoError(e.t, err)
	return book
}

func TestAddAndList(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("add", "Olena", "0501234567")
	assert.Equal(t, "Record added: Contact name: Olena, phones: 0501234567\n", out)

	e.mustRun("add", "Ivan", "0931112233", "0671112233")

	out = e.mustRun("list")
	assert.Equal(t, "Contact name: Olena, phones: 0501234567\n"+
		"Contact name: Ivan, phones: 0931112233,0671112233\n", out)

	assert.Equal(t, 2, e.book().Len())
}

func TestListEmpty(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "No contacts.\n", e.mustRun("list"))

	_, err := os.Stat(e.dataFile)
	assert.True(t, os.IsNotExist(err), "listing does not create the data file")
}

func TestAddInvalidPhoneStoresNothing(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")

	_, err := e.run("", "add", "Ivan", "0931112233", "050123")
	require.ErrorIs(t, err, types.ErrInvalidPhone)
	assert.Equal(t, exitUserError, exitCode(err))

	book := e.book()
	assert.Equal(t, 1, book.Len())
	_, ok := book.Find("Ivan")
	assert.False(t, ok)
}

func TestAddEmptyName(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("", "add", "  ", "0501234567")
	require.ErrorIs(t, err, types.ErrInvalidName)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestAddOverwritesExistingName(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Ivan", "0931112233")
	e.mustRun("add", "Ivan", "0671112233")

	book := e.book()
	require.Equal(t, 1, book.Len())
	r, ok := book.Find("Ivan")
	require.True(t, ok)
	assert.Equal(t, "Contact name: Ivan, phones: 0671112233", r.String())
}

func TestPhoneCommands(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")

	out := e.mustRun("add-phone", "Olena", "0671112233")
	assert.Equal(t, "Record updated: Contact name: Olena, phones: 0501234567,0671112233\n", out)

	out = e.mustRun("edit", "Olena", "0501234567", "0991234567")
	assert.Equal(t, "Record updated: Contact name: Olena, phones: 0991234567,0671112233\n", out)

	_, err := e.run("", "edit", "Olena", "0671112233", "12")
	require.ErrorIs(t, err, types.ErrInvalidPhone)

	_, err = e.run("", "edit", "Olena", "0000000000", "0991234567")
	require.ErrorIs(t, err, types.ErrNotFound)

	out = e.mustRun("remove-phone", "Olena", "0991234567")
	assert.Equal(t, "Record updated: Contact name: Olena, phones: 0671112233\n", out)

	_, err = e.run("", "remove-phone", "Olena", "0991234567")
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = e.run("", "add-phone", "Petro", "0991234567")
	require.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, "Contact name: Olena, phones: 0671112233", e.book().String())
}

func TestPhoneArgumentsAreTrimmed(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Ivan", " 0931112233 ")

	out := e.mustRun("edit", "Ivan", " 0931112233", "0671112233 ")
	assert.Equal(t, "Record updated: Contact name: Ivan, phones: 0671112233\n", out)

	e.mustRun("remove-phone", "Ivan", "\t0671112233 ")
	r, ok := e.book().Find("Ivan")
	require.True(t, ok)
	assert.Empty(t, r.Phones())
}

func TestDeleteAndFind(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")
	e.mustRun("add", "Ivan", "0931112233")

	out := e.mustRun("find", "Ivan")
	assert.Equal(t, "Contact name: Ivan, phones: 0931112233\n", out)

	out = e.mustRun("delete", "Ivan")
	assert.Equal(t, "Record deleted for Ivan\n", out)

	_, err := e.run("", "find", "Ivan")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run("", "delete", "Ivan")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestCorruptDataFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.dataFile, []byte("not an address book\n"), 0o644))

	_, err := e.run("", "list")
	require.ErrorIs(t, err, types.ErrCorruptData)
	assert.Equal(t, exitSysError, exitCode(err))

	_, err = e.run("", "add", "Olena", "0501234567")
	require.ErrorIs(t, err, types.ErrCorruptData)

	data, err := os.ReadFile(e.dataFile)
	require.NoError(t, err)
	assert.Equal(t, "not an address book\n", string(data), "corrupt file is not overwritten")
}

func TestSQLiteBackend(t *testing.T) {
	e := newEnv(t)
	e.dataFile = filepath.Join(t.TempDir(), "book.db")

	e.mustRun("--backend", "sqlite", "add", "Olena", "0501234567")
	e.mustRun("--backend", "sqlite", "add-phone", "Olena", "0671112233")

	out := e.mustRun("--backend", "sqlite", "list")
	assert.Equal(t, "Contact name: Olena, phones: 0501234567,0671112233\n", out)

	book, err := store.SQLite{}.Load(e.dataFile)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
}

func TestJSONOutput(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")

	out := e.mustRun("--output", "json", "list")
	assert.JSONEq(t, `[{"name":"Olena","phones":["0501234567"]}]`, out)

	t.Setenv("ADDRESSBOOK_OUTPUT", "json")
	out = e.mustRun("find", "Olena")
	assert.JSONEq(t, `{"name":"Olena","phones":["0501234567"]}`, out)
}

func TestLogOutput(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")

	out := e.mustRun("--output", "log", "find", "Olena")
	assert.Contains(t, out, `"msg":"record"`)
	assert.Contains(t, out, `"name":"Olena"`)
	assert.Contains(t, out, `"phones":["0501234567"]`)
}

func TestUnknownOutputIsConfigError(t *testing.T) {
	e := newEnv(t)
	_, err := e.run("", "--output", "xml", "list")
	require.ErrorIs(t, err, types.ErrOutputUnknown)
	assert.Equal(t, exitSysError, exitCode(err))
}

func TestInitWritesConfig(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("init")
	assert.Contains(t, out, "Configuration written to "+e.configDir)
	assert.Contains(t, out, "Address book initialized at "+e.dataFile)

	data, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: jsonl")
	assert.Contains(t, string(data), "data_file: "+e.dataFile)
	assert.Equal(t, 0, e.book().Len())

	out = e.mustRun("init")
	assert.Equal(t, "Address book already exists at "+e.dataFile+"\n", out)
}

func TestInitLeavesDataFileToBackendDefault(t *testing.T) {
	e := newEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	run := func(args ...string) error {
		t.Helper()
		var out bytes.Buffer
		root := NewRootCmd()
		root.SetArgs(append([]string{"--config-dir", e.configDir}, args...))
		root.SetOut(&out)
		root.SetErr(&out)
		return root.Execute()
	}

	require.NoError(t, run("init"))
	data, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data_file")

	require.NoError(t, run("--backend", "sqlite", "add", "Olena", "0501234567"))
	db, err := store.SQLite{}.Load(filepath.Join(dir, paths.DefaultSQLiteFile))
	require.NoError(t, err)
	assert.Equal(t, 1, db.Len())

	jsonl, err := store.JSONL{}.Load(filepath.Join(dir, paths.DefaultJSONLFile))
	require.NoError(t, err)
	assert.Equal(t, 0, jsonl.Len())

	envFile := filepath.Join(t.TempDir(), "env.jsonl")
	t.Setenv("ADDRESSBOOK_DATA_FILE", envFile)
	require.NoError(t, run("add", "Ivan", "0931112233"))
	book, err := store.JSONL{}.Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
}

func TestConfigFileSelectsBackendAndDataFile(t *testing.T) {
	e := newEnv(t)
	dbPath := filepath.Join(t.TempDir(), "from-config.db")
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	cfg := fmt.Sprintf("backend: sqlite\ndata_file: %s\noutput: text\n", dbPath)
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(cfg), 0o644))

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"--config-dir", e.configDir, "add", "Olena", "0501234567"})
	root.SetOut(&out)
	require.NoError(t, root.Execute())

	book, err := store.SQLite{}.Load(dbPath)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
}

func TestGenerate(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun("generate", "--count", "3", "--seed", "11")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Generated and added record: Contact name: "), line)
	}

	book := e.book()
	assert.GreaterOrEqual(t, book.Len(), 1)
	for r := range book.All() {
		require.Len(t, r.Phones(), 1)
		assert.True(t, types.ValidatePhone(r.Phones()[0].String()))
	}

	_, err := e.run("", "generate", "--count", "0")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun("version")
	assert.Equal(t, "addressbook v"+Version+"\n", out)
}

func TestShellSession(t *testing.T) {
	e := newEnv(t)
	script := strings.Join([]string{
		"add", "Olena", "0501234567",
		"add", "Ivan", "050123",
		"ADD", "Ivan", "0931112233",
		"edit", "Ivan", "0931112233", "0671112233",
		"edit", "Petro", "0931112233", "0671112233",
		"show",
		"find", "Petro",
		"bogus",
		"",
		"delete", "Olena",
		"save",
		"exit",
		"add", "Never", "0501234567",
	}, "\n") + "\n"

	out, err := e.run(script, "shell")
	require.NoError(t, err)

	want := []string{
		"Record added: Contact name: Olena, phones: 0501234567",
		`"050123": phone number must contain exactly 10 digits`,
		"Record added: Contact name: Ivan, phones: 0931112233",
		"Record updated: Contact name: Ivan, phones: 0671112233",
		`record "Petro": not found`,
		"Contact name: Olena, phones: 0501234567",
		"Contact name: Ivan, phones: 0671112233",
		`record "Petro": not found`,
		"Unknown command",
		"Record deleted for Olena",
		"Address book saved",
		"Saving address book and exiting",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", out)

	book := e.book()
	assert.Equal(t, "Contact name: Ivan, phones: 0671112233", book.String())
}

func TestShellSavesAtEndOfInput(t *testing.T) {
	e := newEnv(t)
	e.mustRun("add", "Olena", "0501234567")

	out, err := e.run("generate\n", "shell", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated and added record: ")
	assert.True(t, strings.HasSuffix(out, "Saving address book and exiting\n"))

	assert.Equal(t, 2, e.book().Len())
}

func TestShellInputEndsMidCommand(t *testing.T) {
	e := newEnv(t)
	out, err := e.run("add\nOlena\n", "shell")
	require.NoError(t, err)
	assert.Equal(t, "Saving address book and exiting\n", out)
	assert.Equal(t, 0, e.book().Len())
}

func TestShellAcceptsLongLines(t *testing.T) {
	e := newEnv(t)
	script := "add\nOlena\n0501234567\n" + strings.Repeat("x", 70*1024) + "\nexit\n"

	out, err := e.run(script, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Unknown command\n")
	assert.Equal(t, 1, e.book().Len())
}

func TestShellSavesBeforeReportingReadError(t *testing.T) {
	e := newEnv(t)
	script := "add\nOlena\n0501234567\n" + strings.Repeat("x", maxInputLine+1) + "\nexit\n"

	_, err := e.run(script, "shell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
	assert.Equal(t, exitSysError, exitCode(err))

	_, ok := e.book().Find("Olena")
	assert.True(t, ok, "edits made before the read error are saved")
}

func TestShellCorruptFileDoesNotStart(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.dataFile, []byte("{"), 0o644))

	_, err := e.run("exit\n", "shell")
	require.ErrorIs(t, err, types.ErrCorruptData)
}

func TestReportErrorUsesOutputFormat(t *testing.T) {
	a := newApp()
	var buf bytes.Buffer
	a.reportError(&buf, errors.New("no config"))
	assert.Equal(t, "addressbook: no config\n", buf.String())

	buf.Reset()
	a.config.Output = types.OutputText
	a.reportError(&buf, fmt.Errorf("record %q: %w", "Petro", types.ErrNotFound))
	assert.Equal(t, "addressbook: record \"Petro\": not found\n", buf.String())

	buf.Reset()
	a.config.Output = types.OutputJSON
	a.reportError(&buf, fmt.Errorf("record %q: %w", "Petro", types.ErrNotFound))
	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, `addressbook: record "Petro": not found`, got["message"])
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrInvalidPhone))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("record: %w", types.ErrNotFound)))
	assert.Equal(t, exitUserError, exitCode(errors.New("accepts 1 arg(s), received 0")))
	assert.Equal(t, exitSysError, exitCode(systemErr(errors.New("disk full"))))
	assert.Equal(t, exitSysError, exitCode(fmt.Errorf("load: %w", types.ErrCorruptData)))
}
