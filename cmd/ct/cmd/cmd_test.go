package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tormodhaugland/ct/internal/template"
)

func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// cobra keeps flag values between executions
	cfgFile, storeFile, jsonOut, debug = "", "", false, false
	createID, createTitle, createDescription, createProtocol = "", "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--store", dbPath))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestListShowsSeed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := runCLI(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0001")
	assert.Contains(t, out, "Wordpress - Twenty Twenty")
	assert.Contains(t, out, "http")
}

func TestCreateThenListJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := runCLI(t, dbPath, "create", "--id", "0002", "--title", "My Check", "--description", "d", "--protocol", "tcp")
	require.NoError(t, err)
	assert.Contains(t, out, "Created template My Check (0002)")

	out, err = runCLI(t, dbPath, "list", "--json")
	require.NoError(t, err)

	var got []template.Template
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "0001", got[0].ID)
	assert.Equal(t, "0002", got[1].ID)
}

func TestCreateDuplicateFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := runCLI(t, dbPath, "create", "--id", "0001", "--title", "Dup", "--protocol", "http")
	var dupErr *template.DuplicateIDError
	require.ErrorAs(t, err, &dupErr)

	out, err := runCLI(t, dbPath, "list", "--json")
	require.NoError(t, err)
	var got []template.Template
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)
}

func TestCreateAssignsUUIDWhenIDOmitted(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := runCLI(t, dbPath, "create", "--title", "Ping", "--protocol", "icmp", "--json")
	require.NoError(t, err)

	var created template.Template
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Len(t, created.ID, 36)
	assert.Equal(t, "Ping", created.Title)
}

func TestCreateRejectsUnknownProtocol(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := runCLI(t, dbPath, "create", "--id", "x", "--title", "t", "--protocol", "gopher")
	var protoErr *template.UnknownProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestShowExactAndFuzzy(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := runCLI(t, dbPath, "show", "0001")
	require.NoError(t, err)
	assert.Contains(t, out, "Template: Wordpress - Twenty Twenty")

	out, err = runCLI(t, dbPath, "show", "twenty")
	require.NoError(t, err)
	assert.Contains(t, out, "ID: 0001")
}

func TestShowNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := runCLI(t, dbPath, "show", "zzzzzz")
	var nfErr *template.TemplateNotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestProtocols(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "t.db"), "protocols")
	require.NoError(t, err)
	assert.Contains(t, out, "http\n")
	assert.Contains(t, out, "tcp\n")
}

func TestDoctorOnFreshStore(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "t.db"), "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "are valid")
}

func TestDebugOnFirstRunCreatesLogDirectory(t *testing.T) {
	dataHome := filepath.Join(t.TempDir(), "fresh")
	t.Setenv("XDG_DATA_HOME", dataHome)

	out, err := runCLI(t, filepath.Join(t.TempDir(), "t.db"), "list", "--debug")
	require.NoError(t, err)
	assert.Contains(t, out, "0001")

	data, err := os.ReadFile(filepath.Join(dataHome, "ct", "ct.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[config] config loaded")
}

func TestShowUnknownIDDoesNotMatchOtherIDs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := runCLI(t, dbPath, "create", "--id", "0002", "--title", "Windows 2003", "--protocol", "rdp")
	require.NoError(t, err)

	_, err = runCLI(t, dbPath, "show", "0003")
	var nfErr *template.TemplateNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "0003", nfErr.ID)
}

func TestShowTitleMatchIsAnnounced(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := runCLI(t, dbPath, "show", "wordpress")
	require.NoError(t, err)
	assert.Contains(t, out, `No template with id "wordpress"; best title match: 0001`)
	assert.Contains(t, out, "ID: 0001")

	out, err = runCLI(t, dbPath, "show", "0001")
	require.NoError(t, err)
	assert.NotContains(t, out, "best title match")
}

func TestTruncateDescriptionKeepsRunesIntact(t *testing.T) {
	short := "Checks the index page"
	assert.Equal(t, short, truncateDescription(short))

	long := strings.Repeat("é", 60)
	got := truncateDescription(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, runewidth.StringWidth(got), maxDescriptionWidth)
}

func TestListTruncatesMultiByteDescription(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := runCLI(t, dbPath, "create", "--id", "0002", "--title", "Café", "--description", strings.Repeat("ü", 80), "--protocol", "http")
	require.NoError(t, err)

	out, err := runCLI(t, dbPath, "list")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "...")
}
