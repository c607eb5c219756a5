package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksCommand_ShowsSelection(t *testing.T) {
	server := fakePortal(t, "FTS Shravan", "Tender Notice", "FTS Poush")

	stdout, _, err := executeCommand(t, "links", "--index-url", server.URL+"/index")
	require.NoError(t, err)

	assert.Contains(t, stdout, "REPORT CANDIDATES")
	assert.Contains(t, stdout, "Selected: FTS Poush (POUSH)")
	assert.Contains(t, stdout, server.URL+"/files/2.xlsx")
}

func TestLinksCommand_JSON(t *testing.T) {
	server := fakePortal(t, "FTS Shravan", "FTS Bhadra")

	stdout, _, err := executeCommand(t, "links", "--index-url", server.URL+"/index", "--json", "--mode", "positional")
	require.NoError(t, err)

	var report linksReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Len(t, report.Links, 2)
	assert.Len(t, report.Candidates, 2)
	require.NotNil(t, report.Selected)
	assert.Equal(t, "FTS Bhadra", report.Selected.Title)
}

func TestLinksCommand_LegacyMonth(t *testing.T) {
	server := fakePortal(t, "FTS Baisakh", "FTS Jestha", "FTS Ashad")

	stdout, _, err := executeCommand(t, "links", "--index-url", server.URL+"/index", "--legacy-month")
	require.NoError(t, err)
	assert.Equal(t, "Jestha", strings.TrimSpace(stdout))
}

func TestLinksCommand_LegacyMonthTooFew(t *testing.T) {
	server := fakePortal(t, "FTS Kartik")

	_, _, err := executeCommand(t, "links", "--index-url", server.URL+"/index", "--legacy-month")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLinksCommand_UnreachableIndex(t *testing.T) {
	_, _, err := executeCommand(t, "links", "--index-url", "http://127.0.0.1:1/index")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch index")
}
