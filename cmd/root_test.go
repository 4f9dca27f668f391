package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/export"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/snapshot"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"collect", "enrich", "websites", "regions", "list", "clusters", "browse", "validate", "export"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "faithmap", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
}

func TestCollectCommand_Flags(t *testing.T) {
	for _, name := range []string{"sources", "regions", "regions-file", "charset", "keywords", "concurrency"} {
		assert.NotNil(t, collectCmd.Flags().Lookup(name), "collect should have --%s", name)
	}
}

func TestEnrichCommand_Flags(t *testing.T) {
	for _, name := range []string{"only-missing", "files", "no-browser", "plain-http"} {
		assert.NotNil(t, enrichCmd.Flags().Lookup(name), "enrich should have --%s", name)
	}
}

func TestListCommand_Flags(t *testing.T) {
	flag := listCmd.Flags().Lookup("page")
	require.NotNil(t, flag)
	assert.Equal(t, "1", flag.DefValue)
	for _, name := range []string{"type", "region", "query", "size", "id", "near", "limit"} {
		assert.NotNil(t, listCmd.Flags().Lookup(name), "list should have --%s", name)
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"kakao", "naver"}, splitAndTrim(" kakao, ,naver "))
	assert.Empty(t, splitAndTrim(""))
}

// seed writes a small snapshot and returns its directory.
func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := snapshot.NewStore(dir).Upsert(context.Background(), "kakao", []model.Facility{
		{ID: "c1", Name: "사랑의교회", Type: model.Church, Address: "서울 서초구", Region: "서울특별시 서초구", Lat: 37.49, Lng: 127.0, Website: "sarang.org", KakaoURL: "http://place.map.kakao.com/c1"},
		{ID: "t1", Name: "조계사", Type: model.Temple, Address: "서울 종로구", Region: "서울특별시 종로구", Lat: 37.57, Lng: 126.98},
		{ID: "c2", Name: "수영로교회", Type: model.Church, Address: "부산 해운대구", Region: "부산광역시 해운대구", Lat: 35.17, Lng: 129.13, Website: "http://cs.kakao.com/helps", Phone: "051-740-4500"},
	})
	require.NoError(t, err)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FAITHMAP_LOG_LEVEL", "error")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestList_FilterByType(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "list", "--data-dir", dir, "--type", "church", "--region=", "--query=", "--page", "1", "--size", "20", "--id=", "--near=")
	require.NoError(t, err)

	first := strings.Index(out, "사랑의교회")
	second := strings.Index(out, "수영로교회")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.NotContains(t, out, "조계사")
	assert.Contains(t, out, "page 1 of 1 (2 results)")
}

func TestList_PageBeyondRange(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "list", "--data-dir", dir, "--type", "all", "--region=", "--query=", "--page", "9", "--size", "20", "--id=", "--near=")
	require.NoError(t, err)
	assert.Contains(t, out, "page 9 of 1 (3 results)")
	assert.NotContains(t, out, "조계사")
}

func TestList_Detail(t *testing.T) {
	dir := seed(t)

	out, err := execute(t, "list", "--data-dir", dir, "--id", "c2", "--near=")
	require.NoError(t, err)
	assert.NotContains(t, out, "cs.kakao.com")
	assert.Contains(t, out, "tel:051-740-4500")
	assert.Contains(t, out, "https://map.naver.com/v5/search/")

	out, err = execute(t, "list", "--data-dir", dir, "--id", "c1")
	require.NoError(t, err)
	assert.Contains(t, out, "https://sarang.org")

	_, err = execute(t, "list", "--data-dir", dir, "--id", "nope")
	assert.Error(t, err)
}

func TestList_Near(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "list", "--data-dir", dir, "--type", "all", "--region=", "--query=", "--id=", "--near", "37.5, 127.0", "--limit", "2")
	require.NoError(t, err)

	first := strings.Index(out, "사랑의교회")
	second := strings.Index(out, "조계사")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.NotContains(t, out, "수영로교회")
	assert.NotContains(t, out, "page ")
	assert.Contains(t, out, "km")

	out, err = execute(t, "list", "--data-dir", dir, "--id", "c1", "--near", "37.5,127.0")
	require.NoError(t, err)
	assert.Contains(t, out, "distance: 1.1km")

	_, err = execute(t, "list", "--data-dir", dir, "--id=", "--near", "37.5")
	assert.Error(t, err)
	_, err = execute(t, "list", "--data-dir", dir, "--id=", "--near", "north,127")
	assert.Error(t, err)
}

func TestParseOrigin(t *testing.T) {
	o, err := parseOrigin("37.5665, 126.978")
	require.NoError(t, err)
	assert.InDelta(t, 37.5665, o.Lat, 1e-9)
	assert.InDelta(t, 126.978, o.Lng, 1e-9)
}

func TestClusters_Markers(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "clusters", "--data-dir", dir, "--type", "all", "--region=", "--query=", "--bbox", "37,126,38,128", "--zoom", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "2 visible, 2 markers")
}

func TestValidate_ReportsBlocklistedWebsite(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "validate", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "blocklisted website")
}

func TestExport_CSV(t *testing.T) {
	dir := seed(t)
	out, err := execute(t, "export", "--data-dir", dir, "--format", "csv", "--out=", "--type", "temple", "--region=", "--query=")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,type"))
	assert.Contains(t, lines[1], "조계사")
}

func TestExport_XLSXFile(t *testing.T) {
	dir := seed(t)
	path := filepath.Join(t.TempDir(), "facilities.xlsx")
	out, err := execute(t, "export", "--data-dir", dir, "--format", "xlsx", "--out", path, "--type", "all", "--region=", "--query=")
	require.NoError(t, err)
	assert.Contains(t, out, "3 facilities written to "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteExportFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := writeExportFile(path, export.CSV, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: create")
}

func TestWebsites_ApplyAndMissing(t *testing.T) {
	dir := seed(t)
	overrides := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(overrides, []byte("websites:\n  t1: https://www.jogyesa.kr\n"), 0o644))

	out, err := execute(t, "websites", "apply", "--data-dir", dir, "--file", overrides, "--only-empty=false")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 overrides applied")

	list, err := snapshot.NewStore(dir).Load(context.Background(), snapshot.AllFile)
	require.NoError(t, err)
	for _, f := range list {
		if f.ID == "t1" {
			assert.Equal(t, "https://www.jogyesa.kr", f.Website)
		}
	}

	out, err = execute(t, "websites", "missing", "--data-dir", dir, "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3 facilities have no website")
	assert.Contains(t, out, "c2")
}

func TestValidate_Clean(t *testing.T) {
	dir := t.TempDir()
	_, err := snapshot.NewStore(dir).Upsert(context.Background(), "kakao", []model.Facility{
		{ID: "k1", Name: "명동성당", Type: model.Catholic, Address: "서울 중구", Region: "서울특별시 중구", Lat: 37.563, Lng: 126.987},
	})
	require.NoError(t, err)

	out, err := execute(t, "validate", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot ok")
}
