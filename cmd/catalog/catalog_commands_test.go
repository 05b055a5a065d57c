package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"catalog/internal/catalog"
	"catalog/internal/testsupport"
)

func TestAddThenListKeepsTimeOrder(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"add", "--name", "Долма", "--cuisine", "Кавказская", "--time", "90"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Record added.")

	if _, _, err := runCLI(t, []string{"add", "--name", "Паста", "--cuisine", "Итальянская", "--time", "20"}, env.configPath); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, _, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	pasta := strings.Index(out, "Паста")
	dolma := strings.Index(out, "Долма")
	if pasta < 0 || dolma < 0 || pasta > dolma {
		t.Fatalf("expected Паста before Долма:\n%s", out)
	}
	requireContains(t, out, "Cuisine")

	loaded := testsupport.LoadCatalog(t, env.cfg)
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 saved records, got %d", loaded.Len())
	}
}

func TestAddStaffWithKindFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	staffFile := filepath.Join(env.baseDir, "staff.xml")

	_, _, err := runCLI(t, []string{"--kind", "staff", "--file", staffFile, "add", "--name", "Иванов И.И.", "--post", "Инженер", "--year", "2015"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	content := testsupport.ReadFile(t, staffFile)
	requireContains(t, content, "<workers>")
	requireContains(t, content, "<post>Инженер</post>")
	requireContains(t, content, "<year>2015</year>")
	testsupport.RequireMissing(t, env.cfg.Catalog.File)
}

func TestAddRejectsInvalidArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	cases := map[string][]string{
		"missing value":   {"add", "--name", "Паста", "--cuisine", "Итальянская"},
		"non-integer":     {"add", "--name", "Паста", "--cuisine", "Итальянская", "--time", "twenty"},
		"blank name":      {"add", "--name", "  ", "--cuisine", "Итальянская", "--time", "20"},
		"positional args": {"add", "extra", "--name", "Паста", "--cuisine", "Итальянская", "--time", "20"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			out, _, err := runCLI(t, args, env.configPath)
			if err == nil {
				t.Fatal("expected error")
			}
			requireContains(t, out, "Usage:")
			testsupport.RequireMissing(t, env.cfg.Catalog.File)
		})
	}
}

func TestSelectRecipesIgnoresCase(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedCatalog(t, env.cfg,
		catalog.MustRecord("Суши", "Японская", 40),
		catalog.MustRecord("Рамен", "Японская", 60),
		catalog.MustRecord("Борщ", "Украинская", 90),
	)

	out, _, err := runCLI(t, []string{"select", "--cuisine", "японская"}, env.configPath)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	requireContains(t, out, "Суши")
	requireContains(t, out, "Рамен")
	requireNotContains(t, out, "Борщ")

	out, _, err = runCLI(t, []string{"select", "--cuisine", "Французская"}, env.configPath)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	requireContains(t, out, "No matching records.")

	if loaded := testsupport.LoadCatalog(t, env.cfg); loaded.Len() != 3 {
		t.Fatalf("select must not modify the data file, got %d records", loaded.Len())
	}
}

func TestSelectStaffByPeriod(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithKind("staff"))
	year := time.Now().Year()
	testsupport.SeedCatalog(t, env.cfg,
		catalog.MustRecord("Ветеран", "Мастер", year-12),
		catalog.MustRecord("Новичок", "Стажер", year-1),
	)

	out, _, err := runCLI(t, []string{"select", "--period", "5"}, env.configPath)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	requireContains(t, out, "Ветеран")
	requireNotContains(t, out, "Новичок")
	requireContains(t, out, "Full name")

	out, _, err = runCLI(t, []string{"select", "--period", "five"}, env.configPath)
	if !errors.Is(err, catalog.ErrInvalidCriterion) {
		t.Fatalf("expected ErrInvalidCriterion, got %v", err)
	}
	requireContains(t, out, "Usage:")
}

func TestSelectJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedCatalog(t, env.cfg,
		catalog.MustRecord("Паста", "Итальянская", 20),
		catalog.MustRecord("Борщ", "Украинская", 60),
	)

	out, _, err := runCLI(t, []string{"select", "--cuisine", "ИТАЛЬЯНСКАЯ", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	var payload []map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(payload) != 1 || payload[0]["name"] != "Паста" || payload[0]["time"] != float64(20) {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestListEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, catalog.EmptyMessage)
	requireContains(t, out, "Name")
	requireContains(t, out, "+-")

	out, _, err = runCLI(t, []string{"list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty json array, got %q", out)
	}
}

func TestListMalformedDataFile(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.cfg.Catalog.File, `[{"name": "Паста", "cuisine": "Итальянская"}]`)

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if !errors.Is(err, catalog.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	requireNotContains(t, out, "Usage:")
}

func TestLoadReportsSkippedEntries(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithKind("staff"))
	path := filepath.Join(env.baseDir, "import.xml")
	testsupport.WriteFile(t, path, `<?xml version="1.0" encoding="UTF-8"?>
<workers>
  <worker><name>Иванов И.И.</name><post>Менеджер</post><year>2016</year></worker>
  <worker><name>Без года</name><post>Водитель</post></worker>
</workers>
`)

	out, stderr, err := runCLI(t, []string{"load", path}, env.configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Loaded 1 records from %s", path))
	requireContains(t, out, "Skipped 1 incomplete entries")
	requireContains(t, out, "Иванов И.И.")
	requireContains(t, stderr, "catalog_load_skipped")
}

func TestAddRefusesFileWithTrailingData(t *testing.T) {
	env := setupCLITestEnv(t)
	original := "[{\"name\": \"a\", \"cuisine\": \"b\", \"time\": 1}]\n[{\"name\": \"lost\", \"cuisine\": \"b\", \"time\": 2}]\n"
	testsupport.WriteFile(t, env.cfg.Catalog.File, original)

	_, stderr, err := runCLI(t, []string{"add", "--name", "Паста", "--cuisine", "Итальянская", "--time", "20"}, env.configPath)
	if !errors.Is(err, catalog.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	requireContains(t, stderr, "catalog_load_failed")
	if got := testsupport.ReadFile(t, env.cfg.Catalog.File); got != original {
		t.Fatalf("data file was rewritten:\n%s", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"load"}, env.configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	requireContains(t, out, "No data file at "+env.cfg.Catalog.File)
	requireContains(t, out, catalog.EmptyMessage)
	testsupport.RequireMissing(t, env.cfg.Catalog.File)
}

func TestSaveConvertsBetweenFormats(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithKind("staff"))
	testsupport.SeedCatalog(t, env.cfg,
		catalog.MustRecord("Иванов И.И.", "Менеджер", 2016),
		catalog.MustRecord("Петров П.П.", "Инженер", 2021),
	)

	jsonPath := filepath.Join(env.baseDir, "staff.json")
	out, _, err := runCLI(t, []string{"save", jsonPath}, env.configPath)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Saved 2 records to %s", jsonPath))
	content := testsupport.ReadFile(t, jsonPath)
	requireContains(t, content, `"post": "Менеджер"`)
	requireContains(t, content, `"year": 2016`)

	dbPath := filepath.Join(env.baseDir, "staff.db")
	if _, _, err := runCLI(t, []string{"save", dbPath}, env.configPath); err != nil {
		t.Fatalf("save sqlite: %v", err)
	}
	out, _, err = runCLI(t, []string{"load", dbPath}, env.configPath)
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	requireContains(t, out, "Loaded 2 records")
	requireContains(t, out, "Петров П.П.")
}

func TestSaveInPlace(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFormat("yaml"))
	testsupport.SeedCatalog(t, env.cfg, catalog.MustRecord("Плов", "Узбекская", 90))

	out, _, err := runCLI(t, []string{"save"}, env.configPath)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	requireContains(t, out, "Saved 1 records to "+env.cfg.Catalog.File)
	requireContains(t, testsupport.ReadFile(t, env.cfg.Catalog.File), "cuisine: Узбекская")
}

func TestVerboseLogsToStderr(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"-v", "add", "--name", "Паста", "--cuisine", "Итальянская", "--time", "20"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, stderr, "record added")
	requireContains(t, stderr, "catalog: catalog saved")
	requireNotContains(t, out, "record added")
}

func TestJSONLogsCarrySessionID(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	cfg := testsupport.NewConfig(t)
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"
	configPath := testsupport.WriteConfigFile(t, cfg)

	_, stderr, err := runCLI(t, []string{"list"}, configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var sessions []string
	for _, line := range lines {
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		id, _ := payload["session_id"].(string)
		sessions = append(sessions, id)
	}
	if len(sessions) == 0 || sessions[0] == "" {
		t.Fatalf("expected session ids in %q", stderr)
	}
	for _, id := range sessions {
		if id != sessions[0] {
			t.Fatalf("expected one session id per invocation, got %v", sessions)
		}
	}
}

func TestKindsCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"kinds"}, "")
	if err != nil {
		t.Fatalf("kinds: %v", err)
	}
	requireContains(t, out, "recipes")
	requireContains(t, out, "staff.xml")
	requireContains(t, out, "name, post, year")
	if !strings.HasPrefix(out, "+-") {
		t.Fatalf("expected the catalog table style, got %q", out)
	}
}

func TestUnknownKindFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--kind", "books", "list"}, env.configPath); !errors.Is(err, catalog.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
