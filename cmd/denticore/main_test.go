package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"denticore/pkg/domain"
)

func writePlanFile(t *testing.T, plan domain.Plan) string {
	t.Helper()
	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, data, 0o640); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DENTICORE_CATALOG_DRIVER", "memory")
	t.Setenv("DENTICORE_ARCHIVE_DRIVER", "")
	t.Setenv("DENTICORE_RULE_TABLES", "")
	t.Setenv("DENTICORE_LOG_LEVEL", "error")
}

func TestCheckCommandCorrectsPlan(t *testing.T) {
	setTestEnv(t)
	path := writePlanFile(t, domain.Plan{Layers: []domain.Layer{
		{Order: 1, Name: "Dentina", ResinBrand: "3M ESPE - Filtek Z350 XT", Shade: "BL1"},
		{Order: 2, Name: "Corpo", ResinBrand: "3M ESPE - Filtek Z350 XT", Shade: "A2"},
		{Order: 3, Name: "Esmalte Vestibular Final", ResinBrand: "FGM - Vittra APS", Shade: "WT"},
	}})

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"check", "--plan", path, "--tooth", "11", "--cavity-class", "Classe IV"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v\nstderr: %s", err, errOut.String())
	}

	var corrected domain.Plan
	if err := json.Unmarshal(out.Bytes(), &corrected); err != nil {
		t.Fatalf("decode output: %v\noutput: %s", err, out.String())
	}
	if len(corrected.Layers) != 4 {
		t.Fatalf("expected incisal effects injection, got %d layers", len(corrected.Layers))
	}
	// Empty memory catalog: the prohibited dentin shade takes the fallback.
	if corrected.Layers[0].Shade != "WB" {
		t.Errorf("dentin shade = %s, want WB", corrected.Layers[0].Shade)
	}
	if corrected.Layers[3].Shade != "CT" {
		t.Errorf("final enamel shade = %s, want CT", corrected.Layers[3].Shade)
	}
	if len(corrected.Alerts) == 0 {
		t.Errorf("expected correction alerts in output")
	}
}

func TestCheckCommandRejectsMalformedPlan(t *testing.T) {
	setTestEnv(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o640); err != nil {
		t.Fatalf("write plan: %v", err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"check", "--plan", path})

	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "decode plan") {
		t.Errorf("execute error = %v, want decode failure", err)
	}
}

func TestCatalogImportAndLookupCommands(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DENTICORE_CATALOG_DRIVER", "sqlite")
	t.Setenv("DENTICORE_CATALOG_SQLITE_PATH", filepath.Join(t.TempDir(), "catalog.db"))

	catalogPath := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[{"shade": "WB", "type": "body", "productLine": "3M ESPE - Filtek Z350 XT"}]`
	if err := os.WriteFile(catalogPath, []byte(doc), 0o640); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"catalog", "import", catalogPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), "imported 1 rows") {
		t.Errorf("unexpected import output: %s", out.String())
	}

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"catalog", "lookup", "3M ESPE - Filtek Z350 XT"})
	if err := root.Execute(); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var rows []domain.CatalogShade
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("decode lookup output: %v\noutput: %s", err, out.String())
	}
	if len(rows) != 1 || rows[0].Shade != "WB" || rows[0].Type != domain.ShadeTypeBody {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestReadPlanFromFile(t *testing.T) {
	path := writePlanFile(t, domain.Plan{Layers: []domain.Layer{{Order: 1, Name: "Dentina", Shade: "A2"}}})
	plan, err := readPlan(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(plan.Layers) != 1 || plan.Layers[0].Shade != "A2" {
		t.Errorf("unexpected plan: %+v", plan)
	}

	if _, err := readPlan(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("missing file accepted")
	}
}
