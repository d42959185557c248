package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func sarifFixture(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/proj")
	fileID := fs.AddVirtual("/proj/src/demo.em", []byte("@inline\nstruct Point {}\n@repr(C)\nenum E { A }\n"))

	bag := diag.NewBag(10)
	first := diag.New(
		diag.SevError,
		diag.SemaAttrInlineTarget,
		source.Span{File: fileID, Start: 0, End: 7},
		"attribute should be applied to function or closure",
	)
	first = first.WithNote(source.Span{File: fileID, Start: 8, End: 23}, "not a function or closure")
	bag.Add(first)
	bag.Add(diag.New(
		diag.SevError,
		diag.SemaAttrInlineTarget,
		source.Span{File: fileID, Start: 8, End: 23},
		"attribute should be applied to function or closure",
	))
	bag.Add(diag.New(
		diag.SevWarning,
		diag.SemaAttrReprConflict,
		source.Span{File: fileID, Start: 24, End: 32},
		"conflicting representation hints",
	))
	return bag, fs
}

func TestSarifStructure(t *testing.T) {
	bag, fs := sarifFixture(t)

	var buf bytes.Buffer
	meta := SarifRunMeta{
		ToolName:       "ember",
		ToolVersion:    "0.1.0",
		InvocationArgs: []string{"ember", "check", "src"},
	}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v\n%s", err, buf.String())
	}

	if log.Version != "2.1.0" {
		t.Errorf("version = %q", log.Version)
	}
	if log.Schema != sarifSchema {
		t.Errorf("schema = %q", log.Schema)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(log.Runs))
	}

	run := log.Runs[0]
	if run.Tool.Driver.Name != "ember" || run.Tool.Driver.Version != "0.1.0" {
		t.Errorf("driver = %+v", run.Tool.Driver)
	}

	// Два разных кода -> два правила, без дублей
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("rules = %+v", run.Tool.Driver.Rules)
	}
	if run.Tool.Driver.Rules[0].ID != "SEM3001" || run.Tool.Driver.Rules[1].ID != "SEM3012" {
		t.Errorf("rule ids = %q %q", run.Tool.Driver.Rules[0].ID, run.Tool.Driver.Rules[1].ID)
	}
	if run.Tool.Driver.Rules[0].ShortDescription.Text == "" {
		t.Error("rule description must come from the code title")
	}

	if len(run.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(run.Results))
	}
	if run.Results[0].RuleIndex != 0 || run.Results[1].RuleIndex != 0 || run.Results[2].RuleIndex != 1 {
		t.Errorf("rule indices = %d %d %d",
			run.Results[0].RuleIndex, run.Results[1].RuleIndex, run.Results[2].RuleIndex)
	}
	if run.Results[0].Level != "error" || run.Results[2].Level != "warning" {
		t.Errorf("levels = %q %q", run.Results[0].Level, run.Results[2].Level)
	}

	loc := run.Results[0].Locations
	if len(loc) != 1 {
		t.Fatalf("locations = %+v", loc)
	}
	if loc[0].PhysicalLocation.ArtifactLocation.URI != "src/demo.em" {
		t.Errorf("uri = %q", loc[0].PhysicalLocation.ArtifactLocation.URI)
	}
	region := loc[0].PhysicalLocation.Region
	if region == nil || region.StartLine != 1 || region.StartColumn != 1 || region.EndColumn != 8 {
		t.Errorf("region = %+v", region)
	}

	related := run.Results[0].RelatedLocations
	if len(related) != 1 {
		t.Fatalf("relatedLocations = %+v", related)
	}
	if related[0].Message == nil || related[0].Message.Text != "not a function or closure" {
		t.Errorf("related message = %+v", related[0].Message)
	}
	if related[0].PhysicalLocation.Region.StartLine != 2 {
		t.Errorf("related region = %+v", related[0].PhysicalLocation.Region)
	}

	if len(run.Invocations) != 1 {
		t.Fatalf("invocations = %+v", run.Invocations)
	}
	if run.Invocations[0].ExecutionSuccessful {
		t.Error("run with errors must not be executionSuccessful")
	}
}

func TestSarifCleanRun(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("demo.em", []byte("@repr(u8, C)\nenum E { A }\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.SemaAttrReprConflict,
		source.Span{File: fileID, Start: 0, End: 12},
		"conflicting representation hints",
	))

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "ember", InvocationArgs: []string{"ember", "check"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v", err)
	}
	if !log.Runs[0].Invocations[0].ExecutionSuccessful {
		t.Error("warnings alone must leave executionSuccessful true")
	}
	if log.Runs[0].Results[0].Level != "warning" {
		t.Errorf("level = %q", log.Runs[0].Results[0].Level)
	}
}

func TestSarifEmptyBag(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "ember"}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("Invalid SARIF output: %v", err)
	}
	if len(log.Runs) != 1 {
		t.Fatalf("runs = %d", len(log.Runs))
	}
	if len(log.Runs[0].Results) != 0 {
		t.Errorf("results = %+v", log.Runs[0].Results)
	}
	if len(log.Runs[0].Tool.Driver.Rules) != 0 {
		t.Errorf("rules = %+v", log.Runs[0].Tool.Driver.Rules)
	}
}
