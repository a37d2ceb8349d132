package schema_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/schema"
)

func TestLoad_EmbeddedDocument(t *testing.T) {
	form, err := schema.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if form.OperationID != schema.OperationID || form.Method != "POST" || form.Endpoint != "/generate" {
		t.Fatalf("unexpected operation: %+v", form)
	}

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff(params.FieldNames(), names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	format, ok := form.Field(params.FieldAccountFormat)
	if !ok {
		t.Fatalf("account format field missing")
	}
	wantOptions := []model.Option{
		{Value: "ethereum", Label: "Ethereum (20 bytes)"},
		{Value: "substrate", Label: "Substrate (32 bytes)"},
	}
	if diff := cmp.Diff(wantOptions, format.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	parachain, _ := form.Field(params.FieldTargetParachainID)
	if parachain.Type != model.FieldTypeInteger || parachain.Bits() != 32 {
		t.Fatalf("parachain field: %+v", parachain)
	}
	if parachain.Label != "Target Parachain ID" {
		t.Fatalf("parachain label: %q", parachain.Label)
	}
	if rule, ok := parachain.Rule(model.ValidationRuleMax); !ok || rule.Params["value"] != "4294967295" {
		t.Fatalf("parachain max rule: %+v", rule)
	}

	address, _ := form.Field(params.FieldPrecompileAddress)
	if rule, ok := address.Rule(model.ValidationRulePattern); !ok || rule.Params["pattern"] != params.AddressPattern {
		t.Fatalf("address pattern rule: %+v", rule)
	}
	if !address.Required {
		t.Fatalf("address should be required")
	}

	author, _ := form.Field(params.FieldAuthorName)
	if author.Required {
		t.Fatalf("author should be optional")
	}
}

func TestLoad_DefaultsMatchParameters(t *testing.T) {
	form := schema.MustLoad()
	want := params.Defaults().Values()
	for _, field := range form.Fields {
		if got := field.DefaultString(); got != want[field.Name] {
			t.Fatalf("default for %s: want %q got %q", field.Name, want[field.Name], got)
		}
	}
}

func TestLoad_WithDefaultsOverridesDocument(t *testing.T) {
	p := params.Defaults()
	p.ProjectName = "Astar"
	p.TargetParachainID = 2006

	form, err := schema.Load(context.Background(), schema.WithDefaults(p))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	project, _ := form.Field(params.FieldProjectName)
	if project.DefaultString() != "Astar" {
		t.Fatalf("project default: %q", project.DefaultString())
	}
	parachain, _ := form.Field(params.FieldTargetParachainID)
	if parachain.DefaultString() != "2006" {
		t.Fatalf("parachain default: %q", parachain.DefaultString())
	}
}

func TestLoad_DocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generation.json")
	if err := os.WriteFile(path, schema.Document(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	form, err := schema.Load(context.Background(), schema.WithDocumentFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(form.Fields) != len(params.FieldNames()) {
		t.Fatalf("expected %d fields, got %d", len(params.FieldNames()), len(form.Fields))
	}
}

func TestLoad_UnknownOperation(t *testing.T) {
	_, err := schema.Load(context.Background(), schema.WithOperation("missing"))
	if !errors.Is(err, schema.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestLoad_RejectsEmptyDocument(t *testing.T) {
	if _, err := schema.Load(context.Background(), schema.WithDocument(nil)); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestLoad_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := schema.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
