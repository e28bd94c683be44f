package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAssetPatch_OnlySetSectionsAreSent(t *testing.T) {
	p := AssetPatch{}.WithOverview(Overview{Summary: "Compact solar tile"})

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	body := string(data)
	if !strings.Contains(body, `"overview"`) {
		t.Errorf("expected overview in body: %s", body)
	}
	for _, key := range []string{"basic_information", "contributor", "economics", "system_meta"} {
		if strings.Contains(body, key) {
			t.Errorf("unexpected %q in body: %s", key, body)
		}
	}
}

func TestAssetPatch_IsEmpty(t *testing.T) {
	if !(AssetPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (AssetPatch{}).WithDeployment(Deployment{}).IsEmpty() {
		t.Error("patch with a section should not be empty")
	}
}

func TestAssetPatch_BuildersDoNotAlias(t *testing.T) {
	base := AssetPatch{}.WithOverview(Overview{Summary: "one"})
	other := base.WithContributor(Contributor{Name: "Ada"})

	if base.Contributor != nil {
		t.Error("builder must not mutate the receiver")
	}
	if other.Overview == nil || other.Overview.Summary != "one" {
		t.Error("builder must keep existing sections")
	}
}

func TestPatchForSection_EverySection(t *testing.T) {
	a := &Asset{}
	for _, s := range EditSections() {
		p, err := PatchForSection(a, s)
		if err != nil {
			t.Errorf("PatchForSection(%s) error: %v", s, err)
			continue
		}
		if p.IsEmpty() {
			t.Errorf("PatchForSection(%s) produced an empty patch", s)
		}
		if _, err := a.SectionPtr(s); err != nil {
			t.Errorf("SectionPtr(%s) error: %v", s, err)
		}
	}

	if _, err := PatchForSection(a, "system_meta"); err == nil {
		t.Error("expected error for non-editable section")
	}
}

func TestParseSection(t *testing.T) {
	if s, err := ParseSection("economics"); err != nil || s != SectionEconomics {
		t.Errorf("ParseSection(economics) = %v, %v", s, err)
	}
	if _, err := ParseSection("pricing"); err == nil {
		t.Error("expected error for unknown section")
	}
	if len(EditSections()) != 11 {
		t.Errorf("expected 11 edit sections, got %d", len(EditSections()))
	}
}

func TestAssetPatch_ApplyTo(t *testing.T) {
	a := &Asset{ID: "a1"}
	a.Overview.Summary = "old"
	a.Contributor.Name = "Ada"

	AssetPatch{}.WithOverview(Overview{Summary: "new"}).ApplyTo(a)

	if a.Overview.Summary != "new" {
		t.Errorf("overview not applied: %+v", a.Overview)
	}
	if a.Contributor.Name != "Ada" {
		t.Error("unset sections must be left alone")
	}
}
