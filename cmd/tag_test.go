package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		tags        []string
		isAdd       bool
		want        []string
		wantChanged bool
	}{
		{
			name:        "add new tags keeps order",
			existing:    []string{"solar"},
			tags:        []string{"rural", "off-grid"},
			isAdd:       true,
			want:        []string{"solar", "rural", "off-grid"},
			wantChanged: true,
		},
		{
			name:     "add duplicate ignores case",
			existing: []string{"Solar"},
			tags:     []string{"solar"},
			isAdd:    true,
			want:     []string{"Solar"},
		},
		{
			name:        "remove ignores case",
			existing:    []string{"Solar", "rural"},
			tags:        []string{"solar"},
			want:        []string{"rural"},
			wantChanged: true,
		},
		{
			name:     "remove missing tag",
			existing: []string{"rural"},
			tags:     []string{"solar"},
			want:     []string{"rural"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := slices.Clone(tt.existing)
			got, changed := mergeTags(existing, tt.tags, tt.isAdd)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("mergeTags() = %v, want %v", got, tt.want)
			}
			if !slices.Equal(existing, tt.existing) {
				t.Errorf("input slice was modified: %v", existing)
			}
		})
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		name  string
		asset domain.Asset
		want  string
	}{
		{
			name:  "slug and id prefix",
			asset: domain.Asset{ID: "3f2c9a1e-0000-4000-8000-000000000000", BasicInformation: domain.BasicInformation{Name: "Solar Water Pump!"}},
			want:  "solar-water-pump-3f2c9a1e",
		},
		{
			name:  "short id kept whole",
			asset: domain.Asset{ID: "abc", BasicInformation: domain.BasicInformation{Name: "Kiln"}},
			want:  "kiln-abc",
		},
		{
			name:  "empty name falls back to id",
			asset: domain.Asset{ID: "3f2c9a1e-0000", BasicInformation: domain.BasicInformation{Name: "  ?? "}},
			want:  "3f2c9a1e-0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exportFileName(&tt.asset); got != tt.want {
				t.Errorf("exportFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportAsset(t *testing.T) {
	asset := &domain.Asset{
		ID: "3f2c9a1e-0000",
		BasicInformation: domain.BasicInformation{
			Name: "Biochar Kiln",
			Tags: []string{"soil"},
		},
	}

	t.Run("yaml", func(t *testing.T) {
		dir := t.TempDir()
		path, err := exportAsset(asset, dir, exportProfiles["yaml"])
		if err != nil {
			t.Fatalf("exportAsset() error = %v", err)
		}
		if !strings.HasSuffix(path, ".yaml") {
			t.Errorf("path = %q, want .yaml suffix", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var back domain.Asset
		if err := yaml.Unmarshal(data, &back); err != nil {
			t.Fatalf("output is not YAML: %v", err)
		}
		if back.BasicInformation.Name != "Biochar Kiln" {
			t.Errorf("name = %q", back.BasicInformation.Name)
		}
	})

	t.Run("json", func(t *testing.T) {
		dir := t.TempDir()
		path, err := exportAsset(asset, dir, exportProfiles["json"])
		if err != nil {
			t.Fatalf("exportAsset() error = %v", err)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("file written outside output dir: %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var back map[string]any
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if back["id"] != "3f2c9a1e-0000" {
			t.Errorf("id = %v", back["id"])
		}
	})
}
