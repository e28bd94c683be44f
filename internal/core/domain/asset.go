package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AssetType distinguishes physical products, build plans and hybrids
type AssetType string

const (
	AssetTypePhysical AssetType = "physical"
	AssetTypePlan     AssetType = "plan"
	AssetTypeHybrid   AssetType = "hybrid"
)

// Status is the overall lifecycle status owned by the server
type Status string

const (
	StatusDraft       Status = "draft"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusDeprecated  Status = "deprecated"
)

// Asset is a catalog record as returned by the API
type Asset struct {
	ID                    string                `json:"id" yaml:"id"`
	BasicInformation      BasicInformation      `json:"basic_information" yaml:"basic_information"`
	Contributor           Contributor           `json:"contributor" yaml:"contributor"`
	Overview              Overview              `json:"overview" yaml:"overview"`
	DocumentationUploads  DocumentationUploads  `json:"documentation_uploads" yaml:"documentation_uploads"`
	PhysicalConfiguration PhysicalConfiguration `json:"physical_configuration" yaml:"physical_configuration"`
	PlanConfiguration     PlanConfiguration     `json:"plan_configuration" yaml:"plan_configuration"`
	FunctionalIO          FunctionalIO          `json:"functional_io" yaml:"functional_io"`
	Economics             Economics             `json:"economics" yaml:"economics"`
	EnvironmentalImpact   EnvironmentalImpact   `json:"environmental_impact" yaml:"environmental_impact"`
	HumanImpact           HumanImpact           `json:"human_impact" yaml:"human_impact"`
	Deployment            Deployment            `json:"deployment" yaml:"deployment"`
	EdenImpactSummary     EdenImpactSummary     `json:"eden_impact_summary" yaml:"eden_impact_summary"`
	SystemMeta            SystemMeta            `json:"system_meta" yaml:"system_meta"`
	AIAssistance          AIAssistance          `json:"ai_assistance" yaml:"ai_assistance"`
}

type BasicInformation struct {
	AssetType        AssetType           `json:"asset_type" yaml:"asset_type"`
	Name             string              `json:"name" yaml:"name"`
	ShortDescription string              `json:"short_description,omitempty" yaml:"short_description"`
	Categories       []CategorySelection `json:"categories" yaml:"categories"`
	Tags             []string            `json:"tags,omitempty" yaml:"tags"`
	Version          string              `json:"version,omitempty" yaml:"version"`
}

type Contributor struct {
	Name             string `json:"name,omitempty" yaml:"name"`
	Organization     string `json:"organization,omitempty" yaml:"organization"`
	Email            string `json:"email,omitempty" yaml:"email"`
	Phone            string `json:"phone,omitempty" yaml:"phone"`
	Website          string `json:"website,omitempty" yaml:"website"`
	Country          string `json:"country,omitempty" yaml:"country"`
	SubmissionStatus string `json:"submission_status,omitempty" yaml:"submission_status"`
}

type Overview struct {
	Summary       string   `json:"summary,omitempty" yaml:"summary"`
	ProblemSolved string   `json:"problem_solved,omitempty" yaml:"problem_solved"`
	KeyFeatures   []string `json:"key_features,omitempty" yaml:"key_features"`
	TargetUsers   []string `json:"target_users,omitempty" yaml:"target_users"`
}

type DocumentationUploads struct {
	Documents []Document `json:"documents,omitempty" yaml:"documents"`
	Images    []Image    `json:"images,omitempty" yaml:"images"`
	BIMLinks  []BIMLink  `json:"bim_links,omitempty" yaml:"bim_links"`
	VideoURL  string     `json:"video_url,omitempty" yaml:"video_url"`
}

// Document is a file already persisted by the server
type Document struct {
	ID         string `json:"id,omitempty" yaml:"id"`
	DocType    string `json:"doc_type" yaml:"doc_type"`
	Filename   string `json:"filename" yaml:"filename"`
	URL        string `json:"url,omitempty" yaml:"url"`
	UploadedAt string `json:"uploaded_at,omitempty" yaml:"uploaded_at"`
}

type Image struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Filename  string `json:"filename" yaml:"filename"`
	URL       string `json:"url,omitempty" yaml:"url"`
	Caption   string `json:"caption,omitempty" yaml:"caption"`
	IsPrimary bool   `json:"is_primary" yaml:"is_primary"`
}

type PhysicalConfiguration struct {
	Dimensions       Dimensions `json:"dimensions" yaml:"dimensions"`
	WeightKg         *float64   `json:"weight_kg,omitempty" yaml:"weight_kg"`
	Materials        []string   `json:"materials,omitempty" yaml:"materials"`
	AssemblyRequired bool       `json:"assembly_required" yaml:"assembly_required"`
	LifespanYears    *float64   `json:"lifespan_years,omitempty" yaml:"lifespan_years"`
}

type Dimensions struct {
	Length *float64 `json:"length,omitempty" yaml:"length"`
	Width  *float64 `json:"width,omitempty" yaml:"width"`
	Height *float64 `json:"height,omitempty" yaml:"height"`
	Unit   string   `json:"unit,omitempty" yaml:"unit"`
}

type PlanConfiguration struct {
	PlanFormat     string   `json:"plan_format,omitempty" yaml:"plan_format"`
	SkillLevel     string   `json:"skill_level,omitempty" yaml:"skill_level"`
	BuildTimeHours *float64 `json:"build_time_hours,omitempty" yaml:"build_time_hours"`
	ToolsRequired  []string `json:"tools_required,omitempty" yaml:"tools_required"`
	MaterialsList  []string `json:"materials_list,omitempty" yaml:"materials_list"`
}

type FunctionalIO struct {
	Inputs              []IOItem `json:"inputs,omitempty" yaml:"inputs"`
	Outputs             []IOItem `json:"outputs,omitempty" yaml:"outputs"`
	OperatingConditions string   `json:"operating_conditions,omitempty" yaml:"operating_conditions"`
}

type IOItem struct {
	Name     string   `json:"name" yaml:"name"`
	Quantity *float64 `json:"quantity,omitempty" yaml:"quantity"`
	Unit     string   `json:"unit,omitempty" yaml:"unit"`
}

type Economics struct {
	Currency         string          `json:"currency,omitempty" yaml:"currency"`
	UnitCost         *float64        `json:"unit_cost,omitempty" yaml:"unit_cost"`
	InputCosts       []MonetizedItem `json:"input_costs,omitempty" yaml:"input_costs"`
	OutputValues     []MonetizedItem `json:"output_values,omitempty" yaml:"output_values"`
	LicenseType      string          `json:"license_type,omitempty" yaml:"license_type"`
	ScalingPotential string          `json:"scaling_potential,omitempty" yaml:"scaling_potential"`
	PaybackMonths    *float64        `json:"payback_months,omitempty" yaml:"payback_months"`
}

// MonetizedItem is an amount recurring over a time period
type MonetizedItem struct {
	Label      string     `json:"label" yaml:"label"`
	Amount     *float64   `json:"amount,omitempty" yaml:"amount"`
	TimePeriod TimePeriod `json:"time_period,omitempty" yaml:"time_period"`
}

type EnvironmentalImpact struct {
	CO2ReductionKgPerYear   *float64 `json:"co2_reduction_kg_per_year,omitempty" yaml:"co2_reduction_kg_per_year"`
	WaterSavedLitersPerYear *float64 `json:"water_saved_liters_per_year,omitempty" yaml:"water_saved_liters_per_year"`
	ClimateZones            []string `json:"climate_zones,omitempty" yaml:"climate_zones"`
	Notes                   string   `json:"notes,omitempty" yaml:"notes"`
}

type HumanImpact struct {
	PeopleServed   *int   `json:"people_served,omitempty" yaml:"people_served"`
	JobsCreated    *int   `json:"jobs_created,omitempty" yaml:"jobs_created"`
	HealthBenefits string `json:"health_benefits,omitempty" yaml:"health_benefits"`
	Notes          string `json:"notes,omitempty" yaml:"notes"`
}

type Deployment struct {
	Locations       []string `json:"locations,omitempty" yaml:"locations"`
	UnitsDeployed   *int     `json:"units_deployed,omitempty" yaml:"units_deployed"`
	DeploymentStage string   `json:"deployment_stage,omitempty" yaml:"deployment_stage"`
	Notes           string   `json:"notes,omitempty" yaml:"notes"`
}

type EdenImpactSummary struct {
	Summary string   `json:"summary,omitempty" yaml:"summary"`
	Score   *float64 `json:"score,omitempty" yaml:"score"`
}

type SystemMeta struct {
	Status          Status `json:"status" yaml:"status"`
	CreatedAt       string `json:"created_at,omitempty" yaml:"created_at"`
	UpdatedAt       string `json:"updated_at,omitempty" yaml:"updated_at"`
	CreatedBy       string `json:"created_by,omitempty" yaml:"created_by"`
	RejectionReason string `json:"rejection_reason,omitempty" yaml:"rejection_reason"`
}

type AIAssistance struct {
	Status          string   `json:"status,omitempty" yaml:"status"`
	LastRunAt       string   `json:"last_run_at,omitempty" yaml:"last_run_at"`
	Sources         []string `json:"sources,omitempty" yaml:"sources"`
	FieldsPopulated []string `json:"fields_populated,omitempty" yaml:"fields_populated"`
}

// AssetList is a page of assets from a list endpoint
type AssetList struct {
	Items []Asset `json:"items"`
	Total int     `json:"total"`
}

// UnmarshalJSON accepts either {"items": [...], "total": n} or a bare array
func (l *AssetList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Asset
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = AssetList{Items: items, Total: len(items)}
		return nil
	}
	type plain AssetList
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	if p.Total == 0 {
		p.Total = len(p.Items)
	}
	*l = AssetList(p)
	return nil
}

// ValidAssetTypes lists the asset types accepted by the create form
func ValidAssetTypes() []AssetType {
	return []AssetType{AssetTypePhysical, AssetTypePlan, AssetTypeHybrid}
}

// ParseAssetType validates a user-supplied asset type
func ParseAssetType(s string) (AssetType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range ValidAssetTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type %q (expected physical, plan or hybrid)", s)
}

// ValidStatuses lists the lifecycle statuses a filter may use
func ValidStatuses() []Status {
	return []Status{StatusDraft, StatusUnderReview, StatusApproved, StatusDeprecated}
}

// ParseStatus validates a user-supplied status filter
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range ValidStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// DisplayName returns the asset name or a placeholder
func (a *Asset) DisplayName() string {
	if name := strings.TrimSpace(a.BasicInformation.Name); name != "" {
		return name
	}
	return "(untitled)"
}

// CategoriesString returns primaries as a comma-separated string
func (a *Asset) CategoriesString() string {
	if len(a.BasicInformation.Categories) == 0 {
		return "-"
	}
	names := make([]string, 0, len(a.BasicInformation.Categories))
	for _, c := range a.BasicInformation.Categories {
		names = append(names, c.Primary)
	}
	return strings.Join(names, ", ")
}

// GetDisplayDate returns the date part of the last update
func (a *Asset) GetDisplayDate() string {
	ts := a.SystemMeta.UpdatedAt
	if ts == "" {
		ts = a.SystemMeta.CreatedAt
	}
	if len(ts) >= 10 {
		return ts[:10]
	}
	if ts == "" {
		return "-"
	}
	return ts
}
