package domain

import "fmt"

// Section names one editable block of the asset schema
type Section string

const (
	SectionBasicInformation      Section = "basic_information"
	SectionContributor           Section = "contributor"
	SectionOverview              Section = "overview"
	SectionDocumentationUploads  Section = "documentation_uploads"
	SectionPhysicalConfiguration Section = "physical_configuration"
	SectionPlanConfiguration     Section = "plan_configuration"
	SectionFunctionalIO          Section = "functional_io"
	SectionEconomics             Section = "economics"
	SectionEnvironmentalImpact   Section = "environmental_impact"
	SectionHumanImpact           Section = "human_impact"
	SectionDeployment            Section = "deployment"
)

var sectionTitles = map[Section]string{
	SectionBasicInformation:      "Basic Information",
	SectionContributor:           "Contributor",
	SectionOverview:              "Overview",
	SectionDocumentationUploads:  "Documentation & Uploads",
	SectionPhysicalConfiguration: "Physical Configuration",
	SectionPlanConfiguration:     "Plan Configuration",
	SectionFunctionalIO:          "Functional Inputs & Outputs",
	SectionEconomics:             "Economics",
	SectionEnvironmentalImpact:   "Environmental Impact",
	SectionHumanImpact:           "Human Impact",
	SectionDeployment:            "Deployment",
}

// EditSections returns the edit wizard's pages in order
func EditSections() []Section {
	return []Section{
		SectionBasicInformation,
		SectionContributor,
		SectionOverview,
		SectionDocumentationUploads,
		SectionPhysicalConfiguration,
		SectionPlanConfiguration,
		SectionFunctionalIO,
		SectionEconomics,
		SectionEnvironmentalImpact,
		SectionHumanImpact,
		SectionDeployment,
	}
}

// Title returns the human label of a section
func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return string(s)
}

// ParseSection validates a section name
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if _, ok := sectionTitles[s]; !ok {
		return "", fmt.Errorf("unknown section %q", name)
	}
	return s, nil
}

// SectionPtr returns a pointer to the section's struct inside the asset
func (a *Asset) SectionPtr(s Section) (any, error) {
	switch s {
	case SectionBasicInformation:
		return &a.BasicInformation, nil
	case SectionContributor:
		return &a.Contributor, nil
	case SectionOverview:
		return &a.Overview, nil
	case SectionDocumentationUploads:
		return &a.DocumentationUploads, nil
	case SectionPhysicalConfiguration:
		return &a.PhysicalConfiguration, nil
	case SectionPlanConfiguration:
		return &a.PlanConfiguration, nil
	case SectionFunctionalIO:
		return &a.FunctionalIO, nil
	case SectionEconomics:
		return &a.Economics, nil
	case SectionEnvironmentalImpact:
		return &a.EnvironmentalImpact, nil
	case SectionHumanImpact:
		return &a.HumanImpact, nil
	case SectionDeployment:
		return &a.Deployment, nil
	}
	return nil, fmt.Errorf("unknown section %q", s)
}

// AssetPatch is a typed partial update: only non-nil sections are sent
type AssetPatch struct {
	BasicInformation      *BasicInformation      `json:"basic_information,omitempty"`
	Contributor           *Contributor           `json:"contributor,omitempty"`
	Overview              *Overview              `json:"overview,omitempty"`
	DocumentationUploads  *DocumentationUploads  `json:"documentation_uploads,omitempty"`
	PhysicalConfiguration *PhysicalConfiguration `json:"physical_configuration,omitempty"`
	PlanConfiguration     *PlanConfiguration     `json:"plan_configuration,omitempty"`
	FunctionalIO          *FunctionalIO          `json:"functional_io,omitempty"`
	Economics             *Economics             `json:"economics,omitempty"`
	EnvironmentalImpact   *EnvironmentalImpact   `json:"environmental_impact,omitempty"`
	HumanImpact           *HumanImpact           `json:"human_impact,omitempty"`
	Deployment            *Deployment            `json:"deployment,omitempty"`
	EdenImpactSummary     *EdenImpactSummary     `json:"eden_impact_summary,omitempty"`
}

func (p AssetPatch) WithBasicInformation(v BasicInformation) AssetPatch {
	p.BasicInformation = &v
	return p
}

func (p AssetPatch) WithContributor(v Contributor) AssetPatch {
	p.Contributor = &v
	return p
}

func (p AssetPatch) WithOverview(v Overview) AssetPatch {
	p.Overview = &v
	return p
}

func (p AssetPatch) WithDocumentationUploads(v DocumentationUploads) AssetPatch {
	p.DocumentationUploads = &v
	return p
}

func (p AssetPatch) WithPhysicalConfiguration(v PhysicalConfiguration) AssetPatch {
	p.PhysicalConfiguration = &v
	return p
}

func (p AssetPatch) WithPlanConfiguration(v PlanConfiguration) AssetPatch {
	p.PlanConfiguration = &v
	return p
}

func (p AssetPatch) WithFunctionalIO(v FunctionalIO) AssetPatch {
	p.FunctionalIO = &v
	return p
}

func (p AssetPatch) WithEconomics(v Economics) AssetPatch {
	p.Economics = &v
	return p
}

func (p AssetPatch) WithEnvironmentalImpact(v EnvironmentalImpact) AssetPatch {
	p.EnvironmentalImpact = &v
	return p
}

func (p AssetPatch) WithHumanImpact(v HumanImpact) AssetPatch {
	p.HumanImpact = &v
	return p
}

func (p AssetPatch) WithDeployment(v Deployment) AssetPatch {
	p.Deployment = &v
	return p
}

func (p AssetPatch) WithEdenImpactSummary(v EdenImpactSummary) AssetPatch {
	p.EdenImpactSummary = &v
	return p
}

// IsEmpty reports whether no section is set
func (p AssetPatch) IsEmpty() bool {
	return p == AssetPatch{}
}

// PatchForSection builds a patch carrying one section of the asset
func PatchForSection(a *Asset, s Section) (AssetPatch, error) {
	var p AssetPatch
	switch s {
	case SectionBasicInformation:
		return p.WithBasicInformation(a.BasicInformation), nil
	case SectionContributor:
		return p.WithContributor(a.Contributor), nil
	case SectionOverview:
		return p.WithOverview(a.Overview), nil
	case SectionDocumentationUploads:
		return p.WithDocumentationUploads(a.DocumentationUploads), nil
	case SectionPhysicalConfiguration:
		return p.WithPhysicalConfiguration(a.PhysicalConfiguration), nil
	case SectionPlanConfiguration:
		return p.WithPlanConfiguration(a.PlanConfiguration), nil
	case SectionFunctionalIO:
		return p.WithFunctionalIO(a.FunctionalIO), nil
	case SectionEconomics:
		return p.WithEconomics(a.Economics), nil
	case SectionEnvironmentalImpact:
		return p.WithEnvironmentalImpact(a.EnvironmentalImpact), nil
	case SectionHumanImpact:
		return p.WithHumanImpact(a.HumanImpact), nil
	case SectionDeployment:
		return p.WithDeployment(a.Deployment), nil
	}
	return p, fmt.Errorf("unknown section %q", s)
}

// ApplyTo copies every set section of p onto a
func (p AssetPatch) ApplyTo(a *Asset) {
	if p.BasicInformation != nil {
		a.BasicInformation = *p.BasicInformation
	}
	if p.Contributor != nil {
		a.Contributor = *p.Contributor
	}
	if p.Overview != nil {
		a.Overview = *p.Overview
	}
	if p.DocumentationUploads != nil {
		a.DocumentationUploads = *p.DocumentationUploads
	}
	if p.PhysicalConfiguration != nil {
		a.PhysicalConfiguration = *p.PhysicalConfiguration
	}
	if p.PlanConfiguration != nil {
		a.PlanConfiguration = *p.PlanConfiguration
	}
	if p.FunctionalIO != nil {
		a.FunctionalIO = *p.FunctionalIO
	}
	if p.Economics != nil {
		a.Economics = *p.Economics
	}
	if p.EnvironmentalImpact != nil {
		a.EnvironmentalImpact = *p.EnvironmentalImpact
	}
	if p.HumanImpact != nil {
		a.HumanImpact = *p.HumanImpact
	}
	if p.Deployment != nil {
		a.Deployment = *p.Deployment
	}
	if p.EdenImpactSummary != nil {
		a.EdenImpactSummary = *p.EdenImpactSummary
	}
}
