package entities

import (
	"encoding/json"
	"fmt"
)

// ClonePrefix is prepended to projectInfo.name by clone operations
const ClonePrefix = "Copy of "

// CloneName returns the name a clone of an entity called name is expected to carry
func CloneName(name string) string {
	return ClonePrefix + name
}

// ProjectInfo is the descriptive block shared by projects and templates
type ProjectInfo struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Description string `json:"description"`
	ReportTitle string `json:"reportTitle"`
}

// GlobalVar is one ordered key/value pair
type GlobalVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Layout is a grid-position record of a report page
type Layout struct {
	W      int    `json:"w"`
	H      int    `json:"h"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	I      string `json:"i"`
	MinW   int    `json:"minW"`
	MaxW   int    `json:"maxW"`
	MinH   int    `json:"minH"`
	MaxH   int    `json:"maxH"`
	Moved  bool   `json:"moved"`
	Static bool   `json:"static"`
}

// Layouts accepts either a single layout object or a list of them
type Layouts []Layout

// UnmarshalJSON implements json.Unmarshaler
func (l *Layouts) UnmarshalJSON(data []byte) error {
	switch firstNonSpace(data) {
	case 'n':
		*l = nil
		return nil
	case '{':
		var one Layout
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = Layouts{one}
		return nil
	case '[':
		var many []Layout
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*l = many
		return nil
	default:
		return fmt.Errorf("layouts: unexpected JSON %q", string(data))
	}
}

// LayoutItemProperties holds widget styling
type LayoutItemProperties struct {
	JustifyContent *string `json:"justifyContent"`
	AlignItems     *string `json:"alignItems"`
	Color          *string `json:"color"`
	Bgcolor        *string `json:"bgcolor"`
}

// ReportWidget is a widget placed on a page
type ReportWidget struct {
	WidgetGID            string                `json:"widgetGID"`
	Key                  string                `json:"key"`
	LayoutItemProperties *LayoutItemProperties `json:"layoutItemProperties"`
	Properties           any                   `json:"properties"`
}

// ReportWidgets accepts either a single widget object or a list of them
type ReportWidgets []ReportWidget

// UnmarshalJSON implements json.Unmarshaler
func (w *ReportWidgets) UnmarshalJSON(data []byte) error {
	switch firstNonSpace(data) {
	case 'n':
		*w = nil
		return nil
	case '{':
		var one ReportWidget
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*w = ReportWidgets{one}
		return nil
	default:
		var many []ReportWidget
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*w = many
		return nil
	}
}

// Page is one page of a report design
type Page struct {
	Layouts       Layouts       `json:"layouts"`
	ReportWidgets ReportWidgets `json:"reportWidgets"`
}

// ProjectTemplate is a reusable report design
type ProjectTemplate struct {
	ID          string      `json:"id"`
	FromPlugin  *bool       `json:"fromPlugin,omitempty"`
	ProjectInfo ProjectInfo `json:"projectInfo"`
	GlobalVars  []GlobalVar `json:"globalVars"`
	Pages       []Page      `json:"pages"`
	CreatedAt   *Timestamp  `json:"createdAt,omitempty"`
	UpdatedAt   *Timestamp  `json:"updatedAt,omitempty"`
}

// GetID returns the object id
func (t *ProjectTemplate) GetID() string {
	return t.ID
}

// Project is a template instance with input data and an optional report.
// ReportID is only populated from datastore reads, Report only from API reads.
type Project struct {
	ProjectTemplate
	InputBlockData      any     `json:"inputBlockData,omitempty"`
	TestInformationData any     `json:"testInformationData,omitempty"`
	ReportID            string  `json:"reportID,omitempty"`
	Report              *Report `json:"report,omitempty"`
}

// ProjectInfoInput is the mutation-side projectInfo; unset fields are omitted
type ProjectInfoInput struct {
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	ReportTitle string `json:"reportTitle,omitempty"`
}

// ReportWidgetInput is the mutation-side widget
type ReportWidgetInput struct {
	WidgetGID            string                `json:"widgetGID"`
	Key                  string                `json:"key"`
	LayoutItemProperties *LayoutItemProperties `json:"layoutItemProperties,omitempty"`
	Properties           any                   `json:"properties"`
}

// PageInput is the mutation-side page
type PageInput struct {
	Layouts       []Layout            `json:"layouts"`
	ReportWidgets []ReportWidgetInput `json:"reportWidgets"`
}

// ProjectTemplateInput is the payload of createProjectTemplate/updateProjectTemplate
type ProjectTemplateInput struct {
	ProjectInfo *ProjectInfoInput `json:"projectInfo,omitempty"`
	GlobalVars  []GlobalVar       `json:"globalVars,omitempty"`
	Pages       []PageInput       `json:"pages,omitempty"`
}

// ProjectInput is the payload of createProject/updateProject
type ProjectInput struct {
	ProjectInfo         *ProjectInfoInput `json:"projectInfo,omitempty"`
	GlobalVars          []GlobalVar       `json:"globalVars"`
	Pages               []PageInput       `json:"pages"`
	InputBlockData      any               `json:"inputBlockData"`
	TestInformationData any               `json:"testInformationData"`
}

// Info converts the input block to the shape returned by the API
func (p *ProjectInfoInput) Info() ProjectInfo {
	if p == nil {
		return ProjectInfo{}
	}
	return ProjectInfo{
		Name:        p.Name,
		Company:     p.Company,
		Description: p.Description,
		ReportTitle: p.ReportTitle,
	}
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return b
		}
	}
	return 0
}
