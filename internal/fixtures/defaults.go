package fixtures

import "github.com/zatekoja/projectapi-e2e/internal/domain/entities"

func ptr(s string) *string { return &s }

// DefaultProjectTemplateInput is the full template literal: "Template 3" with
// two global variables and one page holding a single widget.
func DefaultProjectTemplateInput() entities.ProjectTemplateInput {
	return entities.ProjectTemplateInput{
		ProjectInfo: &entities.ProjectInfoInput{
			Name:        "Template 3",
			Company:     "Template 3",
			Description: "Template 3",
			ReportTitle: "Template 3",
		},
		GlobalVars: []entities.GlobalVar{
			{Key: "20", Value: "30"},
			{Key: "30", Value: "30"},
		},
		Pages: DefaultPages(),
	}
}

// DefaultPages is one page with one layout record and one widget
func DefaultPages() []entities.PageInput {
	return []entities.PageInput{{
		Layouts: []entities.Layout{{
			W: 1, H: 4, X: 5, Y: 9,
			I:    "1674113927768",
			MinW: 1, MaxW: 12, MinH: 4, MaxH: 37,
		}},
		ReportWidgets: []entities.ReportWidgetInput{{
			WidgetGID: "aiverify.tests:test2",
			Key:       "1675757519254",
			LayoutItemProperties: &entities.LayoutItemProperties{
				JustifyContent: ptr("left"),
				AlignItems:     ptr("top"),
			},
		}},
	}}
}

// DefaultProjectInput is the project literal; everything but projectInfo is sent as null
func DefaultProjectInput() entities.ProjectInput {
	return entities.ProjectInput{
		ProjectInfo: &entities.ProjectInfoInput{
			Name:        "test7",
			Company:     "Testing Company 7",
			Description: "We do testing",
			ReportTitle: "Testing",
		},
	}
}
