package scenario

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/zatekoja/projectapi-e2e/internal/domain/entities"
)

// SameProjectInfo returns a descriptive error when the blocks differ
func SameProjectInfo(want, got entities.ProjectInfo) error {
	if want != got {
		return fmt.Errorf("projectInfo differs:\n want %+v\n got  %+v", want, got)
	}
	return nil
}

// SameGlobalVars compares ordered key/value lists; nil and empty are equal
func SameGlobalVars(want, got []entities.GlobalVar) error {
	if len(want) == 0 && len(got) == 0 {
		return nil
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("globalVars differ:\n want %+v\n got  %+v", want, got)
	}
	return nil
}

// SamePages compares pages by their JSON form, so free-form widget
// properties compare equal whichever side decoded them.
func SamePages(want, got []entities.Page) error {
	if len(want) == 0 && len(got) == 0 {
		return nil
	}
	w, err := canonical(want)
	if err != nil {
		return err
	}
	g, err := canonical(got)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(w, g) {
		wb, _ := json.Marshal(w)
		gb, _ := json.Marshal(g)
		return fmt.Errorf("pages differ:\n want %s\n got  %s", wb, gb)
	}
	return nil
}

// PagesFromInput converts mutation pages to the shape queries return
func PagesFromInput(in []entities.PageInput) []entities.Page {
	if in == nil {
		return nil
	}
	out := make([]entities.Page, len(in))
	for i, p := range in {
		out[i].Layouts = entities.Layouts(p.Layouts)
		for _, w := range p.ReportWidgets {
			out[i].ReportWidgets = append(out[i].ReportWidgets, entities.ReportWidget{
				WidgetGID:            w.WidgetGID,
				Key:                  w.Key,
				LayoutItemProperties: w.LayoutItemProperties,
				Properties:           w.Properties,
			})
		}
	}
	return out
}

func canonical(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode for comparison: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode for comparison: %w", err)
	}
	return out, nil
}
