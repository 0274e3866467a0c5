// Package compose assembles rendered controls into the page structure the
// console draws: non-tab views first, in document order, then the tab strip.
// Every tab's content is rendered up front from the already-loaded design, so
// switching tabs is synchronous and never refetches.
package compose

import (
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/render"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
)

// Page is one composed form page.
type Page struct {
	FormID string  `json:"form_id"`
	Title  string  `json:"title,omitempty"`
	Groups []Group `json:"groups"`
	Tabs   []Tab   `json:"tabs,omitempty"`
}

// Group is a non-tab view rendered inline. Boxed groups draw a titled
// bordered panel; a missing locale title renders no title at all.
type Group struct {
	Code     string            `json:"code"`
	Title    string            `json:"title,omitempty"`
	Boxed    bool              `json:"boxed,omitempty"`
	Controls []*render.Control `json:"controls"`
}

// Tab is one panel of the tab strip. Content is present even before the tab
// is made active.
type Tab struct {
	Code     string            `json:"code"`
	Title    string            `json:"title,omitempty"`
	Controls []*render.Control `json:"controls"`
}

// ComposePage renders every view of the design through the registry and
// partitions the results into inline groups and tabs.
func ComposePage(reg *render.Registry, rc *render.Context, design *schema.FormDesignDetail) *Page {
	page := &Page{FormID: design.FormID}
	if design.Info.Lang != nil {
		page.Title = design.Info.Lang.Title[rc.Locale]
	}

	for _, layout := range design.ListLayout {
		for _, view := range layout.ListView {
			controls := renderView(reg, rc, view)
			if view.Tabbed() {
				page.Tabs = append(page.Tabs, Tab{
					Code:     view.Code,
					Title:    view.Title(rc.Locale),
					Controls: controls,
				})
				continue
			}
			group := Group{
				Code:     view.Code,
				Controls: controls,
			}
			if view.Boxed() {
				group.Boxed = true
				group.Title = view.Title(rc.Locale)
			}
			page.Groups = append(page.Groups, group)
		}
	}
	return page
}

func renderView(reg *render.Registry, rc *render.Context, view schema.View) []*render.Control {
	controls := make([]*render.Control, 0, len(view.ListInput))
	for i, input := range view.ListInput {
		if ctl := reg.Render(rc, input, i); ctl != nil {
			controls = append(controls, ctl)
		}
	}
	return controls
}
