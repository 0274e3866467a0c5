// Package forms is the application service tying the form engine together:
// it loads designs from the store, renders pages through the registry, runs
// searches through the workflow client and keeps per-form search state in the
// coordinator. HTTP handlers and live sessions both sit on top of it.
package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/compose"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/dictionary"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/render"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/schema"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/searchstate"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/transcode"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

// ErrWorkflow wraps a backend-reported execution error.
var ErrWorkflow = errors.New("forms: workflow execution failed")

// Service exposes every form operation of the console.
type Service struct {
	store    designstore.Store
	client   workflow.Client
	states   *searchstate.Coordinator
	registry *render.Registry
	dict     *dictionary.Dictionary
	bus      event.Publisher
	log      *logrus.Entry
}

// New wires a Service. A nil bus falls back to a no-op publisher.
func New(store designstore.Store, client workflow.Client, states *searchstate.Coordinator,
	registry *render.Registry, dict *dictionary.Dictionary, bus event.Publisher) *Service {
	if bus == nil {
		bus = event.NopPublisher{}
	}
	return &Service{
		store:    store,
		client:   client,
		states:   states,
		registry: registry,
		dict:     dict,
		bus:      bus,
		log:      logrus.WithField("component", "forms"),
	}
}

// ListDesigns returns summaries of every stored form design.
func (s *Service) ListDesigns(ctx context.Context) ([]designstore.Summary, error) {
	return s.store.List(ctx)
}

// GetDesign returns the raw stored design document.
func (s *Service) GetDesign(ctx context.Context, formID string) ([]byte, error) {
	return s.store.Get(ctx, formID)
}

// SaveDesign validates the design against the schema and persists it. The
// document's form_id must match formID.
func (s *Service) SaveDesign(ctx context.Context, formID string, raw []byte) error {
	design, err := schema.ParseDesign(raw)
	if err != nil {
		return err
	}
	if design.FormID != formID {
		return fmt.Errorf("design form_id %q does not match %q", design.FormID, formID)
	}
	if err := s.store.Put(ctx, formID, raw); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"form": formID, "bytes": len(raw)}).Info("design saved")
	s.bus.Publish(ctx, event.NewDesignSaved(event.DesignSavedPayload{FormID: formID, Bytes: len(raw)}))
	return nil
}

// DeleteDesign removes a stored design and drops its search state.
func (s *Service) DeleteDesign(ctx context.Context, formID string) error {
	if err := s.store.Delete(ctx, formID); err != nil {
		return err
	}
	s.states.ClearForm(formID)
	s.bus.Publish(ctx, event.NewDesignDeleted(event.DesignDeletedPayload{FormID: formID}))
	return nil
}

// RenderOptions parameterizes one page render.
type RenderOptions struct {
	Locale       string
	RecordID     string
	SessionToken string
	Preview      bool
	// FormState is the caller's live edited values, keyed by field key.
	FormState map[string]any
}

// RenderPage loads the design for formID and composes the full page: inline
// groups first, then the tab strip with every tab's content pre-rendered.
// When RecordID is set the record is fetched once and provided to renderers
// as view data.
func (s *Service) RenderPage(ctx context.Context, formID string, opts RenderOptions) (*compose.Page, error) {
	raw, err := s.store.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	design, err := schema.ParseDesign(raw)
	if err != nil {
		return nil, err
	}

	locale := schema.NormalizeLocale(opts.Locale)
	rc := &render.Context{
		Ctx:          ctx,
		FormID:       formID,
		Locale:       locale,
		RecordID:     opts.RecordID,
		SessionToken: opts.SessionToken,
		Preview:      opts.Preview,
		Rules:        design.ListRule,
		FormState:    opts.FormState,
		Dict:         s.dict,
		Client:       s.client,
	}
	if opts.RecordID != "" && design.Info.Data != "" {
		rc.ViewData, err = s.fetchViewData(ctx, design, opts)
		if err != nil {
			return nil, err
		}
	}

	page := compose.ComposePage(s.registry, rc, design)

	controls := 0
	for _, g := range page.Groups {
		controls += len(g.Controls)
	}
	for _, tab := range page.Tabs {
		controls += len(tab.Controls)
	}
	s.bus.Publish(ctx, event.NewFormRendered(event.FormRenderedPayload{
		FormID:       formID,
		Locale:       locale,
		ControlCount: controls,
		TabCount:     len(page.Tabs),
		Preview:      opts.Preview,
	}))
	return page, nil
}

func (s *Service) fetchViewData(ctx context.Context, design *schema.FormDesignDetail, opts RenderOptions) (map[string]any, error) {
	req := workflow.NewViewRequest(opts.SessionToken, design.Info.Data, viewCommand(design.FormID), opts.RecordID)
	res, err := s.client.View(ctx, req)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("%w: %s", ErrWorkflow, res.Err.Code)
	}
	if len(res.Items) == 0 {
		return nil, nil
	}
	return res.Items[0], nil
}

// viewCommand derives the view-one-record command name from the form id, the
// same convention the search command uses.
func viewCommand(formID string) string {
	return "View" + formID
}

// ApplyChange records one live field edit. Structured text-area edits arrive
// as the editor's object tree and are transcoded back to the field's wire
// format; the returned value is what the session should store. Advanced-search
// fields additionally set their filter in the form's search state on blur,
// and any edit marks the form modified.
func (s *Service) ApplyChange(ctx context.Context, formID, field string, value any) (any, error) {
	raw, err := s.store.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	design, err := schema.ParseDesign(raw)
	if err != nil {
		return nil, err
	}

	input, known := design.FindInput(field)
	if known && structuredEditor(input) {
		if tree, ok := value.(map[string]any); ok {
			wire, err := transcode.Encode(tree, textAreaFormat(input))
			if err != nil {
				return nil, fmt.Errorf("encoding %s edit: %w", field, err)
			}
			value = wire
		}
	}

	s.states.InitForm(formID)
	s.states.SetIsModify(formID, true)
	if known && input.Config.IsSearch {
		if text, ok := value.(string); ok {
			s.states.SetAdvancedSearchField(formID, field, text)
		}
	}
	return value, nil
}

func structuredEditor(input schema.Input) bool {
	switch input.InputType {
	case "cTextArea", "jSONEditor", "xmlEditor":
		return true
	}
	return false
}

func textAreaFormat(input schema.Input) string {
	if input.Config.GetDataFormat != "" {
		return input.Config.GetDataFormat
	}
	return transcode.FormatJSON
}
