// Package page implements the list-plus-dialog resource screen shared by
// every CRUD view: fetch the list, open a create or edit dialog, submit,
// delete, run an action verb, and re-fetch.
//
// A Page lives for one HTTP request. It never merges results; every
// successful mutation replaces the list with a fresh fetch.
package page

import (
	"context"
	"errors"
	"fmt"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

// ErrUnknownAction is returned by Run for an action the config does not declare.
var ErrUnknownAction = errors.New("unknown action")

// State is where a page sits in its lifecycle.
type State int

const (
	Loading State = iota
	Ready
	Failed
	DialogCreate
	DialogEdit
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case DialogCreate:
		return "dialog_create"
	case DialogEdit:
		return "dialog_edit"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scope ties child resources to their harvest season. Zero for top-level pages.
type Scope struct {
	SeasonID int64
}

// FieldKind selects the input widget of a dialog field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindTextArea
	KindNumber
	KindDate
	KindEmail
	KindSelect
	KindCheckbox
)

// Field describes one dialog input.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []models.Option
	Step     string
	// ShowWhen hides the field unless another field holds one of the values,
	// e.g. lease_rate only for ownership_type=leased.
	ShowWhen map[string][]string
}

// Column is one table column.
type Column[T any] struct {
	Header  string
	Value   func(T) string
	Numeric bool
}

// Stat is a summary card above the table.
type Stat struct {
	Label string
	Value string
	// Detail lists sub-figures, e.g. per-category totals.
	Detail []models.Amount
}

// Link is a per-row navigation target.
type Link struct {
	Label string
	Href  string
}

// Action is a fire-and-forget backend verb run against one row.
type Action struct {
	Name     string
	Label    string
	Fallback string
	Run      func(ctx context.Context, c *harvestapi.Client, id int64) error
}

// Config parametrizes a resource page over the entity T and its payload P.
type Config[T any, P any] struct {
	Name     string
	Title    string
	Singular string
	Plural   string
	Scoped   bool

	Columns []Column[T]
	Fields  []Field
	Actions []Action

	ID       func(T) int64
	Encode   func(T) map[string]string
	Defaults func() map[string]string
	Decode   func(*Form, Scope) (P, error)
	Stats    func([]T) []Stat
	Links    func(T, Scope) []Link

	List   func(ctx context.Context, c *harvestapi.Client, s Scope) ([]T, error)
	Create func(ctx context.Context, c *harvestapi.Client, in P) error
	Update func(ctx context.Context, c *harvestapi.Client, id int64, in P) error
	Delete func(ctx context.Context, c *harvestapi.Client, id int64) error
}

// BasePath is the URL of the list for scope.
func (cfg *Config[T, P]) BasePath(s Scope) string {
	if cfg.Scoped {
		return fmt.Sprintf("/seasons/%d/%s", s.SeasonID, cfg.Name)
	}
	return "/" + cfg.Name
}

func (cfg *Config[T, P]) action(name string) (Action, bool) {
	for _, a := range cfg.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// Page is the per-request state machine of a resource screen.
type Page[T any, P any] struct {
	cfg    *Config[T, P]
	client *harvestapi.Client
	scope  Scope

	state  State
	items  []T
	banner string
	form   *Form
	editID int64
}

// New starts a page in the Loading state.
func New[T any, P any](cfg *Config[T, P], client *harvestapi.Client, scope Scope) *Page[T, P] {
	return &Page[T, P]{cfg: cfg, client: client, scope: scope, state: Loading}
}

// State reports the current state.
func (p *Page[T, P]) State() State { return p.state }

// Items returns the last fetched list.
func (p *Page[T, P]) Items() []T { return p.items }

// Banner returns the error banner, if any.
func (p *Page[T, P]) Banner() string { return p.banner }

// Load fetches the list: Ready on success, Failed with a banner otherwise.
func (p *Page[T, P]) Load(ctx context.Context) error {
	p.state = Loading
	items, err := p.cfg.List(ctx, p.client, p.scope)
	if err != nil {
		p.items = nil
		p.state = Failed
		p.banner = harvestapi.Message(err, "Failed to load "+p.cfg.Plural)
		return err
	}
	p.items = items
	p.state = Ready
	return nil
}

// OpenCreate shows a blank dialog prefilled with defaults.
func (p *Page[T, P]) OpenCreate() {
	values := map[string]string{}
	if p.cfg.Defaults != nil {
		values = p.cfg.Defaults()
	}
	p.form = FormFrom(values)
	p.editID = 0
	p.state = DialogCreate
}

// OpenEdit shows the dialog prefilled from the loaded row id. A missing row
// leaves the page Ready with a banner.
func (p *Page[T, P]) OpenEdit(id int64) bool {
	for _, item := range p.items {
		if p.cfg.ID(item) == id {
			p.form = FormFrom(p.cfg.Encode(item))
			p.editID = id
			p.state = DialogEdit
			return true
		}
	}
	p.state = Ready
	p.banner = fmt.Sprintf("That %s no longer exists", p.cfg.Singular)
	return false
}

// Cancel closes the dialog.
func (p *Page[T, P]) Cancel() {
	p.form = nil
	p.editID = 0
	p.state = Ready
}

// SubmitCreate decodes and creates. On failure the dialog stays open with the
// user's input and a banner.
func (p *Page[T, P]) SubmitCreate(ctx context.Context, form *Form) error {
	p.form = form
	p.editID = 0
	p.state = DialogCreate
	return p.submit(ctx, func(in P) error {
		return p.cfg.Create(ctx, p.client, in)
	})
}

// SubmitEdit decodes and updates row id.
func (p *Page[T, P]) SubmitEdit(ctx context.Context, id int64, form *Form) error {
	p.form = form
	p.editID = id
	p.state = DialogEdit
	return p.submit(ctx, func(in P) error {
		return p.cfg.Update(ctx, p.client, id, in)
	})
}

func (p *Page[T, P]) submit(ctx context.Context, send func(P) error) error {
	in, err := p.cfg.Decode(p.form, p.scope)
	if err == nil {
		err = p.form.Err()
	}
	if err != nil {
		p.banner = err.Error()
		p.background(ctx)
		return err
	}

	if err := send(in); err != nil {
		p.banner = harvestapi.Message(err, "Failed to save "+p.cfg.Singular)
		if !harvestapi.IsSessionInvalid(err) {
			p.background(ctx)
		}
		return err
	}

	p.form = nil
	p.editID = 0
	return p.Load(ctx)
}

// background refreshes the list behind an open dialog without touching the
// dialog state or banner.
func (p *Page[T, P]) background(ctx context.Context) {
	if items, err := p.cfg.List(ctx, p.client, p.scope); err == nil {
		p.items = items
	}
}

// Delete removes row id and re-fetches. A row that is already gone counts as
// deleted.
func (p *Page[T, P]) Delete(ctx context.Context, id int64) error {
	err := p.cfg.Delete(ctx, p.client, id)
	if err != nil && errors.Is(err, harvestapi.ErrNotFound) {
		err = nil
	}
	if err != nil && harvestapi.IsSessionInvalid(err) {
		return err
	}
	return p.reloadAfter(ctx, err, "Failed to delete "+p.cfg.Singular)
}

// Run triggers action on row id, then re-fetches once.
func (p *Page[T, P]) Run(ctx context.Context, name string, id int64) error {
	a, ok := p.cfg.action(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	err := a.Run(ctx, p.client, id)
	if err != nil && harvestapi.IsSessionInvalid(err) {
		return err
	}
	return p.reloadAfter(ctx, err, a.Fallback)
}

func (p *Page[T, P]) reloadAfter(ctx context.Context, opErr error, fallback string) error {
	if loadErr := p.Load(ctx); loadErr != nil {
		if opErr != nil {
			return opErr
		}
		return loadErr
	}
	if opErr != nil {
		p.banner = harvestapi.Message(opErr, fallback)
	}
	return opErr
}

// View renders the page for templates.
func (p *Page[T, P]) View() View {
	base := p.cfg.BasePath(p.scope)
	v := View{
		Name:     p.cfg.Name,
		Title:    p.cfg.Title,
		Singular: p.cfg.Singular,
		BasePath: base,
		SeasonID: p.scope.SeasonID,
		State:    p.state.String(),
		Banner:   p.banner,
		Failed:   p.state == Failed,
		Empty:    p.state != Failed && len(p.items) == 0,
	}

	for _, c := range p.cfg.Columns {
		v.Headers = append(v.Headers, Header{Label: c.Header, Numeric: c.Numeric})
	}
	for _, item := range p.items {
		id := p.cfg.ID(item)
		row := Row{ID: id, EditHref: fmt.Sprintf("%s/%d/edit", base, id), DeleteAction: fmt.Sprintf("%s/%d/delete", base, id)}
		for _, c := range p.cfg.Columns {
			row.Cells = append(row.Cells, Cell{Text: c.Value(item), Numeric: c.Numeric})
		}
		for _, a := range p.cfg.Actions {
			row.Actions = append(row.Actions, RowAction{Label: a.Label, Href: fmt.Sprintf("%s/%d/actions/%s", base, id, a.Name)})
		}
		if p.cfg.Links != nil {
			row.Links = p.cfg.Links(item, p.scope)
		}
		v.Rows = append(v.Rows, row)
	}
	if p.cfg.Stats != nil && p.state != Failed {
		v.Stats = p.cfg.Stats(p.items)
	}

	if p.state == DialogCreate || p.state == DialogEdit {
		v.Dialog = p.dialog(base)
	}
	return v
}

func (p *Page[T, P]) dialog(base string) *Dialog {
	d := &Dialog{CancelHref: base}
	if p.state == DialogEdit {
		d.Title = "Edit " + p.cfg.Singular
		d.Action = fmt.Sprintf("%s/%d", base, p.editID)
		d.Submit = "Save changes"
	} else {
		d.Title = "Add " + p.cfg.Singular
		d.Action = base
		d.Submit = "Create"
	}

	form := p.form
	if form == nil {
		form = NewForm(nil)
	}
	for _, f := range p.cfg.Fields {
		value := form.Value(f.Name)
		fv := FieldView{Field: f, Value: value, Input: inputType(f.Kind)}
		if f.Kind == KindCheckbox {
			fv.Checked = form.Bool(f.Name)
		}
		for _, o := range f.Options {
			fv.Choices = append(fv.Choices, Choice{Value: o.Value, Label: o.Label, Selected: o.Value == value})
		}
		fv.Hidden = !visible(f, form)
		d.Fields = append(d.Fields, fv)
	}
	return d
}

func visible(f Field, form *Form) bool {
	for other, values := range f.ShowWhen {
		current := form.Value(other)
		for _, v := range values {
			if v == current {
				return true
			}
		}
		return false
	}
	return true
}

func inputType(k FieldKind) string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindEmail:
		return "email"
	case KindCheckbox:
		return "checkbox"
	case KindSelect:
		return "select"
	case KindTextArea:
		return "textarea"
	default:
		return "text"
	}
}
