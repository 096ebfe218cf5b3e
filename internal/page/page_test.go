package page

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

type widget struct {
	ID     int64
	Name   string
	Amount float64
}

type widgetInput struct {
	Name   string
	Amount float64
	Season int64
}

type fakeWidgets struct {
	items     []widget
	nextID    int64
	listErr   error
	createErr error
	deleteErr error
	actionErr error
	lists     int
	created   []widgetInput
	actions   []int64
}

func (f *fakeWidgets) config() *Config[widget, widgetInput] {
	return &Config[widget, widgetInput]{
		Name:     "widgets",
		Title:    "Widgets",
		Singular: "widget",
		Plural:   "widgets",
		Columns: []Column[widget]{
			{Header: "Name", Value: func(w widget) string { return w.Name }},
			{Header: "Amount", Value: func(w widget) string { return Money(w.Amount) }, Numeric: true},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "amount", Label: "Amount", Kind: KindNumber, Required: true},
			{Name: "kind", Label: "Kind", Kind: KindSelect, Options: []models.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
			{Name: "rate", Label: "Rate", Kind: KindNumber, ShowWhen: map[string][]string{"kind": {"b"}}},
		},
		Actions: []Action{{
			Name:     "recalc",
			Label:    "Recalculate",
			Fallback: "Failed to recalculate widget",
			Run: func(_ context.Context, _ *harvestapi.Client, id int64) error {
				f.actions = append(f.actions, id)
				return f.actionErr
			},
		}},
		ID: func(w widget) int64 { return w.ID },
		Encode: func(w widget) map[string]string {
			return map[string]string{"name": w.Name, "amount": fmt.Sprint(w.Amount)}
		},
		Defaults: func() map[string]string { return map[string]string{"kind": "a"} },
		Decode: func(form *Form, s Scope) (widgetInput, error) {
			in := widgetInput{
				Name:   form.String("name", "Name"),
				Amount: form.Float("amount", "Amount"),
				Season: s.SeasonID,
			}
			return in, form.Err()
		},
		Stats: func(ws []widget) []Stat {
			return []Stat{{Label: "Widgets", Value: fmt.Sprint(len(ws))}}
		},
		List: func(context.Context, *harvestapi.Client, Scope) ([]widget, error) {
			f.lists++
			if f.listErr != nil {
				return nil, f.listErr
			}
			return append([]widget(nil), f.items...), nil
		},
		Create: func(_ context.Context, _ *harvestapi.Client, in widgetInput) error {
			if f.createErr != nil {
				return f.createErr
			}
			f.nextID++
			f.created = append(f.created, in)
			f.items = append(f.items, widget{ID: f.nextID, Name: in.Name, Amount: in.Amount})
			return nil
		},
		Update: func(_ context.Context, _ *harvestapi.Client, id int64, in widgetInput) error {
			for i := range f.items {
				if f.items[i].ID == id {
					f.items[i].Name = in.Name
					f.items[i].Amount = in.Amount
					return nil
				}
			}
			return &harvestapi.APIError{StatusCode: 404, Kind: harvestapi.ErrNotFound}
		},
		Delete: func(_ context.Context, _ *harvestapi.Client, id int64) error {
			if f.deleteErr != nil {
				return f.deleteErr
			}
			for i := range f.items {
				if f.items[i].ID == id {
					f.items = append(f.items[:i], f.items[i+1:]...)
					return nil
				}
			}
			return fmt.Errorf("delete widget %d: %w", id, &harvestapi.APIError{StatusCode: 404, Kind: harvestapi.ErrNotFound})
		},
	}
}

func formOf(kv ...string) *Form {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return NewForm(v)
}

func TestLoadReadyAndFailed(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 1, Name: "a", Amount: 10}}}
	p := New(f.config(), nil, Scope{})
	assert.Equal(t, Loading, p.State())

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, Ready, p.State())
	assert.Len(t, p.Items(), 1)

	f.listErr = fmt.Errorf("%w: GET /widgets: refused", harvestapi.ErrNetwork)
	p = New(f.config(), nil, Scope{})
	require.Error(t, p.Load(context.Background()))
	assert.Equal(t, Failed, p.State())
	assert.Equal(t, "Failed to load widgets", p.Banner())
	assert.True(t, p.View().Failed)
	assert.Empty(t, p.View().Stats)
}

func TestCreateSuccessRefetches(t *testing.T) {
	f := &fakeWidgets{}
	p := New(f.config(), nil, Scope{SeasonID: 4})

	err := p.SubmitCreate(context.Background(), formOf("name", "Fuel", "amount", "1,200.50"))
	require.NoError(t, err)
	assert.Equal(t, Ready, p.State())
	assert.Equal(t, 1, f.lists)
	require.Len(t, p.Items(), 1)
	assert.InDelta(t, 1200.5, p.Items()[0].Amount, 1e-9)
	assert.Equal(t, int64(4), f.created[0].Season)
	assert.Nil(t, p.View().Dialog)
}

func TestCreateValidationKeepsDialogAndInput(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 1, Name: "a"}}}
	p := New(f.config(), nil, Scope{})

	err := p.SubmitCreate(context.Background(), formOf("name", "", "amount", "abc"))
	require.Error(t, err)

	var formErr *FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "Name is required, Amount must be a number", p.Banner())
	assert.Equal(t, DialogCreate, p.State())
	assert.Empty(t, f.created, "nothing is sent when the form is invalid")

	view := p.View()
	require.NotNil(t, view.Dialog)
	assert.Equal(t, "abc", view.Dialog.Fields[1].Value)
	assert.Len(t, view.Rows, 1, "list behind the dialog is still rendered")
}

func TestCreateServerErrorKeepsDialog(t *testing.T) {
	f := &fakeWidgets{createErr: &harvestapi.APIError{StatusCode: 400, Kind: harvestapi.ErrValidation, Detail: "Amount must be positive"}}
	p := New(f.config(), nil, Scope{})

	err := p.SubmitCreate(context.Background(), formOf("name", "Fuel", "amount", "-3"))
	require.Error(t, err)
	assert.ErrorIs(t, err, harvestapi.ErrValidation)
	assert.Equal(t, DialogCreate, p.State())
	assert.Equal(t, "Amount must be positive", p.Banner())
	assert.Equal(t, "Fuel", p.View().Dialog.Fields[0].Value)

	f.createErr = fmt.Errorf("%w: POST /widgets: timeout", harvestapi.ErrNetwork)
	p = New(f.config(), nil, Scope{})
	require.Error(t, p.SubmitCreate(context.Background(), formOf("name", "Fuel", "amount", "3")))
	assert.Equal(t, "Failed to save widget", p.Banner())
}

func TestOpenEditPrefillsAndSubmitUpdates(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 7, Name: "seed", Amount: 2.5}}}
	p := New(f.config(), nil, Scope{})
	require.NoError(t, p.Load(context.Background()))

	require.True(t, p.OpenEdit(7))
	assert.Equal(t, DialogEdit, p.State())
	view := p.View()
	require.NotNil(t, view.Dialog)
	assert.Equal(t, "/widgets/7", view.Dialog.Action)
	assert.Equal(t, "Edit widget", view.Dialog.Title)
	assert.Equal(t, "seed", view.Dialog.Fields[0].Value)

	require.NoError(t, p.SubmitEdit(context.Background(), 7, formOf("name", "seed2", "amount", "3")))
	assert.Equal(t, Ready, p.State())
	assert.Equal(t, "seed2", p.Items()[0].Name)
}

func TestOpenEditMissingRow(t *testing.T) {
	f := &fakeWidgets{}
	p := New(f.config(), nil, Scope{})
	require.NoError(t, p.Load(context.Background()))

	assert.False(t, p.OpenEdit(99))
	assert.Equal(t, Ready, p.State())
	assert.Equal(t, "That widget no longer exists", p.Banner())
}

func TestOpenCreateUsesDefaultsAndCancel(t *testing.T) {
	f := &fakeWidgets{}
	p := New(f.config(), nil, Scope{})
	p.OpenCreate()
	assert.Equal(t, DialogCreate, p.State())

	view := p.View()
	require.NotNil(t, view.Dialog)
	assert.Equal(t, "/widgets", view.Dialog.Action)
	kind := view.Dialog.Fields[2]
	assert.Equal(t, "select", kind.Input)
	assert.True(t, kind.Choices[0].Selected)
	assert.True(t, view.Dialog.Fields[3].Hidden, "rate only shows for kind b")

	p.Cancel()
	assert.Equal(t, Ready, p.State())
	assert.Nil(t, p.View().Dialog)
}

func TestDeleteIsIdempotentAtPageLevel(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}
	p := New(f.config(), nil, Scope{})

	require.NoError(t, p.Delete(context.Background(), 1))
	assert.Len(t, p.Items(), 1)

	require.NoError(t, p.Delete(context.Background(), 1))
	assert.Equal(t, Ready, p.State())
	assert.Empty(t, p.Banner())
	assert.Len(t, p.Items(), 1)
}

func TestDeleteFailureKeepsListWithBanner(t *testing.T) {
	f := &fakeWidgets{
		items:     []widget{{ID: 1, Name: "a"}},
		deleteErr: &harvestapi.APIError{StatusCode: 500, Kind: harvestapi.ErrServer},
	}
	p := New(f.config(), nil, Scope{})

	err := p.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, Ready, p.State())
	assert.Equal(t, "Failed to delete widget", p.Banner())
	assert.Len(t, p.Items(), 1)
}

func TestDeleteUnauthorizedSkipsReload(t *testing.T) {
	f := &fakeWidgets{deleteErr: &harvestapi.APIError{StatusCode: 401, Kind: harvestapi.ErrUnauthorized}}
	p := New(f.config(), nil, Scope{})

	err := p.Delete(context.Background(), 1)
	assert.True(t, harvestapi.IsSessionInvalid(err))
	assert.Equal(t, 0, f.lists)
}

func TestRunActionThenRefetchOnce(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 3}}}
	p := New(f.config(), nil, Scope{})

	require.NoError(t, p.Run(context.Background(), "recalc", 3))
	assert.Equal(t, []int64{3}, f.actions)
	assert.Equal(t, 1, f.lists)
	assert.Equal(t, Ready, p.State())

	f.actionErr = &harvestapi.APIError{StatusCode: 404, Kind: harvestapi.ErrNotFound, Detail: "Harvest season not found"}
	require.Error(t, p.Run(context.Background(), "recalc", 3))
	assert.Equal(t, "Harvest season not found", p.Banner())

	err := p.Run(context.Background(), "explode", 3)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestViewRows(t *testing.T) {
	f := &fakeWidgets{items: []widget{{ID: 5, Name: "combine", Amount: 1234.5}}}
	cfg := f.config()
	cfg.Scoped = true
	p := New(cfg, nil, Scope{SeasonID: 9})
	require.NoError(t, p.Load(context.Background()))

	view := p.View()
	assert.Equal(t, "/seasons/9/widgets", view.BasePath)
	require.Len(t, view.Rows, 1)
	row := view.Rows[0]
	assert.Equal(t, "/seasons/9/widgets/5/edit", row.EditHref)
	assert.Equal(t, "/seasons/9/widgets/5/delete", row.DeleteAction)
	assert.Equal(t, "/seasons/9/widgets/5/actions/recalc", row.Actions[0].Href)
	assert.Equal(t, "$1,234.50", row.Cells[1].Text)
	assert.True(t, row.Cells[1].Numeric)
	assert.Equal(t, "1", view.Stats[0].Value)
	assert.False(t, view.Empty)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "dialog_edit", DialogEdit.String())
	assert.Equal(t, "state(42)", State(42).String())
}
