package page

// View is the template model of a resource page.
type View struct {
	Name     string
	Title    string
	Singular string
	BasePath string
	// SeasonID is set on pages scoped to a harvest season.
	SeasonID int64
	State    string
	Banner   string
	Failed   bool
	Empty    bool

	Headers []Header
	Rows    []Row
	Stats   []Stat
	Dialog  *Dialog
}

// Header is a table column heading.
type Header struct {
	Label   string
	Numeric bool
}

// Row is one rendered table row.
type Row struct {
	ID           int64
	Cells        []Cell
	EditHref     string
	DeleteAction string
	Actions      []RowAction
	Links        []Link
}

// Cell is a formatted table cell.
type Cell struct {
	Text    string
	Numeric bool
}

// RowAction posts an action verb for the row.
type RowAction struct {
	Label string
	Href  string
}

// Dialog is the create/edit modal.
type Dialog struct {
	Title      string
	Action     string
	Submit     string
	CancelHref string
	Fields     []FieldView
}

// FieldView is a dialog field with its current value.
type FieldView struct {
	Field
	Input   string
	Value   string
	Checked bool
	Hidden  bool
	Choices []Choice
}

// Choice is one select option.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}
