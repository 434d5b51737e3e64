// Package view holds the directory-independent presentation state:
// view mode, visible columns and the active sort.
package view

// Mode selects how a listing is presented.
type Mode string

const (
	ModeList    Mode = "list"
	ModeIcons   Mode = "icons"
	ModeColumns Mode = "columns"
	ModeGallery Mode = "gallery"
)

func ValidMode(m Mode) bool {
	switch m {
	case ModeList, ModeIcons, ModeColumns, ModeGallery:
		return true
	}
	return false
}

// Column identifies a listing column.
type Column string

const (
	ColumnName         Column = "name"
	ColumnSize         Column = "size"
	ColumnKind         Column = "kind"
	ColumnDateModified Column = "dateModified"
	ColumnDateCreated  Column = "dateCreated"
)

// columnOrder fixes the presentation order; name always leads.
var columnOrder = []Column{
	ColumnName, ColumnSize, ColumnKind, ColumnDateModified, ColumnDateCreated,
}

func ValidColumn(c Column) bool {
	for _, known := range columnOrder {
		if known == c {
			return true
		}
	}
	return false
}

// Direction orders a sort.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

type State struct {
	mode          Mode
	visible       map[Column]bool
	sortColumn    Column
	sortDirection Direction
}

// NewState returns the default presentation: list mode, name/size/kind/
// modified columns, ascending sort by name.
func NewState() *State {
	return &State{
		mode: ModeList,
		visible: map[Column]bool{
			ColumnName:         true,
			ColumnSize:         true,
			ColumnKind:         true,
			ColumnDateModified: true,
		},
		sortColumn:    ColumnName,
		sortDirection: Ascending,
	}
}

func (s *State) Mode() Mode {
	return s.mode
}

// SetMode switches the view mode; unknown modes are ignored.
func (s *State) SetMode(mode Mode) {
	if ValidMode(mode) {
		s.mode = mode
	}
}

// VisibleColumns returns the active columns in presentation order.
func (s *State) VisibleColumns() []Column {
	columns := make([]Column, 0, len(s.visible))
	for _, column := range columnOrder {
		if s.visible[column] {
			columns = append(columns, column)
		}
	}
	return columns
}

func (s *State) IsColumnVisible(column Column) bool {
	return s.visible[column]
}

// ToggleColumn flips a column's visibility. The name column is
// mandatory and cannot be hidden; unknown columns are ignored.
func (s *State) ToggleColumn(column Column) {
	if column == ColumnName || !ValidColumn(column) {
		return
	}
	if s.visible[column] {
		delete(s.visible, column)
	} else {
		s.visible[column] = true
	}
}

// SetColumns replaces the visible set. Name is always kept.
func (s *State) SetColumns(columns []Column) {
	s.visible = map[Column]bool{ColumnName: true}
	for _, column := range columns {
		if ValidColumn(column) {
			s.visible[column] = true
		}
	}
	if !s.visible[s.sortColumn] {
		s.visible[s.sortColumn] = true
	}
}

func (s *State) SortColumn() Column {
	return s.sortColumn
}

func (s *State) SortDirection() Direction {
	return s.sortDirection
}

// SetSort selects the sort key and direction. The sort target must be
// visible, so an absent column is added to the visible set.
func (s *State) SetSort(column Column, direction Direction) {
	if !ValidColumn(column) {
		return
	}
	if direction != Descending {
		direction = Ascending
	}
	s.sortColumn = column
	s.sortDirection = direction
	s.visible[column] = true
}

// DefaultColumnWidths maps a view mode to advisory column-width hints in
// character cells. Renderers are free to ignore them.
func DefaultColumnWidths(mode Mode) map[Column]int {
	switch mode {
	case ModeIcons:
		return map[Column]int{ColumnName: 20}
	case ModeGallery:
		return map[Column]int{ColumnName: 28}
	case ModeColumns:
		return map[Column]int{
			ColumnName:         28,
			ColumnSize:         8,
			ColumnKind:         12,
			ColumnDateModified: 16,
			ColumnDateCreated:  16,
		}
	default:
		return map[Column]int{
			ColumnName:         36,
			ColumnSize:         8,
			ColumnKind:         12,
			ColumnDateModified: 16,
			ColumnDateCreated:  16,
		}
	}
}

// Snapshot is the persisted shape of a view state.
type Snapshot struct {
	Mode           string   `json:"mode"`
	VisibleColumns []string `json:"visibleColumns"`
	SortColumn     string   `json:"sortColumn"`
	SortDirection  string   `json:"sortDirection"`
}

func (s *State) Snapshot() Snapshot {
	visible := s.VisibleColumns()
	columns := make([]string, len(visible))
	for i, column := range visible {
		columns[i] = string(column)
	}
	return Snapshot{
		Mode:           string(s.mode),
		VisibleColumns: columns,
		SortColumn:     string(s.sortColumn),
		SortDirection:  string(s.sortDirection),
	}
}

// Restore replaces the state with a previously saved snapshot. A
// malformed snapshot leaves the defaults in place and reports false.
func (s *State) Restore(snapshot Snapshot) bool {
	if !ValidMode(Mode(snapshot.Mode)) || !ValidColumn(Column(snapshot.SortColumn)) {
		return false
	}
	direction := Direction(snapshot.SortDirection)
	if direction != Ascending && direction != Descending {
		return false
	}
	visible := map[Column]bool{ColumnName: true}
	for _, name := range snapshot.VisibleColumns {
		column := Column(name)
		if !ValidColumn(column) {
			return false
		}
		visible[column] = true
	}
	s.mode = Mode(snapshot.Mode)
	s.visible = visible
	s.sortColumn = Column(snapshot.SortColumn)
	s.sortDirection = direction
	s.visible[s.sortColumn] = true
	return true
}
