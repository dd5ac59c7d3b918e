package grid

import (
	"fmt"
	"time"
)

const (
	DefaultSheetName = "Bitscale grid only"
	RowDateLayout    = "Jan 2, 2006"
)

// Store owns every sheet and its rows. Row order inside a sheet is append
// order; the store never reorders. Row ids are unique across all sheets and
// never reused.
type Store struct {
	sheets  []Sheet
	rows    map[int][]Row
	active  int
	lastRow int
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		rows: make(map[int][]Row),
		now:  time.Now,
	}
}

// NewSeededStore returns a store with the default sheet and its sample
// contacts, active.
func NewSeededStore() *Store {
	s := NewStore()
	sheet := s.addSheet(DefaultSheetName)
	for _, row := range seedRows() {
		s.appendRow(sheet.ID, row)
	}
	return s
}

// SetClock replaces the clock used to date new rows.
func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func seedRows() []Row {
	return []Row{
		{
			ID:       1,
			Name:     "Mike Braham",
			Date:     "Oct 12, 2024",
			Company:  "Google",
			Website:  "google.com",
			LinkedIn: "linkedin.com/in/mike",
			Email:    "mike@google.com",
			Status:   StatusFound,
		},
		{
			ID:       2,
			Name:     "Alex Johnson",
			Date:     "Oct 12, 2024",
			Company:  "Amazon",
			Website:  "amazon.com",
			LinkedIn: "linkedin.com/in/alex",
			Email:    "alex@amazon.com",
			Status:   StatusFound,
		},
		{
			ID:       3,
			Name:     "Sarah Thompson",
			Date:     "Oct 13, 2024",
			Company:  "LinkedIn",
			Website:  "linkedin.com",
			LinkedIn: "linkedin.com/in/sarah",
			Email:    "",
			Status:   StatusMissing,
		},
	}
}

func (s *Store) addSheet(name string) Sheet {
	sheet := Sheet{ID: s.maxSheetID() + 1, Name: name}
	if sheet.Name == "" {
		sheet.Name = fmt.Sprintf("Sheet %d", sheet.ID)
	}
	s.sheets = append(s.sheets, sheet)
	s.rows[sheet.ID] = []Row{}
	s.active = sheet.ID
	return sheet
}

func (s *Store) maxSheetID() int {
	highest := 0
	for _, sheet := range s.sheets {
		if sheet.ID > highest {
			highest = sheet.ID
		}
	}
	return highest
}

// CreateSheet appends a new empty sheet named "Sheet <id>" and makes it
// active.
func (s *Store) CreateSheet() Sheet {
	return s.addSheet("")
}

func (s *Store) Sheets() []Sheet {
	return append([]Sheet(nil), s.sheets...)
}

func (s *Store) Sheet(id int) (Sheet, bool) {
	for _, sheet := range s.sheets {
		if sheet.ID == id {
			return sheet, true
		}
	}
	return Sheet{}, false
}

func (s *Store) ActiveSheetID() int {
	return s.active
}

// SetActive switches the active sheet. Unknown ids are ignored.
func (s *Store) SetActive(id int) bool {
	if _, ok := s.rows[id]; !ok {
		return false
	}
	s.active = id
	return true
}

// Rows returns a copy of the sheet's rows in append order.
func (s *Store) Rows(sheetID int) []Row {
	return append([]Row(nil), s.rows[sheetID]...)
}

func (s *Store) RowCount(sheetID int) int {
	return len(s.rows[sheetID])
}

func (s *Store) Row(sheetID, rowID int) (Row, bool) {
	idx := s.indexOf(sheetID, rowID)
	if idx < 0 {
		return Row{}, false
	}
	return s.rows[sheetID][idx], true
}

// nextRowID scans every sheet, then keeps the high-water mark so ids of
// deleted rows are not handed out again.
func (s *Store) nextRowID() int {
	highest := s.lastRow
	for _, rows := range s.rows {
		for _, row := range rows {
			if row.ID > highest {
				highest = row.ID
			}
		}
	}
	s.lastRow = highest + 1
	return s.lastRow
}

func (s *Store) appendRow(sheetID int, row Row) Row {
	if row.ID > s.lastRow {
		s.lastRow = row.ID
	}
	s.rows[sheetID] = append(s.rows[sheetID], row)
	return row
}

// AddRow appends a blank pending row in loading state. The caller is
// expected to call MarkLoaded once the simulated fetch settles.
func (s *Store) AddRow(sheetID int) (Row, bool) {
	if _, ok := s.rows[sheetID]; !ok {
		return Row{}, false
	}
	row := Row{
		ID:      s.nextRowID(),
		Date:    s.now().Format(RowDateLayout),
		Status:  StatusPending,
		Loading: true,
	}
	return s.appendRow(sheetID, row), true
}

// InjectRow appends a fully formed row. The id is always assigned here.
func (s *Store) InjectRow(sheetID int, row Row) (Row, bool) {
	if _, ok := s.rows[sheetID]; !ok {
		return Row{}, false
	}
	row.ID = s.nextRowID()
	return s.appendRow(sheetID, row), true
}

// MarkLoaded clears the loading flag. A row deleted in the meantime is left
// alone.
func (s *Store) MarkLoaded(sheetID, rowID int) bool {
	idx := s.indexOf(sheetID, rowID)
	if idx < 0 {
		return false
	}
	s.rows[sheetID][idx].Loading = false
	return true
}

func (s *Store) UpdateField(sheetID, rowID int, field Field, value string) bool {
	idx := s.indexOf(sheetID, rowID)
	if idx < 0 {
		return false
	}
	row := s.rows[sheetID][idx]
	if !row.set(field, value) {
		return false
	}
	s.rows[sheetID][idx] = row
	return true
}

// DeleteRows removes every row of the sheet whose id is in ids and returns
// how many went away.
func (s *Store) DeleteRows(sheetID int, ids map[int]struct{}) int {
	rows, ok := s.rows[sheetID]
	if !ok || len(ids) == 0 {
		return 0
	}
	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		if _, drop := ids[row.ID]; drop {
			continue
		}
		kept = append(kept, row)
	}
	removed := len(rows) - len(kept)
	s.rows[sheetID] = kept
	return removed
}

func (s *Store) indexOf(sheetID, rowID int) int {
	for i, row := range s.rows[sheetID] {
		if row.ID == rowID {
			return i
		}
	}
	return -1
}
