package export

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteTableSkipsEmptyTables(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	n, err := writeTable(f, "ratings", []string{"id", "stars"}, nil)
	if err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	if n != 0 {
		t.Errorf("rows written = %d, want 0", n)
	}
	idx, err := f.GetSheetIndex("ratings")
	if err != nil {
		t.Fatal(err)
	}
	if idx != -1 {
		t.Errorf("empty table got a sheet at index %d", idx)
	}
}

func TestWriteTableStripsTelegramID(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	fields := []string{"id", "telegram_id", "name", "phone"}
	records := [][]interface{}{
		{int64(1), int64(555001), "Ali", "+998901234567"},
		{int64(2), int64(555002), "Vali", "+998912345678"},
	}

	n, err := writeTable(f, "users", fields, records)
	if err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows written = %d, want 2", n)
	}

	rows, err := f.GetRows("users")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want header + 2", len(rows))
	}

	wantHeader := []string{"id", "name", "phone"}
	for i, name := range wantHeader {
		if i >= len(rows[0]) || rows[0][i] != name {
			t.Fatalf("header = %v, want %v", rows[0], wantHeader)
		}
	}
	for _, row := range rows {
		for _, cell := range row {
			if cell == "555001" || cell == "555002" || cell == "telegram_id" {
				t.Errorf("telegram_id leaked into sheet: %v", row)
			}
		}
	}
	if rows[1][1] != "Ali" || rows[2][1] != "Vali" {
		t.Errorf("data rows misaligned after strip: %v / %v", rows[1], rows[2])
	}
}
