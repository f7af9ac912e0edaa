package export

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"crystal-petrol-bot/internal/domain/ports/adapter"
)

var _ adapter.Exporter = (*ExcelJob)(nil)

// ExcelJob dumps every base table of the database into one xlsx workbook,
// one sheet per table. Tables with zero rows get no sheet, and any
// telegram_id column is stripped before writing. The target file is
// overwritten on every run.
type ExcelJob struct {
	pool *pgxpool.Pool
	path string
	log  *zerolog.Logger
}

func NewExcelJob(pool *pgxpool.Pool, path string, logger *zerolog.Logger) *ExcelJob {
	return &ExcelJob{pool: pool, path: path, log: logger}
}

func (j *ExcelJob) Export(ctx context.Context) (string, error) {
	tables, err := j.tableNames(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	written := 0
	for _, table := range tables {
		n, err := j.writeSheet(ctx, f, table)
		if err != nil {
			return "", fmt.Errorf("export table %s: %w", table, err)
		}
		if n > 0 {
			written++
		}
	}

	// Drop the workbook's default sheet once real sheets exist.
	if written > 0 {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(j.path); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	j.log.Info().Int("tables", written).Str("path", j.path).Msg("export finished")
	return j.path, nil
}

func (j *ExcelJob) tableNames(ctx context.Context) ([]string, error) {
	const q = `
SELECT table_name
  FROM information_schema.tables
 WHERE table_schema = 'public' AND table_type = 'BASE TABLE';
`
	rows, err := j.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// writeSheet reads one table and hands it to writeTable. Returns the number
// of data rows written.
func (j *ExcelJob) writeSheet(ctx context.Context, f *excelize.File, table string) (int, error) {
	rows, err := j.pool.Query(ctx, fmt.Sprintf(`SELECT * FROM %q`, table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	fields := make([]string, len(descs))
	for i, fd := range descs {
		fields[i] = string(fd.Name)
	}

	var records [][]interface{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return 0, err
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return writeTable(f, table, fields, records)
}

// writeTable writes one table's rows to a sheet named after it. Tables with
// zero rows get no sheet, and any telegram_id column is stripped.
func writeTable(f *excelize.File, table string, fields []string, records [][]interface{}) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	skip := -1
	header := make([]interface{}, 0, len(fields))
	for i, name := range fields {
		if name == "telegram_id" {
			skip = i
			continue
		}
		header = append(header, name)
	}

	if _, err := f.NewSheet(table); err != nil {
		return 0, err
	}
	if err := setRow(f, table, 1, header); err != nil {
		return 0, err
	}
	for n, values := range records {
		cells := make([]interface{}, 0, len(values))
		for i, v := range values {
			if i == skip {
				continue
			}
			cells = append(cells, v)
		}
		if err := setRow(f, table, n+2, cells); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
