package adapter

import "context"

// Exporter snapshots every base table into a spreadsheet file and returns
// the file path. The file at that path is overwritten on every run.
type Exporter interface {
	Export(ctx context.Context) (string, error)
}
