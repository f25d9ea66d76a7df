package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/platehub/backoffice/internal/shared"
)

// WriteCSV serialises the report table. Amounts stay unformatted so
// spreadsheets read them as numbers.
func WriteCSV(w io.Writer, rep *Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(rep.Columns); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if err := writer.Write(texts(row)); err != nil {
			return err
		}
	}
	if len(rep.Rows) > 0 && len(rep.Totals) > 0 {
		if err := writer.Write(texts(rep.Totals)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func texts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
	}
	return out
}

// Filename names an export file, e.g. sales-2024-03-01-2024-03-07.csv.
func Filename(rep *Report, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", rep.Type, rep.Range.From.Format(shared.DateLayout), rep.Range.To.Format(shared.DateLayout), ext)
}
