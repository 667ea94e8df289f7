package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// WriteHistoryCSV writes one row per analysis with totals and per-pillar
// scores and revenue impacts.
func WriteHistoryCSV(w io.Writer, history []model.BusinessHealthResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader()); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for i := range history {
		if err := cw.Write(historyRow(&history[i])); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", history[i].ID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
