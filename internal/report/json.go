package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bizhealth/internal/model"
)

// JSON writes the result as indented JSON in its storage shape.
type JSON struct{}

func (*JSON) ContentType() string { return "application/json" }

func (*JSON) Render(w io.Writer, r *model.BusinessHealthResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(r), "report: encode json")
}
