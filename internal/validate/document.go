// Package validate checks business input documents and settings before they
// reach the scorer. Untyped documents are checked against an embedded CUE
// schema; typed values are checked with struct tags.
package validate

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/bizhealth/internal/model"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

const (
	schemaFile       = "schemas/business_input.cue"
	inputDefinition  = "#BusinessInput"
	rootPath         = "$"
	channelListField = "availableChannels"
)

// fieldMessages describes each input constraint for people.
var fieldMessages = map[string]string{
	"totalCustomers":             "must be a whole number between 0 and 1000000",
	"averageProjectValue":        "must be a number between 0 and 10000000",
	"contactFrequencyPerYear":    "must be a number between 0 and 365",
	"hasReactivationProcess":     "must be true or false",
	"googleStarRating":           "must be a number between 1 and 5",
	"reviewResponseRate":         "must be a percentage between 0 and 100",
	"sharesReviewsOnSocialMedia": "must be true or false",
	"dailyCalls":                 "must be a whole number between 0 and 10000",
	"callAnswerRate":             "must be a percentage between 0 and 100",
	"hasAfterHoursHandling":      "must be true or false",
	"availableChannels":          "must be a list of 1 to 5 distinct channels",
	"averageResponseTimeHours":   "must be a number of hours between 0 and 168",
	"monthlyWebsiteVisitors":     "must be a whole number between 0 and 100000000",
	"conversionRate":             "must be a percentage between 0 and 100",
	"isMobileOptimized":          "must be true or false",
	"hasAutomatedFollowUp":       "must be true or false",
	"websiteLoadTime":            "must be a number of seconds between 0 and 60",
}

// Validator validates input documents and typed values. It is safe for
// concurrent use.
type Validator struct {
	mu     sync.Mutex // guards ctx; a cue.Context is not safe for concurrent use
	ctx    *cue.Context
	schema cue.Value

	structs *validator.Validate
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	src, err := schemaFS.ReadFile(schemaFile)
	if err != nil {
		return nil, eris.Wrap(err, "validate: read schema")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(src, cue.Filename(schemaFile))
	if err := schema.Err(); err != nil {
		return nil, eris.Wrap(err, "validate: compile schema")
	}
	def := schema.LookupPath(cue.ParsePath(inputDefinition))
	if !def.Exists() {
		return nil, eris.Errorf("validate: schema has no %s definition", inputDefinition)
	}

	return &Validator{
		ctx:     ctx,
		schema:  def,
		structs: newStructValidator(),
	}, nil
}

// ValidateDocument validates an untyped input document and decodes it.
//
// doc may be raw JSON or YAML ([]byte, json.RawMessage, string) or an
// already-decoded value such as map[string]any. Every violation is returned
// together in a *ValidationError.
func (v *Validator) ValidateDocument(doc any) (*model.BusinessInputData, error) {
	data, err := normalize(doc)
	if err != nil {
		return nil, err
	}

	if err := v.checkSchema(data); err != nil {
		return nil, err
	}

	var in model.BusinessInputData
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, eris.Wrap(err, "validate: decode input")
	}
	return &in, nil
}

func (v *Validator) checkSchema(data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.ctx.CompileBytes(data, cue.Filename("input.json"))
	if err := val.Err(); err != nil {
		return &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "must be a JSON or YAML object"}}}
	}
	if val.IncompleteKind() != cue.StructKind {
		return &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "must be an object"}}}
	}

	unified := v.schema.Unify(val)
	err := unified.Validate(cue.Concrete(true), cue.All())
	if err == nil {
		return nil
	}

	var c collector
	for _, e := range cueerrors.Errors(err) {
		path := joinPath(e.Path())
		format, args := e.Msg()
		c.add(path, humanize(e.Path(), fmt.Sprintf(format, args...)))
	}
	return c.err()
}

// normalize turns doc into JSON bytes. Raw bytes are parsed as YAML, which
// also accepts JSON.
func normalize(doc any) ([]byte, error) {
	var raw []byte
	switch d := doc.(type) {
	case nil:
		return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "is required"}}}
	case []byte:
		raw = d
	case json.RawMessage:
		raw = d
	case string:
		raw = []byte(d)
	default:
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "must be a JSON-compatible object"}}}
		}
		return data, nil
	}

	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "must be a JSON or YAML object"}}}
	}
	if decoded == nil {
		return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "is required"}}}
	}
	data, err := json.Marshal(decoded)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Path: rootPath, Message: "must be a JSON or YAML object"}}}
	}
	return data, nil
}

// joinPath renders a CUE path as "availableChannels[2]".
func joinPath(parts []string) string {
	if len(parts) == 0 {
		return rootPath
	}
	var b strings.Builder
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil && i > 0 {
			b.WriteString("[" + p + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func humanize(path []string, cueMsg string) string {
	if strings.Contains(cueMsg, "required") || strings.Contains(cueMsg, "incomplete value") {
		return "is required"
	}
	if len(path) == 0 {
		return cueMsg
	}

	field := path[0]
	if field == channelListField {
		switch {
		case len(path) > 1:
			return "must be one of " + strings.Join(channelNames(), ", ")
		case strings.Contains(cueMsg, "UniqueItems"):
			return "must not contain duplicate channels"
		case strings.Contains(cueMsg, "MinItems"):
			return "must contain at least 1 channel"
		case strings.Contains(cueMsg, "MaxItems"):
			return "must contain at most 5 channels"
		}
	}
	if msg, ok := fieldMessages[field]; ok && len(path) == 1 {
		return msg
	}
	return cueMsg
}

func channelNames() []string {
	all := model.AllChannels()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}
