package tenant

import (
	"regexp"
	"strings"

	"corptransit/internal/domain"
)

var identPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// SchemaHandle addresses one tenant partition. It can only be built
// through ParseSchema, so any schema name that reaches SQL has passed
// the identifier check. Repositories must refuse a zero handle.
type SchemaHandle struct {
	name string
}

// ParseSchema validates an identifier before it may be interpolated
// into partition-scoped SQL. This is the hard boundary against
// identifier injection; there is no other constructor.
func ParseSchema(name string) (SchemaHandle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SchemaHandle{}, domain.ValidationError{Field: "schema", Msg: "schema name kosong"}
	}
	if !identPattern.MatchString(name) {
		return SchemaHandle{}, domain.ValidationError{Field: "schema", Msg: "unsafe schema identifier"}
	}
	return SchemaHandle{name: name}, nil
}

func (h SchemaHandle) Name() string { return h.name }

func (h SchemaHandle) IsZero() bool { return h.name == "" }

// Table returns the backtick-quoted qualified table name. The schema
// part already passed ParseSchema; table names are literals from this
// codebase, never user input.
func (h SchemaHandle) Table(table string) string {
	return "`" + h.name + "`.`" + table + "`"
}
