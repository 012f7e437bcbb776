package mcschema

import (
	"fmt"
	"strings"
)

// SQLiteDDL renders one CREATE TABLE per collection. Every table gets a text
// primary key; enums become CHECK constraints and arrays/objects are stored
// as JSON text.
func (s Schema) SQLiteDDL() string {
	var b strings.Builder
	for i, c := range s.Collections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", c.Name)
		b.WriteString("\tid TEXT PRIMARY KEY")
		for _, f := range c.Fields {
			fmt.Fprintf(&b, ",\n\t%s %s", f.Name, sqliteColumn(f))
		}
		b.WriteString("\n);\n")
	}
	return b.String()
}

func sqliteColumn(f Field) string {
	switch f.Kind {
	case KindDatetime:
		return "DATETIME"
	case KindBoolean:
		return "BOOLEAN NOT NULL DEFAULT 0"
	case KindArray:
		return "TEXT NOT NULL DEFAULT '[]'"
	case KindObject:
		return "TEXT NOT NULL DEFAULT '{}'"
	case KindEnum:
		if len(f.Values) == 0 {
			return "TEXT"
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		return fmt.Sprintf("TEXT NOT NULL DEFAULT %s CHECK (%s IN (%s))", quoted[0], f.Name, strings.Join(quoted, ", "))
	default:
		return "TEXT"
	}
}
