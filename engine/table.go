package engine

import (
	"strconv"
	"strings"
)

// FormatValue renders a value for the standard output sink using the state's
// formatting rules.  Lists of records render as a table, records as a
// two-column table, plain lists one item per line, scalars as their display
// form.
func FormatValue(state *EngineState, v Value) string {
	switch v.Kind {
	case KindList:
		if cols := tableColumns(v.List); cols != nil {
			return formatTable(state, cols, v.List)
		}
		lines := make([]string, len(v.List))
		for i, x := range v.List {
			lines[i] = displayCell(state, x)
		}
		return strings.Join(lines, "\n")
	case KindRecord:
		rows := make([]Value, 0, len(v.Rec.Keys))
		for i, k := range v.Rec.Keys {
			rec := &Record{}
			rec.Set("key", StringValue(k, v.Span))
			rec.Set("value", v.Rec.Vals[i])
			rows = append(rows, RecordValue(rec, v.Span))
		}
		return formatTable(state, []string{"key", "value"}, rows)
	case KindFloat:
		return displayCell(state, v)
	default:
		return v.String()
	}
}

// tableColumns returns the union of record keys, in first-seen order, or nil
// if the list holds anything that is not a record.
func tableColumns(xs []Value) []string {
	if len(xs) == 0 {
		return nil
	}
	var cols []string
	seen := map[string]bool{}
	for _, x := range xs {
		if x.Kind != KindRecord {
			return nil
		}
		for _, k := range x.Rec.Keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

func formatTable(state *EngineState, cols []string, rows []Value) string {
	header := cols
	if state.Config.TableIndex {
		header = append([]string{"#"}, cols...)
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for i, row := range rows {
		line := make([]string, 0, len(header))
		if state.Config.TableIndex {
			line = append(line, strconv.Itoa(i))
		}
		for _, col := range cols {
			if v, ok := row.Rec.Get(col); ok {
				line = append(line, displayCell(state, v))
			} else {
				line = append(line, "")
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(header))
	for _, line := range cells {
		for i, c := range line {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var sb strings.Builder
	for i, line := range cells {
		for j, c := range line {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(c)
			if j < len(line)-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-len(c)))
			}
		}
		sb.WriteByte('\n')
		if i == 0 {
			for j, w := range widths {
				if j > 0 {
					sb.WriteString("  ")
				}
				sb.WriteString(strings.Repeat("-", w))
			}
			sb.WriteByte('\n')
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func displayCell(state *EngineState, v Value) string {
	if v.Kind == KindFloat && state.Config.FloatPrecision >= 0 {
		return strconv.FormatFloat(v.Flt, 'f', state.Config.FloatPrecision, 64)
	}
	return v.String()
}
