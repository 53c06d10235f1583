package formatter

import (
	"fmt"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v2"
)

// newTableWriter creates and configures new table writer.
func newTableWriter(opts Opts) table.Writer {
	t := table.NewWriter()
	if !opts.Graphics {
		t.SetStyle(table.Style{Box: StyleWithoutGraphics})
	}
	return t
}

// handleColumnWidth handles width max value for tables columns.
func handleColumnWidth(t table.Writer, columns int, opts Opts) {
	if opts.ColumnWidthMax <= 0 {
		return
	}
	colWidthTransformer := text.Transformer(func(val interface{}) string {
		str := fmt.Sprintf("%v", val)
		widthMax := opts.ColumnWidthMax
		if utf8.RuneCountInString(str) > widthMax {
			first := string([]rune(str)[:widthMax])
			remaining := string([]rune(str)[widthMax:])
			return first + "+" + text.InsertEveryN(remaining, '+', widthMax-1)
		}
		return str
	})

	var configs []table.ColumnConfig
	for i := 1; i <= columns; i++ {
		configs = append(configs,
			table.ColumnConfig{
				Number:      i,
				Transformer: colWidthTransformer,
				WidthMax:    opts.ColumnWidthMax,
			},
		)
	}
	t.SetColumnConfigs(configs)
}

// RenderTable renders rows under the header.
func RenderTable(header []string, rows [][]string, opts Opts) string {
	t := newTableWriter(opts)
	headerRow := make(table.Row, len(header))
	for i, cell := range header {
		headerRow[i] = cell
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			tableRow[i] = cell
		}
		t.AppendRow(tableRow)
	}
	handleColumnWidth(t, len(header), opts)

	if opts.TableDialect == MarkdownTableDialect {
		return t.RenderMarkdown() + "\n"
	}
	return t.Render() + "\n"
}

// renderYaml renders rows as a list of mappings keyed by the header,
// keeping the column order.
func renderYaml(header []string, rows [][]string) (string, error) {
	items := make([]yaml.MapSlice, 0, len(rows))
	for _, row := range rows {
		item := make(yaml.MapSlice, 0, len(header))
		for i, key := range header {
			var value string
			if i < len(row) {
				value = row[i]
			}
			item = append(item, yaml.MapItem{Key: key, Value: value})
		}
		items = append(items, item)
	}
	out, err := yaml.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MakeOutput returns rows formatted depending on specified output format
// and formatting options.
func MakeOutput(header []string, rows [][]string, format Format, opts Opts) (string, error) {
	switch format {
	case TableFormat:
		return RenderTable(header, rows, opts), nil
	case YamlFormat:
		return renderYaml(header, rows)
	default:
		return "", fmt.Errorf("unknown output format %d", format)
	}
}
