package formatter

const (
	tableFormatStr      = "table"
	tableFormatShortStr = "t"
	yamlFormatStr       = "yaml"
	yamlFormatShortStr  = "y"
)

// Format defines a set of supported output format.
type Format int

const (
	TableFormat Format = iota
	YamlFormat
)

// ParseFormat parses a output format string representation.
func ParseFormat(str string) (Format, bool) {
	switch str {
	case tableFormatStr, tableFormatShortStr:
		return TableFormat, true
	case yamlFormatStr, yamlFormatShortStr:
		return YamlFormat, true
	}
	return TableFormat, false
}

// String returns a string representation of the output format.
func (l Format) String() string {
	switch l {
	case TableFormat:
		return tableFormatStr
	case YamlFormat:
		return yamlFormatStr
	default:
		panic("Unknown output format")
	}
}

// TableDialect defines a set of supported table dialect.
type TableDialect int

const (
	DefaultTableDialect TableDialect = iota
	MarkdownTableDialect
)

const (
	defaultTableDialectStr  = "default"
	markdownTableDialectStr = "markdown"
)

// ParseTableDialect parses a table dialect string representation.
func ParseTableDialect(str string) (TableDialect, bool) {
	switch str {
	case defaultTableDialectStr:
		return DefaultTableDialect, true
	case markdownTableDialectStr:
		return MarkdownTableDialect, true
	}
	return DefaultTableDialect, false
}

// String returns a string representation of the table dialect.
func (f TableDialect) String() string {
	switch f {
	case DefaultTableDialect:
		return defaultTableDialectStr
	case MarkdownTableDialect:
		return markdownTableDialectStr
	default:
		panic("Unknown table dialect")
	}
}
