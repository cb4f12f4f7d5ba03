package parser

// ParseLine evaluates one line with the default recovery settings.
func ParseLine(line string) (*Result, []Diagnostic) {
	return NewParser(line, DefaultOptions()).Parse()
}

// ParseLineWithOptions evaluates one line with explicit recovery settings.
func ParseLineWithOptions(line string, opts Options) (*Result, []Diagnostic) {
	return NewParser(line, opts).Parse()
}
