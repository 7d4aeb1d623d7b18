package csv

// defaultComma is the field delimiter of the PAN datasets.
const defaultComma = ','

// Loader reads delimited text files into record tables.
type Loader struct {
	comma rune
}

// Option configures a Loader.
type Option func(*Loader)

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(l *Loader) {
		l.comma = r
	}
}

// NewLoader creates a Loader for comma-separated files.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{comma: defaultComma}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
