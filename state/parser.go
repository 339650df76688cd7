package state

import (
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/jsobj"
)

// Ensure Parser implements notegrab.Parser at compile time.
var _ notegrab.Parser = (*Parser)(nil)

// Parser extracts notes from the page state embedded in note pages.
// Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	extractor *jsobj.Extractor
	assembler Assembler
}

// Option configures a Parser.
type Option func(*Parser)

// WithVariable sets the global variable holding the page state.
// Defaults to jsobj.DefaultVariable.
func WithVariable(name string) Option {
	return func(p *Parser) {
		p.extractor = jsobj.NewExtractor(name)
	}
}

// WithLocation sets the time zone used for publish dates.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		p.assembler.Location = loc
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		extractor: jsobj.NewExtractor(jsobj.DefaultVariable),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the note from page HTML.
func (p *Parser) Parse(html string) (*notegrab.Note, error) {
	root, err := p.extractor.Decode(html)
	if err != nil {
		return nil, err
	}

	entity, err := ResolveEntity(root)
	if err != nil {
		return nil, err
	}

	return p.assembler.Assemble(entity), nil
}
