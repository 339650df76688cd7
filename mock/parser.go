package mock

import "github.com/fwojciec/notegrab"

var _ notegrab.Parser = (*Parser)(nil)

// Parser is a mock implementation of notegrab.Parser.
type Parser struct {
	ParseFn func(html string) (*notegrab.Note, error)
}

func (p *Parser) Parse(html string) (*notegrab.Note, error) {
	return p.ParseFn(html)
}
