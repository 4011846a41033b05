package mock

import "github.com/fwojciec/newsquote"

var _ newsquote.Converter = (*Converter)(nil)

// Converter is a mock implementation of newsquote.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
