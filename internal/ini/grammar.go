package ini

import (
	"bytes"

	"github.com/zostay/gordy/v2"
	"github.com/zostay/gordy/v2/match"
	"github.com/zostay/gordy/v2/parser"
)

type entryKind int

const (
	entryBlank entryKind = iota
	entrySection
	entryPair
)

// entry is one line of the file.
type entry struct {
	kind entryKind
	name string
	pair Pair
}

var (
	documentInfo = &parser.Info{Name: "document"}
	sectionInfo  = &parser.Info{Name: "section"}
	pairInfo     = &parser.Info{Name: "pair"}
	eolInfo      = &parser.Info{Name: "end_of_line"}
)

var (
	blank       = match.In[byte](' ', '\t')
	commentByte = match.In[byte](';', '#')
	separator   = match.In[byte]('=', ':')
	lineByte    = match.NoneOf(match.In[byte]('\r', '\n'))
	keyByte     = lineByte.Except(separator, commentByte)
	bareByte    = lineByte.Except(commentByte)
	quotedByte  = lineByte.Except(match.Is[byte]('"'))
)

var (
	optionalCR = match.Optional(func(in parser.BytesInput) (byte, error) {
		return match.Eat(in, '\r')
	})

	optionalComment = match.Optional(func(in parser.BytesInput) ([]byte, error) {
		if _, err := match.EatIf(in, commentByte); err != nil {
			return nil, err
		}
		return match.TakeWhile(in, lineByte)
	})

	value = match.Switch(
		match.WhenPeek(
			func(in parser.BytesInput) (byte, error) { return match.Peek(in, '"') },
			quoted,
		),
		match.Otherwise(bare),
	)

	line = match.Switch(
		match.When(trailer, func(parser.BytesInput, struct{}) (entry, error) {
			return entry{kind: entryBlank}, nil
		}),
		match.WhenPeek(sectionStart, section),
		match.Otherwise(pair),
	)
)

// endOfLine matches a line ending, with or without a carriage return, or the
// end of input.
func endOfLine(in parser.BytesInput) (struct{}, error) {
	return parser.Run(in, eolInfo, func() (struct{}, error) {
		if in.IsEOF() {
			return struct{}{}, nil
		}
		if _, err := optionalCR(in); err != nil {
			return struct{}{}, err
		}
		_, err := match.Eat(in, '\n')
		return struct{}{}, err
	})
}

// trailer matches what may follow the content of any line: blanks, a comment
// and the end of the line. On its own it is a blank line.
func trailer(in parser.BytesInput) (struct{}, error) {
	if _, err := match.SkipWhile(in, blank); err != nil {
		return struct{}{}, err
	}
	if _, err := optionalComment(in); err != nil {
		return struct{}{}, err
	}
	return endOfLine(in)
}

func sectionStart(in parser.BytesInput) (byte, error) {
	if _, err := match.SkipWhile(in, blank); err != nil {
		return 0, err
	}
	return match.Eat(in, '[')
}

func section(in parser.BytesInput, _ byte) (entry, error) {
	return parser.Run(in, sectionInfo, func() (entry, error) {
		if _, err := match.SkipWhile(in, blank); err != nil {
			return entry{}, err
		}

		name, err := match.DelimitedSome(in, '[', lineByte, ']')
		if err != nil {
			return entry{}, err
		}

		if _, err := trailer(in); err != nil {
			return entry{}, err
		}

		return entry{kind: entrySection, name: string(bytes.TrimSpace(name))}, nil
	})
}

func quoted(in parser.BytesInput, _ byte) (string, error) {
	s, err := match.Delimited(in, '"', quotedByte, '"')
	return string(s), err
}

func bare(in parser.BytesInput) (string, error) {
	s, err := match.TakeWhile(in, bareByte)
	return string(bytes.TrimSpace(s)), err
}

func pair(in parser.BytesInput) (entry, error) {
	return parser.Run(in, pairInfo, func() (entry, error) {
		if _, err := match.SkipWhile(in, blank); err != nil {
			return entry{}, err
		}

		key, err := match.TakeSomeWhile(in, keyByte)
		if err != nil {
			return entry{}, err
		}

		if _, err := match.EatIf(in, separator); err != nil {
			return entry{}, err
		}

		if _, err := match.SkipWhile(in, blank); err != nil {
			return entry{}, err
		}

		v, err := value(in)
		if err != nil {
			return entry{}, err
		}

		if _, err := trailer(in); err != nil {
			return entry{}, err
		}

		return entry{
			kind: entryPair,
			pair: Pair{Key: string(bytes.TrimSpace(key)), Value: v},
		}, nil
	})
}

func document(in parser.BytesInput) (*Document, error) {
	return parser.Run(in, documentInfo, func() (*Document, error) {
		doc := &Document{}
		for !in.IsEOF() {
			e, err := line(in)
			if err != nil {
				return nil, err
			}
			doc.add(e)
		}
		return doc, nil
	})
}

// Parse reads a complete INI document from in. Use parser.NewBytes for a
// document already in memory and parser.NewFile to stream one from a reader.
func Parse(in parser.BytesInput, opts ...gordy.Option) (*Document, error) {
	return gordy.Parse(in, document, opts...)
}
