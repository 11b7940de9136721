// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/ledger"
	"github.com/pacioli/pacioli/lib/scanner"
)

// DefaultTerminator ends parsing when it appears alone on a line.
const DefaultTerminator = "QUIT"

// Options configures the parser.
type Options struct {
	// LenientTags turns popping an inactive tag into a no-op instead of
	// an error.
	LenientTags bool
	// Terminator overrides DefaultTerminator.
	Terminator string
}

// ParseError is returned for any line which cannot be parsed. Parsing
// does not resume after an error.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e ParseError) Error() string {
	var s strings.Builder
	if len(e.Path) > 0 {
		s.WriteString(e.Path)
		s.WriteString(":")
	}
	fmt.Fprintf(&s, "%d: %v\n%s", e.Line, e.Err, e.Text)
	return s.String()
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// Parser turns ledger lines into items. Declarations are applied to the
// account tree as they are parsed, so that later references can be
// validated.
type Parser struct {
	tree *account.Tree
	opts Options
	path string

	// tags is the active tag set, in push order.
	tags []string
	pads *ledger.Pads
	// current is the transaction absorbing indented postings.
	current *ledger.Transaction
	result  ledger.Ledger
	line    int
	done    bool
}

// New creates a new parser.
func New(tree *account.Tree, opts Options) *Parser {
	if opts.Terminator == "" {
		opts.Terminator = DefaultTerminator
	}
	return &Parser{
		tree: tree,
		opts: opts,
		pads: ledger.NewPads(),
	}
}

// FromPath parses the file at the given path.
func FromPath(tree *account.Tree, path string, opts Options) (l ledger.Ledger, err error) {
	f, err := os.Open(path)
	if err != nil {
		return ledger.Ledger{}, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	p := New(tree, opts)
	p.path = path
	return p.Parse(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
}

// Parse parses the whole stream and returns the items in source order.
func (p *Parser) Parse(r io.Reader) (ledger.Ledger, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		if err := p.ParseLine(s.Text()); err != nil {
			return ledger.Ledger{}, err
		}
	}
	if err := s.Err(); err != nil {
		return ledger.Ledger{}, err
	}
	return p.Finish(), nil
}

// ParseLine parses the next line.
func (p *Parser) ParseLine(text string) error {
	p.line++
	if p.done {
		return nil
	}
	if err := p.parseLine(text); err != nil {
		return ParseError{Path: p.path, Line: p.line, Text: text, Err: err}
	}
	return nil
}

// Finish completes a pending transaction and returns the items parsed
// so far, in source order.
func (p *Parser) Finish() ledger.Ledger {
	p.flush()
	return p.result
}

func (p *Parser) parseLine(text string) error {
	if len(text) > 0 && strings.ContainsRune(";#%", rune(text[0])) {
		return nil
	}
	body, comment := splitComment(text)
	body = strings.TrimRight(body, " \t\r")
	if body == "" {
		return nil
	}
	if body == p.opts.Terminator {
		p.flush()
		p.done = true
		return nil
	}
	if scanner.IsWhitespace(rune(body[0])) {
		return p.parseContinuation(body, comment)
	}
	p.flush()
	return p.parseDirective(body, comment)
}

func (p *Parser) flush() {
	if p.current != nil {
		p.result.Add(p.current)
		p.current = nil
	}
}

func splitComment(text string) (string, string) {
	body, comment, _ := strings.Cut(text, ";")
	return body, strings.TrimSpace(comment)
}

func (p *Parser) parseDirective(body, comment string) error {
	s, err := scanner.New(body)
	if err != nil {
		return err
	}
	tok, err := s.ReadToken()
	if err != nil {
		return err
	}
	switch tok {
	case "pushtags":
		return p.pushTags(s)
	case "poptags":
		return p.popTags(s)
	}
	date, effective, err := parseDates(tok)
	if err != nil {
		return err
	}
	if err := s.SkipWhitespace1(); err != nil {
		return err
	}
	keyword, err := s.ReadToken()
	if err != nil {
		return fmt.Errorf("expected directive: %w", err)
	}
	if effective != nil && keyword != "*" && keyword != "!" {
		return fmt.Errorf("effective date is only valid on transactions")
	}
	if err := s.SkipWhitespace1(); err != nil {
		return err
	}
	h := ledger.Header{At: date, Seq: p.line}
	switch keyword {
	case "open":
		return p.parseOpen(s, h)
	case "close":
		return p.parseClose(s, h)
	case "balance":
		return p.parseCheck(s, h, comment)
	case "pad":
		return p.parsePad(s, h)
	case "*", "!":
		p.pads.Clear()
		t := &ledger.Transaction{
			Header:        h,
			EffectiveDate: date,
			Description:   strings.TrimSpace(s.Rest()),
			Comment:       comment,
			Tags:          append([]string(nil), p.tags...),
			Pending:       keyword == "!",
		}
		if effective != nil {
			t.EffectiveDate = *effective
		}
		p.current = t
		return nil
	}
	return fmt.Errorf("unknown directive %q", keyword)
}

func parseDates(tok string) (time.Time, *time.Time, error) {
	primary, rest, found := strings.Cut(tok, "[=")
	date, err := parseDate(primary)
	if err != nil {
		return date, nil, err
	}
	if !found {
		return date, nil, nil
	}
	if !strings.HasSuffix(rest, "]") {
		return date, nil, fmt.Errorf("invalid effective date %q", tok)
	}
	effective, err := parseDate(strings.TrimSuffix(rest, "]"))
	if err != nil {
		return date, nil, err
	}
	return date, &effective, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return d, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

func (p *Parser) parseOpen(s *scanner.Scanner, h ledger.Header) error {
	name, err := s.ReadToken()
	if err != nil {
		return fmt.Errorf("expected account: %w", err)
	}
	assets, err := readWords(s)
	if err != nil {
		return err
	}
	if _, err := p.tree.Open(name, h.At, assets); err != nil {
		return err
	}
	p.result.Add(&ledger.Open{Header: h, Account: name, Assets: assets})
	return nil
}

func (p *Parser) parseClose(s *scanner.Scanner, h ledger.Header) error {
	name, err := p.readAccount(s)
	if err != nil {
		return err
	}
	if err := expectEnd(s); err != nil {
		return err
	}
	if err := p.tree.Close(name, h.At); err != nil {
		return err
	}
	p.result.Add(&ledger.Close{Header: h, Account: name})
	return nil
}

func (p *Parser) parseCheck(s *scanner.Scanner, h ledger.Header, comment string) error {
	name, err := p.readAccount(s)
	if err != nil {
		return err
	}
	if err := s.SkipWhitespace1(); err != nil {
		return err
	}
	a, err := readAmount(s)
	if err != nil {
		return err
	}
	if err := expectEnd(s); err != nil {
		return err
	}
	p.result.Add(&ledger.Check{
		Header:  h,
		Account: name,
		Amount:  a,
		Pad:     p.pads.Resolve(name, h.At),
		Comment: comment,
	})
	return nil
}

func (p *Parser) parsePad(s *scanner.Scanner, h ledger.Header) error {
	name, err := p.readAccount(s)
	if err != nil {
		return err
	}
	if err := s.SkipWhitespace1(); err != nil {
		return err
	}
	target, err := p.readAccount(s)
	if err != nil {
		return err
	}
	if err := expectEnd(s); err != nil {
		return err
	}
	pad := &ledger.Pad{Header: h, Account: name, Target: target}
	p.pads.Register(pad)
	p.result.Add(pad)
	return nil
}

func (p *Parser) pushTags(s *scanner.Scanner) error {
	tags, err := readWords(s)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return fmt.Errorf("expected at least one tag")
	}
	for _, tag := range tags {
		p.tags = addTag(p.tags, tag)
	}
	return nil
}

func (p *Parser) popTags(s *scanner.Scanner) error {
	tags, err := readWords(s)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return fmt.Errorf("expected at least one tag")
	}
	for _, tag := range tags {
		i := indexOf(p.tags, tag)
		if i < 0 {
			if p.opts.LenientTags {
				continue
			}
			return fmt.Errorf("tag %q is not active", tag)
		}
		p.tags = append(p.tags[:i:i], p.tags[i+1:]...)
	}
	return nil
}

func (p *Parser) parseContinuation(body, comment string) error {
	if p.current == nil {
		return fmt.Errorf("posting outside transaction")
	}
	s, err := scanner.New(body)
	if err != nil {
		return err
	}
	if err := s.SkipWhitespace(); err != nil {
		return err
	}
	tok, err := s.ReadToken()
	if err != nil {
		return err
	}
	if tok == "tags" {
		tags, err := readWords(s)
		if err != nil {
			return err
		}
		for _, tag := range tags {
			p.current.Tags = addTag(p.current.Tags, tag)
		}
		return nil
	}
	posting, err := p.parsePosting(s, tok, comment)
	if err != nil {
		return err
	}
	p.current.Postings = append(p.current.Postings, posting)
	return nil
}

func (p *Parser) parsePosting(s *scanner.Scanner, name, comment string) (*ledger.Posting, error) {
	parenthesized := strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")")
	if parenthesized {
		name = name[1 : len(name)-1]
	}
	if _, err := p.tree.Get(name); err != nil {
		return nil, err
	}
	posting := &ledger.Posting{Account: name, Comment: comment}
	if err := s.SkipWhitespace1(); err != nil {
		return nil, err
	}
	if s.AtEOF() {
		if parenthesized {
			return nil, fmt.Errorf("expected BOOK after %q", "("+name+")")
		}
		return posting, nil
	}
	tok, err := s.ReadToken()
	if err != nil {
		return nil, err
	}
	if tok == "BOOK" {
		posting.Booking = true
		if err := s.SkipWhitespace1(); err != nil {
			return nil, err
		}
		if !s.AtEOF() {
			// the asset is informational, the gain currency is computed
			if _, err := s.ReadToken(); err != nil {
				return nil, err
			}
		}
		return posting, expectEnd(s)
	}
	if parenthesized {
		return nil, fmt.Errorf("expected BOOK, got %q", tok)
	}
	a, err := amountFrom(s, tok)
	if err != nil {
		return nil, err
	}
	posting.Amount = &a
	if err := s.SkipWhitespace1(); err != nil {
		return nil, err
	}
	if s.AtEOF() {
		return posting, nil
	}
	if err := s.ReadCharacter('@'); err != nil {
		return nil, err
	}
	if err := s.SkipWhitespace1(); err != nil {
		return nil, err
	}
	price, err := readAmount(s)
	if err != nil {
		return nil, err
	}
	posting.Price = &price
	return posting, expectEnd(s)
}

func (p *Parser) readAccount(s *scanner.Scanner) (string, error) {
	name, err := s.ReadToken()
	if err != nil {
		return "", fmt.Errorf("expected account: %w", err)
	}
	if _, err := p.tree.Get(name); err != nil {
		return "", err
	}
	return name, nil
}

var number = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)

func readAmount(s *scanner.Scanner) (amount.Amount, error) {
	tok, err := s.ReadToken()
	if err != nil {
		return amount.Amount{}, fmt.Errorf("expected amount: %w", err)
	}
	return amountFrom(s, tok)
}

func amountFrom(s *scanner.Scanner, value string) (amount.Amount, error) {
	if !number.MatchString(value) {
		return amount.Amount{}, fmt.Errorf("invalid number %q", value)
	}
	if err := s.SkipWhitespace1(); err != nil {
		return amount.Amount{}, err
	}
	asset, err := s.ReadToken()
	if err != nil {
		return amount.Amount{}, fmt.Errorf("expected asset: %w", err)
	}
	return amount.Parse(value, asset)
}

func readWords(s *scanner.Scanner) ([]string, error) {
	var res []string
	for {
		if err := s.SkipWhitespace(); err != nil {
			return nil, err
		}
		if s.AtEOF() {
			return res, nil
		}
		w, err := s.ReadToken()
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
}

func expectEnd(s *scanner.Scanner) error {
	if err := s.SkipWhitespace(); err != nil {
		return err
	}
	if !s.AtEOF() {
		return fmt.Errorf("unexpected text %q", s.Rest())
	}
	return nil
}

func addTag(tags []string, tag string) []string {
	if indexOf(tags, tag) >= 0 {
		return tags
	}
	return append(tags, tag)
}

func indexOf(tags []string, tag string) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}
