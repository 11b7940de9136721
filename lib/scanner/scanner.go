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

package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// EOF is a rune representing the end of the input.
const EOF = rune(0)

// Scanner reads runes from a single line of text.
type Scanner struct {
	text string

	current    rune
	currentLen int
	pos        int
}

// New creates a new Scanner positioned at the first rune.
func New(text string) (*Scanner, error) {
	s := &Scanner{text: text}
	if err := s.Advance(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the current rune.
func (s *Scanner) Current() rune {
	return s.current
}

// Offset returns the byte offset of the current rune.
func (s *Scanner) Offset() int {
	return s.pos
}

// Advance reads a rune.
func (s *Scanner) Advance() error {
	s.pos += s.currentLen
	if s.pos >= len(s.text) {
		s.pos = len(s.text)
		s.current = EOF
		s.currentLen = 0
		return nil
	}
	s.current, s.currentLen = utf8.DecodeRuneInString(s.text[s.pos:])
	if s.current == utf8.RuneError && s.currentLen == 1 {
		return fmt.Errorf("invalid UTF-8 encoding at offset %d", s.pos)
	}
	return nil
}

// ReadWhile reads a string while the predicate holds.
func (s *Scanner) ReadWhile(pred func(r rune) bool) (string, error) {
	start := s.pos
	for s.Current() != EOF && pred(s.Current()) {
		if err := s.Advance(); err != nil {
			return s.text[start:s.pos], err
		}
	}
	return s.text[start:s.pos], nil
}

// ReadWhile1 reads a string while the predicate holds. The predicate
// must be satisfied at least once.
func (s *Scanner) ReadWhile1(pred func(r rune) bool) (string, error) {
	if s.Current() == EOF {
		return "", fmt.Errorf("unexpected end of line")
	}
	if !pred(s.Current()) {
		return "", fmt.Errorf("unexpected character %q", s.Current())
	}
	return s.ReadWhile(pred)
}

// ReadToken reads a run of non-whitespace runes.
func (s *Scanner) ReadToken() (string, error) {
	return s.ReadWhile1(func(r rune) bool { return !unicode.IsSpace(r) })
}

// ReadCharacter consumes the given rune.
func (s *Scanner) ReadCharacter(r rune) error {
	if s.Current() != r {
		return fmt.Errorf("expected %q, got %q", r, s.Current())
	}
	return s.Advance()
}

// ReadString consumes the given string.
func (s *Scanner) ReadString(str string) error {
	start := s.pos
	for _, ch := range str {
		if ch != s.Current() {
			return fmt.Errorf("expected %q, got %q", str, s.text[start:s.pos])
		}
		if err := s.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// SkipWhitespace consumes spaces and tabs.
func (s *Scanner) SkipWhitespace() error {
	_, err := s.ReadWhile(IsWhitespace)
	return err
}

// SkipWhitespace1 consumes at least one space or tab, unless the end
// of the line has been reached.
func (s *Scanner) SkipWhitespace1() error {
	if s.Current() == EOF {
		return nil
	}
	if !IsWhitespace(s.Current()) {
		return fmt.Errorf("expected whitespace, got %q", s.Current())
	}
	return s.SkipWhitespace()
}

// Rest returns the remainder of the line and moves to its end.
func (s *Scanner) Rest() string {
	res := s.text[s.pos:]
	s.pos = len(s.text)
	s.current, s.currentLen = EOF, 0
	return res
}

// AtEOF returns whether the whole line has been consumed.
func (s *Scanner) AtEOF() bool {
	return s.current == EOF
}

// IsWhitespace returns whether the rune is a space or a tab.
func IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
