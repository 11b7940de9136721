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

package printer

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/ledger"
)

// Printer prints ledger items in the plain-text format.
type Printer struct {
	writer  io.Writer
	padding int
	count   int
}

// New creates a new Printer.
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

func (p *Printer) Write(bs []byte) (int, error) {
	n, err := p.writer.Write(bs)
	p.count += n
	return n, err
}

// PrintItem prints an item, without a trailing newline.
func (p *Printer) PrintItem(item ledger.Item) (n int, err error) {
	switch d := item.(type) {
	case *ledger.Transaction:
		return p.printTransaction(d)
	case *ledger.Open:
		return p.printOpen(d)
	case *ledger.Close:
		return p.printClose(d)
	case *ledger.Pad:
		return p.printPad(d)
	case *ledger.Check:
		return p.printCheck(d)
	}
	return 0, fmt.Errorf("unknown item: %v", item)
}

// PrintItemLn prints an item followed by a newline.
func (p *Printer) PrintItemLn(item ledger.Item) (n int, err error) {
	start := p.count
	if _, err := p.PrintItem(item); err != nil {
		return p.count - start, err
	}
	_, err = io.WriteString(p, "\n")
	return p.count - start, err
}

// PrintLedger prints all items of the ledger. Transactions are separated
// by an empty line. Pad directives are not printed on their own, a check
// carrying a pad is printed right after it.
func (p *Printer) PrintLedger(l ledger.Ledger) (n int, err error) {
	start := p.count
	p.Initialize(l)
	for i, item := range l.Items {
		if _, ok := item.(*ledger.Pad); ok {
			continue
		}
		if _, ok := item.(*ledger.Transaction); ok && i > 0 {
			if _, err := io.WriteString(p, "\n"); err != nil {
				return p.count - start, err
			}
		}
		if _, err := p.PrintItemLn(item); err != nil {
			return p.count - start, err
		}
	}
	return p.count - start, nil
}

// PrintClosingChecks prints a balance assertion for every non-zero asset
// of every leaf account of the tree. If pad is not empty, each assertion
// is preceded by a pad against it.
func (p *Printer) PrintClosingChecks(t *account.Tree, d time.Time, pad string) (n int, err error) {
	start := p.count
	for _, name := range t.Leaves() {
		if name == pad {
			continue
		}
		acc, err := t.Get(name)
		if err != nil {
			return p.count - start, err
		}
		amounts := acc.Wallet.NonZero()
		if len(amounts) == 0 {
			continue
		}
		for _, a := range amounts {
			if _, err := p.PrintItemLn(&ledger.Check{Header: ledger.Header{At: d}, Account: name, Amount: a, Pad: pad}); err != nil {
				return p.count - start, err
			}
		}
	}
	return p.count - start, nil
}

func (p *Printer) printTransaction(t *ledger.Transaction) (n int, err error) {
	start := p.count
	if _, err := io.WriteString(p, t.Date().Format("2006-01-02")); err != nil {
		return p.count - start, err
	}
	if !t.EffectiveDate.IsZero() && !t.EffectiveDate.Equal(t.Date()) {
		if _, err := fmt.Fprintf(p, "[=%s]", t.EffectiveDate.Format("2006-01-02")); err != nil {
			return p.count - start, err
		}
	}
	flag := "*"
	if t.Pending {
		flag = "!"
	}
	if _, err := fmt.Fprintf(p, " %s", flag); err != nil {
		return p.count - start, err
	}
	if len(t.Description) > 0 {
		if _, err := fmt.Fprintf(p, " %s", t.Description); err != nil {
			return p.count - start, err
		}
	}
	if _, err := p.printComment(t.Comment); err != nil {
		return p.count - start, err
	}
	if len(t.Tags) > 0 {
		if _, err := io.WriteString(p, "\n  tags"); err != nil {
			return p.count - start, err
		}
		for _, tag := range t.Tags {
			if _, err := fmt.Fprintf(p, " %s", tag); err != nil {
				return p.count - start, err
			}
		}
	}
	for _, po := range t.Postings {
		if _, err := io.WriteString(p, "\n"); err != nil {
			return p.count - start, err
		}
		if _, err := p.printPosting(po); err != nil {
			return p.count - start, err
		}
	}
	return p.count - start, nil
}

func (p *Printer) printPosting(po *ledger.Posting) (int, error) {
	start := p.count
	switch {
	case po.Booking:
		if _, err := fmt.Fprintf(p, "  %-*s BOOK", p.padding, po.Account); err != nil {
			return p.count - start, err
		}
		comment := po.Comment
		if len(comment) == 0 && po.Amount != nil {
			comment = po.Amount.String()
		}
		if _, err := p.printComment(comment); err != nil {
			return p.count - start, err
		}
		return p.count - start, nil

	case po.Amount == nil:
		if _, err := fmt.Fprintf(p, "  %s", po.Account); err != nil {
			return p.count - start, err
		}

	default:
		if _, err := fmt.Fprintf(p, "  %-*s %10s %s", p.padding, po.Account, po.Amount.Value, po.Amount.Asset); err != nil {
			return p.count - start, err
		}
		if po.Price != nil {
			if _, err := fmt.Fprintf(p, " @ %s", po.Price); err != nil {
				return p.count - start, err
			}
		}
	}
	_, err := p.printComment(po.Comment)
	return p.count - start, err
}

func (p *Printer) printComment(c string) (int, error) {
	if len(c) == 0 {
		return 0, nil
	}
	return fmt.Fprintf(p, " ; %s", c)
}

func (p *Printer) printOpen(o *ledger.Open) (int, error) {
	start := p.count
	if _, err := fmt.Fprintf(p, "%s open %s", o.Date().Format("2006-01-02"), o.Account); err != nil {
		return p.count - start, err
	}
	for _, a := range o.Assets {
		if _, err := fmt.Fprintf(p, " %s", a); err != nil {
			return p.count - start, err
		}
	}
	return p.count - start, nil
}

func (p *Printer) printClose(c *ledger.Close) (int, error) {
	return fmt.Fprintf(p, "%s close %s", c.Date().Format("2006-01-02"), c.Account)
}

func (p *Printer) printPad(d *ledger.Pad) (int, error) {
	return fmt.Fprintf(p, "%s pad %s %s", d.Date().Format("2006-01-02"), d.Account, d.Target)
}

func (p *Printer) printCheck(c *ledger.Check) (int, error) {
	start := p.count
	if len(c.Pad) > 0 {
		if _, err := p.printPad(&ledger.Pad{Header: c.Header, Account: c.Account, Target: c.Pad}); err != nil {
			return p.count - start, err
		}
		if _, err := io.WriteString(p, "\n"); err != nil {
			return p.count - start, err
		}
	}
	if _, err := fmt.Fprintf(p, "%s balance %s %s", c.Date().Format("2006-01-02"), c.Account, c.Amount); err != nil {
		return p.count - start, err
	}
	_, err := p.printComment(c.Comment)
	return p.count - start, err
}

// Initialize initializes the padding of this printer.
func (p *Printer) Initialize(l ledger.Ledger) {
	for _, t := range l.Transactions() {
		p.UpdatePadding(t)
	}
}

// UpdatePadding widens the account column to fit the transaction's
// postings.
func (p *Printer) UpdatePadding(t *ledger.Transaction) {
	for _, po := range t.Postings {
		if n := utf8.RuneCountInString(po.Account); p.padding < n {
			p.padding = n
		}
	}
}
