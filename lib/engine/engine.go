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

// Package engine replays a ledger against an account tree.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/pacioli/pacioli/lib/account"
	"github.com/pacioli/pacioli/lib/amount"
	"github.com/pacioli/pacioli/lib/fifo"
	"github.com/pacioli/pacioli/lib/ledger"
	"github.com/pacioli/pacioli/lib/parser"
	"github.com/pacioli/pacioli/lib/wallet"
)

// Config configures an engine.
type Config struct {
	// Roots are the top-level account categories. Defaults to
	// account.Roots.
	Roots []string
	// Begin and End delimit the reporting period. Zero values leave the
	// respective side open.
	Begin, End time.Time
	Parser     parser.Options
}

// Engine owns the account tree, the FIFO lots and the ledger of a single
// run.
type Engine struct {
	config    Config
	tree      *account.Tree
	fifo      *fifo.Tracker
	ledger    ledger.Ledger
	loaded    bool
	snapshots Snapshots

	// Observer, if set, is called after every replayed item.
	Observer func(index int, item ledger.Item)
}

// New creates a new engine.
func New(cfg Config) *Engine {
	return &Engine{
		config: cfg,
		tree:   account.NewTree(cfg.Roots...),
		fifo:   fifo.New(),
	}
}

// Load parses the ledger text and declares its accounts. A single ledger
// can be loaded per engine.
func (e *Engine) Load(r io.Reader) error {
	if e.loaded {
		return fmt.Errorf("a ledger has already been loaded")
	}
	l, err := parser.New(e.tree, e.config.Parser).Parse(r)
	if err != nil {
		return err
	}
	e.setLedger(l)
	return nil
}

// LoadFile parses the ledger file at the given path.
func (e *Engine) LoadFile(path string) error {
	if e.loaded {
		return fmt.Errorf("a ledger has already been loaded")
	}
	l, err := parser.FromPath(e.tree, path, e.config.Parser)
	if err != nil {
		return err
	}
	e.setLedger(l)
	return nil
}

func (e *Engine) setLedger(l ledger.Ledger) {
	l.Sort()
	e.ledger = l
	e.loaded = true
}

// Run replays the sorted ledger from empty wallets and captures the period
// snapshots. Running again yields the same balances.
func (e *Engine) Run() error {
	e.tree.Reset()
	e.fifo.Reset()
	s := newSnapshotter(e.config.Begin, e.config.End)
	for i, item := range e.ledger.Items {
		s.before(item.Date(), e.tree)
		if err := e.Process(item); err != nil {
			return Error{Item: item, Err: err}
		}
		if e.Observer != nil {
			e.Observer(i, item)
		}
	}
	e.snapshots = s.finish(e.tree)
	return nil
}

// Process applies a single item to the tree.
func (e *Engine) Process(item ledger.Item) error {
	switch it := item.(type) {
	case *ledger.Open, *ledger.Close, *ledger.Pad:
		// declarations take effect while parsing
		return nil
	case *ledger.Transaction:
		return e.processTransaction(it)
	case *ledger.Check:
		return e.processCheck(it)
	}
	panic(fmt.Sprintf("unknown item type %T", item))
}

func (e *Engine) processTransaction(t *ledger.Transaction) error {
	var (
		balancing, booking *ledger.Posting
		residual           = wallet.New()
		gains              = wallet.New()
	)
	for _, p := range t.Postings {
		switch {
		case p.Booking:
			if booking != nil {
				return AmbiguousBookingError{Accounts: []string{booking.Account, p.Account}}
			}
			booking = p
		case p.Amount == nil:
			if balancing != nil {
				return IncompleteTransactionError{Accounts: []string{balancing.Account, p.Account}}
			}
			balancing = p
		default:
			if err := e.post(t.Date(), p.Account, *p.Amount); err != nil {
				return err
			}
			if p.Price != nil {
				if err := e.fifo.Book(*p.Amount, *p.Price, gains); err != nil {
					return err
				}
			}
			residual.Add(p.Value().Neg())
		}
	}
	if balancing != nil {
		if err := e.infer(t, balancing, residual); err != nil {
			return err
		}
	} else if !residual.IsZero() {
		return UnbalancedTransactionError{Residual: residual}
	}
	return e.book(t, booking, gains)
}

// infer replaces the balancing posting by one posting per non-zero asset
// of the residual.
func (e *Engine) infer(t *ledger.Transaction, balancing *ledger.Posting, residual wallet.Wallet) error {
	amounts := residual.NonZero()
	if len(amounts) == 0 {
		return nil
	}
	var inferred []*ledger.Posting
	for _, a := range amounts {
		a := a
		if err := e.post(t.Date(), balancing.Account, a); err != nil {
			return err
		}
		inferred = append(inferred, &ledger.Posting{
			Account:  balancing.Account,
			Amount:   &a,
			Comment:  balancing.Comment,
			Inferred: true,
		})
	}
	postings := make([]*ledger.Posting, 0, len(t.Postings)+len(inferred)-1)
	for _, p := range t.Postings {
		if p == balancing {
			postings = append(postings, inferred...)
		} else {
			postings = append(postings, p)
		}
	}
	t.Postings = postings
	return nil
}

// book assigns the negated realized gain to the booking posting.
func (e *Engine) book(t *ledger.Transaction, booking *ledger.Posting, gains wallet.Wallet) error {
	amounts := gains.NonZero()
	switch {
	case len(amounts) > 1:
		return CrossCurrencyGainError{Gains: gains}
	case len(amounts) == 0:
		if booking != nil {
			booking.Amount = nil
		}
		return nil
	case booking == nil:
		return UnreportedGainError{Gain: amounts[0]}
	}
	a := amounts[0].Neg()
	if err := e.post(t.Date(), booking.Account, a); err != nil {
		return err
	}
	booking.Amount = &a
	return nil
}

func (e *Engine) processCheck(c *ledger.Check) error {
	acc, err := e.tree.Get(c.Account)
	if err != nil {
		return err
	}
	current := acc.Wallet.Get(c.Amount.Asset)
	delta := c.Amount.Value.Sub(current)
	if delta.IsZero() {
		return nil
	}
	if len(c.Pad) == 0 {
		return FailedCheckError{
			Account: c.Account,
			Want:    c.Amount,
			Actual:  amount.New(current, c.Amount.Asset),
		}
	}
	adjustment := amount.New(delta, c.Amount.Asset)
	if err := e.post(c.Date(), c.Account, adjustment); err != nil {
		return err
	}
	return e.post(c.Date(), c.Pad, adjustment.Neg())
}

func (e *Engine) post(d time.Time, name string, a amount.Amount) error {
	acc, err := e.tree.Get(name)
	if err != nil {
		return err
	}
	if !acc.IsOpen(d) {
		return ClosedAccountError{Account: name, Date: d}
	}
	if !acc.Allows(a.Asset) {
		return InvalidAssetError{Account: name, Asset: a.Asset}
	}
	return e.tree.Propagate(name, a)
}

// Tree returns the current account tree.
func (e *Engine) Tree() *account.Tree {
	return e.tree
}

// Ledger returns the sorted ledger.
func (e *Engine) Ledger() ledger.Ledger {
	return e.ledger
}

// Lots returns the FIFO lots remaining for the asset.
func (e *Engine) Lots(asset string) []fifo.Lot {
	return e.fifo.Lots(asset)
}

// Snapshots returns the trees captured by the last run.
func (e *Engine) Snapshots() Snapshots {
	return e.snapshots
}

// Index groups the transactions of the reporting period.
func (e *Engine) Index() ledger.Index {
	return e.ledger.Index(e.config.Begin, e.config.End)
}
