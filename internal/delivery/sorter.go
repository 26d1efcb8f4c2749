// Copyright (C) 2021  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package delivery sorts a single incoming mail into the maildir folder of its mailbox.
package delivery

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/sortmail/internal/database"
	"github.com/lukasdietrich/sortmail/internal/log"
	"github.com/lukasdietrich/sortmail/internal/mails"
	"github.com/lukasdietrich/sortmail/internal/models"
	"github.com/lukasdietrich/sortmail/internal/rules"
	"github.com/lukasdietrich/sortmail/internal/storage"
)

func init() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault("maildir", filepath.Join(home, "Maildir"))
	}

	viper.SetDefault("dryrun", false)
}

// SorterOptions configure the Sorter.
type SorterOptions struct {
	// Maildir is the root maildir. Mailboxes are folders named ".<mailbox>" inside of it.
	Maildir string
	// DryRun disables writing to the maildir and the journal.
	DryRun bool
}

// SorterOptionsFromViper reads the sorter options from viper.
//
// `maildir` is the root maildir and defaults to "$HOME/Maildir".
// `dryrun` disables the actual delivery.
func SorterOptionsFromViper() SorterOptions {
	return SorterOptions{
		Maildir: viper.GetString("maildir"),
		DryRun:  viper.GetBool("dryrun"),
	}
}

// Result describes the decision made for a mail and where it ended up.
type Result struct {
	// Recipient is the normalized original recipient.
	Recipient string
	// Mailbox is the resolved mailbox or an empty string if no rule matched.
	Mailbox string
	// Matched reports if a rule matched.
	Matched bool
	// Kind is the kind of the matching rule.
	Kind rules.Kind
	// Rule is the address or pattern that matched.
	Rule string
	// Directory is the maildir folder the mail is delivered to.
	Directory string
	// Filename is the path of the delivered mail. It is empty in a dry run.
	Filename string
	// DryRun reports if the delivery was skipped.
	DryRun bool
}

// Sorter resolves the recipient of a mail and delivers it into the maildir folder of the
// matching mailbox. Mails without a matching rule go into the root maildir.
type Sorter struct {
	addressMap *rules.AddressMap
	recipients *RecipientSource
	cache      storage.Cache
	maildir    *storage.Maildir
	journal    database.Journal
	opts       SorterOptions
	now        func() time.Time
}

// NewSorter creates a new sorter.
func NewSorter(
	addressMap *rules.AddressMap,
	recipients *RecipientSource,
	cache storage.Cache,
	maildir *storage.Maildir,
	journal database.Journal,
	opts SorterOptions,
) *Sorter {
	return &Sorter{
		addressMap: addressMap,
		recipients: recipients,
		cache:      cache,
		maildir:    maildir,
		journal:    journal,
		opts:       opts,
		now:        time.Now,
	}
}

// Sort reads the mail from r and delivers it. Every error is final and no mail is delivered in
// that case. A failure to record the delivery in the journal is only logged, because the mail
// has already been placed.
func (s *Sorter) Sort(ctx context.Context, r io.Reader) (*Result, error) {
	if s.opts.Maildir == "" {
		return nil, ErrNoMaildir
	}

	entry, err := s.cache.Write(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("delivery: could not read incoming message: %w", err)
	}

	defer s.release(ctx, entry)

	if entry.Size() == 0 {
		return nil, ErrEmptyMessage
	}

	header := s.readHeader(ctx, entry)
	if messageID := header.MessageID(); messageID != "" {
		ctx = log.WithMessageID(ctx, messageID)
	}

	recipient, err := s.recipients.Lookup(header)
	if err != nil {
		return nil, err
	}

	ctx = log.WithRecipient(ctx, recipient)
	match := s.addressMap.Explain(recipient)

	dir, err := s.directory(match)
	if err != nil {
		return nil, err
	}

	result := Result{
		Recipient: recipient,
		Mailbox:   match.Mailbox,
		Matched:   match.Matched(),
		Kind:      match.Kind,
		Rule:      match.Rule,
		Directory: dir,
		DryRun:    s.opts.DryRun,
	}

	event := log.InfoContext(ctx).
		Str("mailbox", match.Mailbox).
		Str("kind", match.Kind.String()).
		Str("rule", match.Rule).
		Str("directory", dir).
		Int64("size", entry.Size())

	if s.opts.DryRun {
		event.Msg("dry run, no actual delivery will be made")
		return &result, nil
	}

	event.Msg("delivering mail")

	content, err := entry.Reader()
	if err != nil {
		return nil, &StoreError{Directory: dir, Err: err}
	}

	filename, err := s.maildir.Deliver(ctx, dir, content)
	if err != nil {
		return nil, &StoreError{Directory: dir, Err: err}
	}

	result.Filename = filename
	s.record(ctx, &result, header, entry.Size())

	return &result, nil
}

// directory returns the maildir folder for a match.
func (s *Sorter) directory(match rules.Match) (string, error) {
	if !match.Matched() {
		return s.opts.Maildir, nil
	}

	mailbox := match.Mailbox
	if !validMailbox(mailbox) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMailbox, mailbox)
	}

	return filepath.Join(s.opts.Maildir, "."+mailbox), nil
}

// validMailbox reports if mailbox can be used as the name of a single maildir folder.
func validMailbox(mailbox string) bool {
	if mailbox == "" || mailbox == "." {
		return false
	}

	return strings.IndexFunc(mailbox, func(r rune) bool {
		return r == '/' || r == '\\' || unicode.IsControl(r)
	}) < 0
}

// readHeader parses the header of the cached mail. A malformed header does not prevent the
// delivery, so errors are only logged.
func (s *Sorter) readHeader(ctx context.Context, entry storage.CacheEntry) mails.Header {
	r, err := entry.Reader()
	if err != nil {
		log.WarnContext(ctx).Err(err).Msg("could not read mail header")
		return mails.Header{}
	}

	header, err := mails.ReadHeader(r)
	if err != nil {
		log.WarnContext(ctx).Err(err).Msg("could not parse mail header")
		return mails.Header{}
	}

	log.DebugContext(ctx).
		Str("subject", header.Subject()).
		Msg("mail header parsed")

	return header
}

func (s *Sorter) record(ctx context.Context, result *Result, header mails.Header, size int64) {
	delivery := models.DeliveryEntity{
		DeliveredAt: s.now().Unix(),
		Recipient:   result.Recipient,
		Mailbox:     sql.NullString{String: result.Mailbox, Valid: result.Matched},
		RuleKind:    result.Kind.String(),
		Rule:        result.Rule,
		Filename:    result.Filename,
		MessageID:   header.MessageID(),
		Size:        size,
	}

	if err := s.journal.Record(ctx, &delivery); err != nil {
		log.WarnContext(ctx).
			Str("filename", result.Filename).
			Err(err).
			Msg("could not record delivery in journal")
	}
}

func (s *Sorter) release(ctx context.Context, entry storage.CacheEntry) {
	if err := entry.Release(ctx); err != nil {
		log.WarnContext(ctx).Err(err).Msg("could not release cached mail")
	}
}
