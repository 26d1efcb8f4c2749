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

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/lukasdietrich/sortmail/internal/crypto"
	"github.com/lukasdietrich/sortmail/internal/log"
)

const (
	folderTmp = "tmp"
	folderNew = "new"
	folderCur = "cur"
)

// Maildir delivers mails into maildir folders. A mail is written to "tmp" first and then renamed
// into "new", so readers never see a partially written mail.
type Maildir struct {
	fs       afero.Fs
	idGen    crypto.IDGenerator
	hostname string
	pid      int
	now      func() time.Time
}

// NewMaildir creates a new maildir store.
func NewMaildir(fs afero.Fs, idGen crypto.IDGenerator) *Maildir {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	return &Maildir{
		fs:       fs,
		idGen:    idGen,
		hostname: hostname,
		pid:      os.Getpid(),
		now:      time.Now,
	}
}

// Deliver copies all the data from r into a new mail in the maildir folder dir. The folder and its
// "tmp", "new" and "cur" subfolders are created if necessary. The path of the delivered mail is
// returned.
func (m *Maildir) Deliver(ctx context.Context, dir string, r io.Reader) (string, error) {
	for _, sub := range []string{folderTmp, folderNew, folderCur} {
		if err := m.fs.MkdirAll(filepath.Join(dir, sub), 0700); err != nil {
			return "", err
		}
	}

	name, err := m.uniqueName()
	if err != nil {
		return "", err
	}

	var (
		tmpPath = filepath.Join(dir, folderTmp, name)
		newPath = filepath.Join(dir, folderNew, name)
	)

	log.DebugContext(ctx).
		Str("filename", tmpPath).
		Msg("writing mail")

	if err := m.write(tmpPath, r); err != nil {
		m.remove(ctx, tmpPath)
		return "", err
	}

	if err := m.fs.Rename(tmpPath, newPath); err != nil {
		m.remove(ctx, tmpPath)
		return "", err
	}

	return newPath, nil
}

func (m *Maildir) write(filename string, r io.Reader) error {
	f, err := m.fs.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// remove is used to clean up after a failed delivery. Errors are logged but not returned, because
// we do not want to shadow the original cause.
func (m *Maildir) remove(ctx context.Context, filename string) {
	if err := m.fs.Remove(filename); err != nil && !os.IsNotExist(err) {
		log.WarnContext(ctx).
			Str("filename", filename).
			Err(err).
			Msg("could not remove partial mail")
	}
}

// uniqueName creates a filename of the form "<seconds>.M<microseconds>P<pid>R<random>.<hostname>".
func (m *Maildir) uniqueName() (string, error) {
	id, err := m.idGen.GenerateID()
	if err != nil {
		return "", err
	}

	now := m.now()

	return fmt.Sprintf("%d.M%dP%dR%s.%s",
		now.Unix(), now.Nanosecond()/1000, m.pid, id, escapeHostname(m.hostname)), nil
}

var hostnameReplacer = strings.NewReplacer("/", "\\057", ":", "\\072")

func escapeHostname(hostname string) string {
	return hostnameReplacer.Replace(hostname)
}
