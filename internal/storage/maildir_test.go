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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestEscapeHostname(t *testing.T) {
	for hostname, expected := range map[string]string{
		"mail.example.com": "mail.example.com",
		"a/b":              `a\057b`,
		"host:1":           `host\0721`,
	} {
		assert.Equal(t, expected, escapeHostname(hostname))
	}
}

func TestMaildirTestSuite(t *testing.T) {
	suite.Run(t, new(MaildirTestSuite))
}

type MaildirTestSuite struct {
	baseFileystemTestSuite

	maildir *Maildir
}

func (s *MaildirTestSuite) SetupTest() {
	s.baseFileystemTestSuite.SetupTest()

	s.maildir = NewMaildir(s.fs, s.idGen)
	s.maildir.hostname = "host:example"
	s.maildir.pid = 42
	s.maildir.now = func() time.Time {
		return time.Unix(1600000000, 123456789)
	}
}

func (s *MaildirTestSuite) TestDeliver() {
	const data = "Subject: TestDeliver\r\n\r\nHello\r\n"

	s.idGen.On("GenerateID").Return("abcdef", nil)

	filename, err := s.maildir.Deliver(context.TODO(), "/Maildir/.Work", strings.NewReader(data))
	s.Require().NoError(err)

	expected := "/Maildir/.Work/new/1600000000.M123456P42Rabcdef.host\\072example"
	s.Assert().Equal(expected, filename)
	s.assertFileContent(expected, data)

	s.Assert().Empty(s.listDir("/Maildir/.Work/tmp"))
	s.Assert().Empty(s.listDir("/Maildir/.Work/cur"))
	s.Assert().Len(s.listDir("/Maildir/.Work/new"), 1)
}

func (s *MaildirTestSuite) TestDeliverIntoExistingFolder() {
	s.requireWrite("/Maildir/new/existing", "old mail")

	s.idGen.On("GenerateID").Return("second", nil)

	_, err := s.maildir.Deliver(context.TODO(), "/Maildir", strings.NewReader("new mail"))
	s.Require().NoError(err)
	s.Assert().Len(s.listDir("/Maildir/new"), 2)
	s.assertFileContent("/Maildir/new/existing", "old mail")
}

func (s *MaildirTestSuite) TestDeliverIDError() {
	s.idGen.On("GenerateID").Return("", errors.New("no randomness"))

	_, err := s.maildir.Deliver(context.TODO(), "/Maildir", strings.NewReader("mail"))
	s.Assert().Error(err)
	s.Assert().Empty(s.listDir("/Maildir/new"))
}

func (s *MaildirTestSuite) TestDeliverReadError() {
	s.idGen.On("GenerateID").Return("broken", nil)

	_, err := s.maildir.Deliver(context.TODO(), "/Maildir", failingReader{})
	s.Assert().Error(err)
	s.Assert().Empty(s.listDir("/Maildir/tmp"))
	s.Assert().Empty(s.listDir("/Maildir/new"))
}

func (s *MaildirTestSuite) TestDeliverReadOnly() {
	s.maildir.fs = afero.NewReadOnlyFs(s.fs)

	_, err := s.maildir.Deliver(context.TODO(), "/Maildir", strings.NewReader("mail"))
	s.Assert().Error(err)
}
