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

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/sortmail/internal/rules"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite

	fs afero.Fs
}

func (s *ConfigTestSuite) SetupTest() {
	s.fs = afero.NewMemMapFs()
}

func (s *ConfigTestSuite) requireWrite(filename, content string) {
	s.Require().NoError(afero.WriteFile(s.fs, filename, []byte(content), 0600))
}

func (s *ConfigTestSuite) TestTOML() {
	s.requireWrite("/rules.toml", `
maildir = "/home/someone/Maildir"

[Work]
addresses = """
boss@co.com
colleague@co.com
"""

[Lists]
patterns = [ '^list-.*@co\.com$', 'newsletter' ]

[Archive]
addresses = "old@co.com"
patterns = """
@old\\.co\\.com$
"""

[Empty]
`)

	expected := []rules.Source{
		{Mailbox: "Work", Addresses: []string{"boss@co.com\ncolleague@co.com\n"}},
		{Mailbox: "Lists", Patterns: []string{`^list-.*@co\.com$`, "newsletter"}},
		{Mailbox: "Archive", Addresses: []string{"old@co.com"}, Patterns: []string{"@old\\.co\\.com$\n"}},
		{Mailbox: "Empty"},
	}

	actual, err := LoadRules(s.fs, "/rules.toml")
	s.Require().NoError(err)
	s.Assert().Equal(expected, actual)
}

func (s *ConfigTestSuite) TestTOMLDeclarationOrder() {
	s.requireWrite("/rules.toml", `
[zeta]
[Alpha]
[mid]
[beta]
`)

	actual, err := LoadRules(s.fs, "/rules.toml")
	s.Require().NoError(err)
	s.Assert().Equal([]string{"zeta", "Alpha", "mid", "beta"}, mailboxNames(actual))
}

func (s *ConfigTestSuite) TestTOMLInvalidField() {
	s.requireWrite("/rules.toml", `
[Work]
addresses = 42
`)

	_, err := LoadRules(s.fs, "/rules.toml")
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), `"Work"`)
	s.Assert().Contains(err.Error(), "addresses")
	s.assertConfigError(err, "/rules.toml")
}

func (s *ConfigTestSuite) TestTOMLInvalidListItem() {
	s.requireWrite("/rules.toml", `
[Work]
patterns = [ "ok", 1 ]
`)

	_, err := LoadRules(s.fs, "/rules.toml")
	s.Require().Error(err)
	s.assertConfigError(err, "/rules.toml")
}

func (s *ConfigTestSuite) TestTOMLSyntaxError() {
	s.requireWrite("/rules.toml", "[Work\naddresses = ")

	_, err := LoadRules(s.fs, "/rules.toml")
	s.Require().Error(err)
	s.assertConfigError(err, "/rules.toml")
}

func (s *ConfigTestSuite) TestYAML() {
	s.requireWrite("/rules.yaml", `
maildir: /home/someone/Maildir

Work:
  addresses: |
    boss@co.com
    colleague@co.com

Lists:
  patterns:
    - '^list-.*@co\.com$'
    - newsletter

Nothing:
  addresses:
`)

	expected := []rules.Source{
		{Mailbox: "Work", Addresses: []string{"boss@co.com\ncolleague@co.com\n"}},
		{Mailbox: "Lists", Patterns: []string{`^list-.*@co\.com$`, "newsletter"}},
		{Mailbox: "Nothing"},
	}

	actual, err := LoadRules(s.fs, "/rules.yaml")
	s.Require().NoError(err)
	s.Assert().Equal(expected, actual)
}

func (s *ConfigTestSuite) TestTOMLSettingsAreNotMailboxes() {
	s.requireWrite("/rules.toml", `
maildir = "/m"
journal.filename = "/var/lib/sortmail.db"

[log]
level = "debug"

[Work]
addresses = "boss@co.com"

[Storage]
addresses = "storage@co.com"
`)

	file, err := Load(s.fs, "/rules.toml")
	s.Require().NoError(err)

	s.Assert().Equal([]string{"Work", "Storage"}, mailboxNames(file.Sources))
	s.Assert().Equal(map[string]interface{}{
		"maildir": "/m",
		"journal": map[string]interface{}{"filename": "/var/lib/sortmail.db"},
		"log":     map[string]interface{}{"level": "debug"},
	}, file.Settings)
}

func (s *ConfigTestSuite) TestYAMLSettingsAreNotMailboxes() {
	s.requireWrite("/rules.yaml", `
maildir: /m
dryrun: true
journal:
  filename: /var/lib/sortmail.db
Work:
  addresses: boss@co.com
Recipient:
  patterns: '^rcpt@'
`)

	file, err := Load(s.fs, "/rules.yaml")
	s.Require().NoError(err)

	s.Assert().Equal([]string{"Work", "Recipient"}, mailboxNames(file.Sources))
	s.Assert().Equal(map[string]interface{}{
		"maildir": "/m",
		"dryrun":  true,
		"journal": map[string]interface{}{"filename": "/var/lib/sortmail.db"},
	}, file.Settings)
}

func (s *ConfigTestSuite) TestYAMLInvalidField() {
	s.requireWrite("/rules.yml", `
Work:
  patterns:
    nested: true
`)

	_, err := LoadRules(s.fs, "/rules.yml")
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), `"Work"`)
	s.assertConfigError(err, "/rules.yml")
}

func (s *ConfigTestSuite) TestYAMLNotAMapping() {
	s.requireWrite("/rules.yaml", "- just\n- a list\n")

	_, err := LoadRules(s.fs, "/rules.yaml")
	s.Require().Error(err)
	s.Assert().True(errors.Is(err, errNotAMapping))
}

func (s *ConfigTestSuite) TestYAMLEmpty() {
	s.requireWrite("/rules.yaml", "")

	actual, err := LoadRules(s.fs, "/rules.yaml")
	s.Require().NoError(err)
	s.Assert().Empty(actual)
}

func (s *ConfigTestSuite) TestFileNotFound() {
	_, err := LoadRules(s.fs, "/missing.toml")
	s.Require().Error(err)
	s.Assert().True(errors.Is(err, os.ErrNotExist))
	s.assertConfigError(err, "/missing.toml")
}

func (s *ConfigTestSuite) TestCompilesIntoAddressMap() {
	s.requireWrite("/rules.toml", `
[Work]
addresses = "Boss@Co.com"

[Lists]
patterns = '^list-.*@co\.com$'
`)

	sources, err := LoadRules(s.fs, "/rules.toml")
	s.Require().NoError(err)

	m, err := rules.Compile(sources)
	s.Require().NoError(err)

	mailbox, ok := m.Resolve("boss@co.com")
	s.Assert().True(ok)
	s.Assert().Equal("Work", mailbox)

	mailbox, ok = m.Resolve("list-eng@co.com")
	s.Assert().True(ok)
	s.Assert().Equal("Lists", mailbox)

	_, ok = m.Resolve("random@co.com")
	s.Assert().False(ok)
}

func (s *ConfigTestSuite) assertConfigError(err error, filename string) {
	var configErr *Error

	s.Require().True(errors.As(err, &configErr))
	s.Assert().Equal(filename, configErr.Filename)
	s.Assert().Contains(err.Error(), filename)
}

func mailboxNames(sources []rules.Source) []string {
	names := make([]string, len(sources))

	for i, source := range sources {
		names[i] = source.Mailbox
	}

	return names
}
