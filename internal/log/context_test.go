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

package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestLogContextTestSuite(t *testing.T) {
	suite.Run(t, new(LogContextTestSuite))
}

type LogContextTestSuite struct {
	baseLogTestSuite
}

func (s *LogContextTestSuite) TestWithCommand() {
	ctx := WithCommand(context.TODO(), "cmd1")
	InfoContext(ctx).Msg("TestWithCommand")

	s.assertMsg("{\"level\":\"info\",\"command\":\"cmd1\",\"message\":\"TestWithCommand\"}\n")
}

func (s *LogContextTestSuite) TestWithRecipient() {
	ctx := WithRecipient(context.TODO(), "someone@example.com")
	InfoContext(ctx).Msg("TestWithRecipient")

	s.assertMsg("{\"level\":\"info\",\"recipient\":\"someone@example.com\",\"message\":\"TestWithRecipient\"}\n")
}

func (s *LogContextTestSuite) TestWithMessageID() {
	ctx := WithMessageID(context.TODO(), "<123@example.com>")
	InfoContext(ctx).Msg("TestWithMessageID")

	s.assertMsg("{\"level\":\"info\",\"messageId\":\"<123@example.com>\",\"message\":\"TestWithMessageID\"}\n")
}

func (s *LogContextTestSuite) TestWithAll() {
	ctx := context.TODO()
	ctx = WithMessageID(ctx, "<456@example.com>")
	ctx = WithRecipient(ctx, "other@example.com")
	ctx = WithCommand(ctx, "cmd3")
	InfoContext(ctx).Msg("TestWithAll")

	s.assertMsg("{\"level\":\"info\"," +
		"\"command\":\"cmd3\",\"recipient\":\"other@example.com\",\"messageId\":\"<456@example.com>\"," +
		"\"message\":\"TestWithAll\"}\n")
}
