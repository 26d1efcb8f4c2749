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

	"github.com/rs/zerolog"
)

type fieldCommand struct{}
type fieldRecipient struct{}
type fieldMessageID struct{}

// WithCommand adds the command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, fieldCommand{}, command)
}

// WithRecipient adds the normalized recipient address to the context.
func WithRecipient(ctx context.Context, recipient string) context.Context {
	return context.WithValue(ctx, fieldRecipient{}, recipient)
}

// WithMessageID adds the Message-Id of the incoming mail to the context.
func WithMessageID(ctx context.Context, messageID string) context.Context {
	return context.WithValue(ctx, fieldMessageID{}, messageID)
}

// appendContextFields adds defined fields in the context to the log event.
func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if command, ok := ctx.Value(fieldCommand{}).(string); ok {
		event.Str("command", command)
	}

	if recipient, ok := ctx.Value(fieldRecipient{}).(string); ok {
		event.Str("recipient", recipient)
	}

	if messageID, ok := ctx.Value(fieldMessageID{}).(string); ok {
		event.Str("messageId", messageID)
	}

	return event
}
