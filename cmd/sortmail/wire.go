// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lukasdietrich/sortmail/internal/config"
	"github.com/lukasdietrich/sortmail/internal/crypto"
	"github.com/lukasdietrich/sortmail/internal/database"
	"github.com/lukasdietrich/sortmail/internal/delivery"
	"github.com/lukasdietrich/sortmail/internal/shell"
	"github.com/lukasdietrich/sortmail/internal/storage"
)

var wireSet = wire.NewSet(
	wire.Struct(new(deliverCommand), "*"),
	wire.Struct(new(shellCommand), "*"),

	config.WireSet,
	crypto.WireSet,
	storage.WireSet,
	database.WireSet,
	delivery.WireSet,
	shell.WireSet,
)

func newDeliverCommand() (*deliverCommand, func(), error) {
	panic(wire.Build(wireSet))
}

func newShellCommand() (*shellCommand, func(), error) {
	panic(wire.Build(wireSet))
}
