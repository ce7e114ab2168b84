package db_fx

import (
	"go.uber.org/fx"

	"checkoutdash/internal/infra"
)

var Module = fx.Provide(
	infra.NewDatabase)
