package dependencies

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/fx"

	"github.com/cowrite/cowrite/internal/log"
	"github.com/cowrite/cowrite/internal/server/db"
	"github.com/cowrite/cowrite/internal/store"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(db.NewDriver),
	fx.Provide(store.New),
	fx.Invoke(func(lc fx.Lifecycle, drv *entsql.Driver) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if err := drv.Close(); err != nil {
					log.Error(ctx, "database close error", log.Cause(err))
				}

				return nil
			},
		})
	}),
)
