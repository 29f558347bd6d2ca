package api

import (
	"context"

	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/router"
)

// Diagnostics carries what a controller needs to trace the diagnostic setting.
type Diagnostics struct {
	Settings router.Settings
	Log      logger.Logger
	Key      string
}

func (d Diagnostics) trace(ctx context.Context) {
	router.TraceSetting(ctx, d.Log, d.Settings, d.Key)
}
