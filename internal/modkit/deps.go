package modkit

import (
	"scribe/internal/modkit/repokit"
	"scribe/internal/platform/config"
	"scribe/internal/platform/store"
)

// Deps are the shared handles every module constructor receives
type Deps struct {
	Cfg config.Conf
	PG  repokit.TxRunner
	// CH is nil when ClickHouse is disabled
	CH store.Clickhouse
}
