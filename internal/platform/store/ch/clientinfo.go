package ch

import (
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"

	"scribe/internal/core/version"
)

// clientInfo tags our queries in system.query_log. role is the binary
// ("api", "ctl") and tag a free form deploy label
func clientInfo(role, tag string) clickhouse.ClientInfo {
	b := version.Info()
	host, _ := os.Hostname()

	info := clickhouse.ClientInfo{}
	add := func(name, value string) {
		if value != "" {
			info.Products = append(info.Products, struct{ Name, Version string }{name, value})
		}
	}
	add(b.Service, b.Version)
	add("role", role)
	add("tag", tag)
	add("commit", short(b.Commit))
	add("go", b.GoVersion)
	add("host", host)
	return info
}

func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
