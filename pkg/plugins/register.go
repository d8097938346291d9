// Package plugins wires the built-in protocol plugins into a registry.
package plugins

import (
	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/plugins/bashcmd"
	"github.com/systemstart/testflow/pkg/plugins/rest"
	"github.com/systemstart/testflow/pkg/plugins/sqlquery"
	"github.com/systemstart/testflow/pkg/plugins/sshcmd"
	"github.com/systemstart/testflow/pkg/plugins/sshcopy"
)

// RegisterBuiltin registers every built-in plugin under its type id.
func RegisterBuiltin(r *plugin.Registry) {
	r.Register(bashcmd.TypeID, func() plugin.Plugin { return bashcmd.New() })
	r.Register(sshcmd.TypeID, func() plugin.Plugin { return sshcmd.New() })
	r.Register(sshcopy.TypeID, func() plugin.Plugin { return sshcopy.New() })
	r.Register(sqlquery.TypeID, func() plugin.Plugin { return sqlquery.New() })
	r.Register(rest.TypeID, func() plugin.Plugin { return rest.New() })
}
