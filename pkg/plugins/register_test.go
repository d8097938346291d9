package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systemstart/testflow/pkg/plugin"
)

func TestRegisterBuiltin(t *testing.T) {
	r := plugin.NewRegistry()
	RegisterBuiltin(r)

	for _, id := range []string{"BASH_CMD", "SSH_CMD", "COPY_FILES_SSH", "SQL_QUERY", "REST"} {
		t.Run(id, func(t *testing.T) {
			p, err := r.Resolve(id)
			require.NoError(t, err)
			assert.NotNil(t, p.Defaults())
		})
	}
}
