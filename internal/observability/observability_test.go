package observability

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	stack, err := Start(config.Config{ServiceName: "tournament-registration-api", AppEnv: config.EnvDev}, logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, stack.PprofAddr())
	assert.NoError(t, stack.Shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNIsSkipped(t *testing.T) {
	stack, err := Start(config.Config{UptraceEnabled: true}, logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, stack.stops)
	assert.NoError(t, stack.Shutdown(context.Background()))
}

func TestStart_Pprof(t *testing.T) {
	stack, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, stack.PprofAddr())

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + stack.PprofAddr() + "/debug/pprof/cmdline")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, stack.Shutdown(ctx))

	_, err = client.Get("http://" + stack.PprofAddr() + "/debug/pprof/cmdline")
	assert.Error(t, err)
}

func TestStart_PprofBadAddr(t *testing.T) {
	_, err := Start(config.Config{PprofEnabled: true, PprofAddr: "not-a-host:-1"}, logging.NewNop())
	assert.Error(t, err)
}
