package httptransport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewServerAppliesConfig(t *testing.T) {
	srv := NewServer(DefaultServerConfig(":8080"), http.NotFoundHandler())
	require.Equal(t, ":8080", srv.Addr)
	require.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	require.Equal(t, 10*time.Second, srv.WriteTimeout)

	srv = NewServer(ServerConfig{Address: ":1", ReadTimeout: 3 * time.Second}, http.NotFoundHandler())
	require.Equal(t, 3*time.Second, srv.ReadHeaderTimeout)
}
