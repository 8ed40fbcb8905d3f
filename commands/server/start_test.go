package server

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseFlags(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    startOptions
		wantErr bool
	}{
		"defaults": {
			args: nil,
			want: startOptions{Bind: "tcp://localhost:26658", LogLevel: "info"},
		},
		"all set": {
			args: []string{"-bind", "localhost:11122", "-debug", "-metrics", ":9090", "-log_level", "debug"},
			want: startOptions{Bind: "localhost:11122", Debug: true, Metrics: ":9090", LogLevel: "debug"},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "0 SOL"},
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tc.args)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStartRejectsLogLevel(t *testing.T) {
	called := false
	gen := func(string, log.Logger, bool) (abci.Application, error) {
		called = true
		return nil, nil
	}
	err := StartCmd(gen, log.NewNopLogger(), "", []string{"-log_level", "loud"})
	require.Error(t, err)
	assert.False(t, called)
}

func TestStartFailsOnBusyAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	gen := func(string, log.Logger, bool) (abci.Application, error) {
		return abci.NewBaseApplication(), nil
	}
	err = StartCmd(gen, log.NewNopLogger(), "", []string{"-bind", "tcp://" + ln.Addr().String()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot start server")
}
