package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "none", args: []string{"serve"}, want: nil},
		{name: "short", args: []string{"-c", "prod.yml", "serve"}, want: []string{"-c", "prod.yml"}},
		{name: "long", args: []string{"user", "create", "--config", "x.yml"}, want: []string{"-c", "x.yml"}},
		{name: "short inline", args: []string{"-c=a.yml"}, want: []string{"-c=a.yml"}},
		{name: "long inline", args: []string{"serve", "--config=b.yml"}, want: []string{"-c=b.yml"}},
		{name: "dangling", args: []string{"serve", "-c"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, configArgs(tt.args))
		})
	}
}
