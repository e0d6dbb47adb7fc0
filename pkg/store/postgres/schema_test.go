package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareServerVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr string
	}{
		{version: "16.1"},
		{version: "13"},
		{version: "15.4 (Debian 15.4-1.pgdg120+1)"},
		{version: "12.17", wantErr: "postgres 12.17 is not supported"},
		{version: "devel", wantErr: "error parsing server version"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := compareServerVersion(tt.version)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
