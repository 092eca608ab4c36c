package server_test

import (
	"testing"

	"stockcount/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	c := server.Config{Port: "8080"}
	assert.Equal(t, ":8080", c.Addr())
}

func TestConfig_AuthEnabled(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"WithKey", "secret", true},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{ApiKey: tt.apiKey}
			assert.Equal(t, tt.want, c.AuthEnabled())
		})
	}
}
