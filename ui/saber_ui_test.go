package ui

import (
	"testing"

	"github.com/automoto/saberbeat/components"
	"github.com/automoto/saberbeat/xr"
	"github.com/stretchr/testify/assert"
)

func TestButtonLabels(t *testing.T) {
	tests := []struct {
		name    string
		session components.SessionData
		want    string
	}{
		{"vr available", components.SessionData{Support: xr.SupportedVR}, "Enter XR"},
		{"ar available", components.SessionData{Support: xr.SupportedAR}, "Enter XR"},
		{"presenting", components.SessionData{Support: xr.SupportedVR, Presenting: true}, "Exit XR"},
		{"no runtime", components.SessionData{Support: xr.NotFound}, "XR not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xrLabel(&tt.session))
		})
	}

	assert.Equal(t, "Play", playLabel(false))
	assert.Equal(t, "Stop", playLabel(true))
}
