package ui

import (
	"testing"

	"github.com/gravitrone/tsadmin/internal/ui/components"
	"github.com/stretchr/testify/assert"
)

func TestRenderBannerIncludesSubtitleAndNoOSC(t *testing.T) {
	out := RenderBanner()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Time-Series Platform Administration")
	assert.Contains(t, clean, "─")
}
