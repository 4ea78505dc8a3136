package shaders

import (
	"strings"
	"testing"
)

func TestShadersEmbedded(t *testing.T) {
	for name, src := range map[string]string{
		"basic":     BasicWGSL,
		"wireframe": WireframeWGSL,
		"overlay":   OverlayWGSL,
	} {
		if !strings.Contains(src, "fn vs_main") || !strings.Contains(src, "fn fs_main") {
			t.Errorf("%s shader is missing an entry point", name)
		}
	}
}
