package shader

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/richinsley/raymarcher/translator"
)

//go:embed glsl/screenspace.vert.glsl
var screenSpaceVertexSource string

//go:embed glsl/raymarch.frag.glsl
var raymarchFragmentSource string

// ScreenSpaceVertex returns the GLSL 4.10 pass-through vertex stage.
func ScreenSpaceVertex() string {
	return screenSpaceVertexSource
}

// RaymarchFragment returns the built-in WebGL2 raymarch fragment stage.
func RaymarchFragment() string {
	return raymarchFragmentSource
}

// Sources holds the two stages of a program ready for compilation.
type Sources struct {
	Vertex   string
	Fragment string
	// Uniforms maps source uniform names to names in Fragment. It is nil when
	// Fragment was not translated.
	Uniforms map[string]string
}

// LoadRaymarch returns the raymarch program sources with the fragment stage
// translated to desktop GLSL. fragmentPath, when non-empty, replaces the
// built-in fragment stage with a WebGL2 shader read from disk.
func LoadRaymarch(fragmentPath string) (*Sources, error) {
	frag := raymarchFragmentSource
	if fragmentPath != "" {
		data, err := os.ReadFile(fragmentPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read fragment shader: %w", err)
		}
		frag = string(data)
	}

	res, err := translator.TranslateFragment(frag)
	if err != nil {
		return nil, err
	}

	return &Sources{
		Vertex:   screenSpaceVertexSource,
		Fragment: res.Code,
		Uniforms: res.Uniforms,
	}, nil
}
