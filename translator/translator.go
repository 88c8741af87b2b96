package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Result is a translated shader stage.
type Result struct {
	Code string
	// Uniforms maps each uniform name in the source to its name in Code.
	Uniforms map[string]string
}

// TranslateFragment converts a WebGL2 (GLSL ES 3.00) fragment shader to
// desktop GLSL 4.10.
func TranslateFragment(source string) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}

	out, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	res := &Result{
		Code:     out.Code,
		Uniforms: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		res.Uniforms[name] = v.MappedName
	}
	return res, nil
}
