package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Result is a translated shader and the names its variables were mapped to.
type Result struct {
	Code  string
	Names map[string]string
}

// ToDesktop translates WebGL 1 shader source of the given stage ("vertex" or
// "fragment") into GLSL 4.10. Only GLSL ES 1.00 is accepted.
func ToDesktop(source, stage string) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	res := &Result{
		Code:  out.Code,
		Names: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		res.Names[name] = v.MappedName
	}
	return res, nil
}
