package translator

import (
	"context"
	"fmt"

	gst "github.com/richinsley/goshadertranslator"
)

var translator *gst.ShaderTranslator

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	if translator == nil {
		ctx := context.Background()
		t, err := gst.NewShaderTranslator(ctx)
		if err != nil {
			return nil, fmt.Errorf("create shader translator: %w", err)
		}
		translator = t
	}
	return translator, nil
}

// Stage is a WebGL2 shader stage rewritten as desktop GLSL 4.10.
type Stage struct {
	Code string
	// Names maps identifiers of the WebGL2 source to the names the
	// translator emitted for them.
	Names map[string]string
}

// MappedName returns the emitted name of a source identifier.
func (s *Stage) MappedName(name string) (string, bool) {
	mapped, ok := s.Names[name]
	return mapped, ok
}

// Translate converts a WebGL2 "vertex" or "fragment" stage.
func Translate(src, stage string) (*Stage, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	out, err := t.TranslateShader(src, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return &Stage{Code: out.Code, Names: mappedNames(out.Variables)}, nil
}

func mappedNames(vars map[string]gst.ShaderVariable) map[string]string {
	names := make(map[string]string, len(vars))
	for name, v := range vars {
		names[name] = v.MappedName
	}
	return names
}
