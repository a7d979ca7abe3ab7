package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source is one read of a shader file.
type Source struct {
	Path    string
	Text    string
	ModTime time.Time
}

// Load reads the whole file at path.
func Load(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read shader file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shader file: %w", err)
	}
	return &Source{Path: path, Text: string(data), ModTime: info.ModTime()}, nil
}

// Stages splits the source into shader stages according to its extension:
// ".comp" files may carry a compute stage, ".essl" files are WebGL2 fragment
// shaders and everything else is a native fragment shader.
func (s *Source) Stages() (*StageBlock, error) {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".comp":
		block, err := Split(s.Text)
		if err != nil {
			return nil, fmt.Errorf("read composed file %s: %w", s.Path, err)
		}
		return block, nil
	case ".essl":
		return &StageBlock{Fragment: s.Text, Dialect: DialectWebGL2}, nil
	}
	return &StageBlock{Fragment: s.Text}, nil
}
