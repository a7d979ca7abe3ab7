package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitComposed(t *testing.T) {
	const header = "#version 430\nlayout(location = 0) uniform float time;\n"
	const compute = "layout(local_size_x = 16) in;\nvoid main() {\n\t// keep\ttabs\n}\n\n"
	const fragment = "out vec4 color;\r\nvoid main() { color = vec4(1.0); }\n"
	src := header + "$compute[16, 1024]\n" + compute + "$fragment\n" + fragment

	block, err := Split(src)
	if err != nil {
		t.Fatal(err)
	}
	if block.Compute != header+compute {
		t.Errorf("compute stage mismatch:\n%q\nwant\n%q", block.Compute, header+compute)
	}
	if block.Fragment != header+fragment {
		t.Errorf("fragment stage mismatch:\n%q\nwant\n%q", block.Fragment, header+fragment)
	}
	if block.Sizing != (ComputeSizing{ItemSize: 16, NumItems: 1024}) {
		t.Errorf("unexpected sizing %+v", block.Sizing)
	}
	if block.Sizing.Bytes() != 16*1024 {
		t.Errorf("unexpected byte size %d", block.Sizing.Bytes())
	}
	if !block.HasCompute() {
		t.Error("expected compute stage")
	}
}

func TestSplitBareMarkers(t *testing.T) {
	block, err := Split("$ \t\n compute\nC$\nF")
	if err != nil {
		t.Fatal(err)
	}
	if block.Compute != "C" || block.Fragment != "F" {
		t.Errorf("got compute %q fragment %q", block.Compute, block.Fragment)
	}
	if block.Sizing != (ComputeSizing{}) {
		t.Errorf("expected zero sizing, got %+v", block.Sizing)
	}
}

func TestSplitNoMarker(t *testing.T) {
	const src = "#version 430\nvoid main() {}\n"
	block, err := Split(src)
	if err != nil {
		t.Fatal(err)
	}
	if block.Fragment != src || block.HasCompute() {
		t.Errorf("expected fragment-only block, got %+v", block)
	}
}

func TestSplitErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		want error
	}{
		{name: "no keyword", src: "header\n$fragment\nvoid main(){}\n", want: ErrNoComputeBlock},
		{name: "no second marker", src: "$compute[4,4]\nvoid main(){}\n", want: ErrFragmentRequired},
		{name: "keyword at eof", src: "$compute", want: ErrFragmentRequired},
		{name: "empty fragment", src: "$compute\nvoid main(){}\n$\n  \n", want: ErrFragmentRequired},
		{name: "marker line at eof", src: "$compute\nvoid main(){}\n$", want: ErrFragmentRequired},
	} {
		_, err := Split(test.src)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, err, test.want)
		}
	}
}

func TestParseDirective(t *testing.T) {
	for _, test := range []struct {
		line string
		want ComputeSizing
	}{
		{"[4,64]", ComputeSizing{4, 64}},
		{" [ 4 , 64 ] // trailing", ComputeSizing{4, 64}},
		{"[4;64]", ComputeSizing{}},
		{"[four,64]", ComputeSizing{}},
		{"[4,64", ComputeSizing{}},
		{"[-4,64]", ComputeSizing{}},
		{"", ComputeSizing{}},
		{"// no directive [1,2]", ComputeSizing{}},
	} {
		if got := parseDirective(test.line); got != test.want {
			t.Errorf("parseDirective(%q) = %+v, want %+v", test.line, got, test.want)
		}
	}
}

func TestSourceStages(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	// A marker in a non-.comp file is plain fragment text.
	frag := write("a.frag", "// $compute\nvoid main(){}\n")
	comp := write("b.comp", "$compute[1,1]\nC\n$\nF\n")
	essl := write("c.essl", "#version 300 es\n")
	bad := write("d.comp", "$fragment\nF\n")

	for _, test := range []struct {
		path    string
		compute bool
		dialect Dialect
		err     error
	}{
		{path: frag},
		{path: comp, compute: true},
		{path: essl, dialect: DialectWebGL2},
		{path: bad, err: ErrNoComputeBlock},
	} {
		src, err := Load(test.path)
		if err != nil {
			t.Fatal(err)
		}
		if src.ModTime.IsZero() {
			t.Errorf("%s: missing modification time", test.path)
		}
		block, err := src.Stages()
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.path, err, test.err)
			continue
		}
		if err != nil {
			continue
		}
		if block.HasCompute() != test.compute || block.Dialect != test.dialect {
			t.Errorf("%s: unexpected block %+v", test.path, block)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.frag")); err == nil {
		t.Error("expected error loading missing file")
	}
}
