package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

// Fixed uniform locations shared by every user program.
const (
	TimeLocation    = 0
	PointerLocation = 1
	SizeLocation    = 3
	// ModeLocation is the channel selector of the post-process program.
	ModeLocation = 0
)

// The quad feeds clip-space positions at attribute 0 and aspect-corrected
// coordinates at attribute 1; user fragment shaders read the latter as uv.
const bypassVertexSourceGL = `#version 430
layout(location = 0) in vec3 pos;
layout(location = 1) in vec3 tex;
sample smooth out vec2 uv;
void main() {
    gl_Position = vec4(pos, 1.0);
    uv = tex.xy;
}
`

const postFragmentSourceGL = `#version 430
sample smooth in vec2 uv;
out vec4 color;
uniform sampler2D frame;
layout(location = 0) uniform int mode;

vec3 hsb2rgb(vec3 c) {
    vec3 rgb = clamp(abs(mod(c.x * 6.0 + vec3(0.0, 4.0, 2.0), 6.0) - 3.0) - 1.0, 0.0, 1.0);
    rgb = rgb * rgb * (3.0 - 2.0 * rgb);
    return c.z * mix(vec3(1.0), rgb, c.y);
}

void main() {
    vec2 size = vec2(textureSize(frame, 0));
    // undo the aspect correction baked into the quad
    vec2 p = uv / max(vec2(1.0), size / size.yx);
    vec2 st = (p + 1.0) * 0.5;
    vec4 c = texture(frame, st);
    switch (mode) {
    case 1: color = vec4(vec3(c.r), 1.0); break;
    case 2: color = vec4(vec3(c.g), 1.0); break;
    case 3: color = vec4(vec3(c.b), 1.0); break;
    case 4: color = abs(c); break;
    case 5: color = vec4(1.0 - c.rgb, 1.0); break;
    case 6: color = vec4(hsb2rgb(clamp(vec3(st, 1.0), 0.0, 1.0)), 1.0); break;
    default: color = c;
    }
}
`

const overlayVertexSourceGL = `#version 430
layout(location = 0) in vec4 vert;
out vec2 st;
void main() {
    gl_Position = vec4(vert.xy, 0.0, 1.0);
    st = vert.zw;
}
`

const overlayFragmentSourceGL = `#version 430
in vec2 st;
out vec4 color;
uniform sampler2D glyphs;
void main() { color = texture(glyphs, st); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

// Translated together with WebGL2 fragment shaders so varying names stay in sync.
const bypassVertexSourceGLES = `#version 300 es
layout(location = 0) in vec3 pos;
layout(location = 1) in vec3 tex;
out vec2 uv;
void main() {
    gl_Position = vec4(pos, 1.0);
    uv = tex.xy;
}
`

// Uniform names WebGL2 shaders declare instead of fixed locations.
const (
	TimeUniform    = "uTime"
	PointerUniform = "uPointer"
	SizeUniform    = "uSize"
)

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader(dialect Dialect) string {
	if dialect == DialectWebGL2 {
		return bypassVertexSourceGLES
	}
	return bypassVertexSourceGL
}

func GetPostFragmentShader() string {
	return postFragmentSourceGL
}

func GetOverlayShaders() (vertex, fragment string) {
	return overlayVertexSourceGL, overlayFragmentSourceGL
}
