package options

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DefaultFragment is the fixed path the fragment shader is loaded from.
const DefaultFragment = "shader/frag.glsl"

type WindowOptions struct {
	// Width and Height of the canvas; zero means the primary monitor size.
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Title      string `toml:"title"`
}

type ShaderOptions struct {
	Window WindowOptions `toml:"window"`
	Shader struct {
		// Fragment is an http(s) URL, a file path, or a path into the
		// embedded assets.
		Fragment string `toml:"fragment"`
		// Translate converts WebGL shader source to desktop GLSL before
		// compiling.
		Translate bool `toml:"translate"`
		// FetchTimeout bounds the network load, in seconds. Zero disables it.
		FetchTimeout float64 `toml:"fetch_timeout"`
	} `toml:"shader"`
	Log struct {
		File  string `toml:"file"`
		Color bool   `toml:"color"`
	} `toml:"log"`
	Server struct {
		Addr string `toml:"addr"`
		Dir  string `toml:"dir"`
	} `toml:"server"`
}

// Defaults returns the options used when nothing is configured.
func Defaults() *ShaderOptions {
	o := &ShaderOptions{}
	o.Window.Title = "glslcanvas"
	o.Shader.Fragment = DefaultFragment
	o.Shader.Translate = true
	o.Shader.FetchTimeout = 30
	o.Log.Color = true
	o.Server.Addr = ":8080"
	return o
}

// LoadFile overlays the TOML file at path onto o. Keys absent from the file
// keep their current values.
func (o *ShaderOptions) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, o)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return nil
}

// Validate reports options that cannot produce a canvas.
func (o *ShaderOptions) Validate() error {
	if o.Window.Width < 0 || o.Window.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Window.Width, o.Window.Height)
	}
	if o.Shader.Fragment == "" {
		return fmt.Errorf("no fragment shader configured")
	}
	if o.Shader.FetchTimeout < 0 {
		return fmt.Errorf("invalid fetch timeout %v", o.Shader.FetchTimeout)
	}
	return nil
}
