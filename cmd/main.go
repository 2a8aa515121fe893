package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/richinsley/glslcanvas/assets"
	"github.com/richinsley/glslcanvas/glfwcontext"
	"github.com/richinsley/glslcanvas/logging"
	"github.com/richinsley/glslcanvas/options"
	"github.com/richinsley/glslcanvas/renderer"
	"github.com/richinsley/glslcanvas/server"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Also write logs to this file (rotated)",
	}
	logColorFlag = &cli.BoolFlag{
		Name:  "log.color",
		Usage: "Color the log prefix on terminals",
		Value: true,
	}

	fragFlag = &cli.StringFlag{
		Name:  "frag",
		Usage: "Fragment shader: http(s) URL, file path or embedded asset path",
		Value: options.DefaultFragment,
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "Canvas width (0 = monitor width)",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "Canvas height (0 = monitor height)",
	}
	fullscreenFlag = &cli.BoolFlag{
		Name:  "fullscreen",
		Usage: "Open the canvas fullscreen on the primary monitor",
	}
	translateFlag = &cli.BoolFlag{
		Name:  "translate",
		Usage: "Translate WebGL shader source to desktop GLSL before compiling",
		Value: true,
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "fetch.timeout",
		Usage: "Timeout for loading the fragment shader over HTTP",
		Value: 30 * time.Second,
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Listen address",
		Value: ":8080",
	}
	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory containing shader/frag.glsl (default: embedded assets)",
	}

	runFlags = []cli.Flag{fragFlag, widthFlag, heightFlag, fullscreenFlag, translateFlag, timeoutFlag}
)

func init() {
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:   "glslcanvas",
		Usage:  "render a fragment shader across a full window",
		Flags:  append([]cli.Flag{configFlag, logFileFlag, logColorFlag}, runFlags...),
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Open the canvas and render the shader (default)",
				Flags:  runFlags,
				Action: runAction,
			},
			{
				Name:   "serve",
				Usage:  "Serve the shader assets at /shader/",
				Flags:  []cli.Flag{addrFlag, dirFlag},
				Action: serveAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// loadOptions layers defaults, the config file and explicitly set flags.
func loadOptions(c *cli.Context) (*options.ShaderOptions, error) {
	opts := options.Defaults()
	if path := c.String(configFlag.Name); path != "" {
		if err := opts.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(fragFlag.Name) {
		opts.Shader.Fragment = c.String(fragFlag.Name)
	}
	if c.IsSet(widthFlag.Name) {
		opts.Window.Width = c.Int(widthFlag.Name)
	}
	if c.IsSet(heightFlag.Name) {
		opts.Window.Height = c.Int(heightFlag.Name)
	}
	if c.IsSet(fullscreenFlag.Name) {
		opts.Window.Fullscreen = c.Bool(fullscreenFlag.Name)
	}
	if c.IsSet(translateFlag.Name) {
		opts.Shader.Translate = c.Bool(translateFlag.Name)
	}
	if c.IsSet(timeoutFlag.Name) {
		opts.Shader.FetchTimeout = c.Duration(timeoutFlag.Name).Seconds()
	}
	if c.IsSet(logFileFlag.Name) {
		opts.Log.File = c.String(logFileFlag.Name)
	}
	if c.IsSet(logColorFlag.Name) {
		opts.Log.Color = c.Bool(logColorFlag.Name)
	}
	if c.IsSet(addrFlag.Name) {
		opts.Server.Addr = c.String(addrFlag.Name)
	}
	if c.IsSet(dirFlag.Name) {
		opts.Server.Dir = c.String(dirFlag.Name)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func setupLogging(opts *options.ShaderOptions) func() {
	closer := logging.Setup(logging.Config{
		Prefix: "glslcanvas ",
		Color:  opts.Log.Color,
		File:   opts.Log.File,
	})
	return func() { _ = closer.Close() }
}

func runAction(c *cli.Context) error {
	opts, err := loadOptions(c)
	if err != nil {
		return err
	}
	defer setupLogging(opts)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := &assets.Loader{Timeout: time.Duration(opts.Shader.FetchTimeout * float64(time.Second))}
	res, err := loader.Load(ctx, opts.Shader.Fragment)
	if err != nil {
		return fmt.Errorf("failed to load shader sources: %w", err)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("%w: %v", renderer.ErrUnsupported, err)
	}
	defer glfwcontext.TerminateGraphics()

	canvas, err := glfwcontext.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	defer canvas.Shutdown()

	session, err := renderer.Setup(canvas, res)
	if err != nil {
		return err
	}
	log.Println("Starting render loop...")
	if err := session.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func serveAction(c *cli.Context) error {
	opts, err := loadOptions(c)
	if err != nil {
		return err
	}
	defer setupLogging(opts)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root fs.FS = assets.Embedded
	if opts.Server.Dir != "" {
		root = os.DirFS(opts.Server.Dir)
	}
	return server.Serve(ctx, opts.Server.Addr, root)
}
