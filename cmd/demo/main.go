package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"glsafe/core"
	"glsafe/math"
	"glsafe/opengl"
	"glsafe/renderer"
	"glsafe/scene"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML file with window settings",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "window width in screen coordinates",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "window height in screen coordinates",
	}
	fullscreenFlag = &cli.BoolFlag{
		Name:  "fullscreen",
		Usage: "open on the primary monitor",
	}
	vsyncFlag = &cli.BoolFlag{
		Name:  "vsync",
		Usage: "wait for vertical blank when swapping",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "debug context and debug-level logging",
	}
	modelFlag = &cli.StringFlag{
		Name:    "model",
		Aliases: []string{"gltf"},
		Usage:   "glTF, GLB or OBJ model to add to the scene",
	}
	shadowsFlag = &cli.BoolFlag{
		Name:  "shadows",
		Usage: "render sun shadows",
		Value: true,
	}
	shadowMapSizeFlag = &cli.IntFlag{
		Name:  "shadow-map-size",
		Usage: "shadow map width and height in texels",
		Value: 2048,
	}
	skyboxFlag = &cli.BoolFlag{
		Name:  "skybox",
		Usage: "draw the sky gradient",
		Value: true,
	}
	exposureFlag = &cli.Float64Flag{
		Name:  "exposure",
		Usage: "tone mapping exposure",
		Value: 1,
	}
	dayLengthFlag = &cli.Float64Flag{
		Name:  "day-length",
		Usage: "seconds per day/night cycle, 0 to stop the clock",
		Value: 120,
	}
)

// demoConfig is everything the command line decides.
type demoConfig struct {
	Window    core.WindowConfig
	Renderer  renderer.Settings
	Model     string
	DayLength float32
}

func newApp(run func(demoConfig) error) *cli.App {
	return &cli.App{
		Name:  "demo",
		Usage: "render a lit scene through the checked OpenGL layer",
		Flags: []cli.Flag{
			configFlag, widthFlag, heightFlag, fullscreenFlag, vsyncFlag, debugFlag,
			modelFlag, shadowsFlag, shadowMapSizeFlag, skyboxFlag, exposureFlag, dayLengthFlag,
		},
		Action: func(c *cli.Context) error {
			config, err := resolveConfig(c)
			if err != nil {
				return err
			}
			return run(config)
		},
	}
}

// resolveConfig layers the defaults, the config file and the flags, in
// that order.
func resolveConfig(c *cli.Context) (demoConfig, error) {
	window := core.DefaultWindowConfig()
	if path := c.String(configFlag.Name); path != "" {
		var err error
		if window, err = core.LoadWindowConfig(path); err != nil {
			return demoConfig{}, err
		}
	}
	if c.IsSet(widthFlag.Name) {
		window.Width = c.Int(widthFlag.Name)
	}
	if c.IsSet(heightFlag.Name) {
		window.Height = c.Int(heightFlag.Name)
	}
	if c.IsSet(fullscreenFlag.Name) {
		window.Fullscreen = c.Bool(fullscreenFlag.Name)
	}
	if c.IsSet(vsyncFlag.Name) {
		window.VSync = c.Bool(vsyncFlag.Name)
	}
	if c.IsSet(debugFlag.Name) {
		window.Debug = c.Bool(debugFlag.Name)
	}
	if err := window.Validate(); err != nil {
		return demoConfig{}, err
	}

	settings := renderer.DefaultSettings()
	settings.Shadows = c.Bool(shadowsFlag.Name)
	settings.ShadowMapSize = c.Int(shadowMapSizeFlag.Name)
	settings.Skybox = c.Bool(skyboxFlag.Name)
	settings.Exposure = float32(c.Float64(exposureFlag.Name))

	dayLength := c.Float64(dayLengthFlag.Name)
	if dayLength < 0 {
		return demoConfig{}, fmt.Errorf("invalid day length %g", dayLength)
	}
	return demoConfig{
		Window:    window,
		Renderer:  settings,
		Model:     c.String(modelFlag.Name),
		DayLength: float32(dayLength),
	}, nil
}

// loadModel picks a loader by file extension.
func loadModel(path string) ([]*scene.Node, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		return scene.LoadGLTF(path)
	case ".obj":
		return scene.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := newApp(run).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(config demoConfig) error {
	logger := newLogger(config.Window.Debug)
	slog.SetDefault(logger)

	window, err := core.NewWindow(config.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	fns, err := window.Driver()
	if err != nil {
		return err
	}
	ctx, err := opengl.NewContext(fns, opengl.WithLogger(logger), opengl.WithDebugOutput(config.Window.Debug))
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	limits := ctx.Limits()
	logger.Info("OpenGL ready", "version", ctx.Version(),
		"maxTextureSize", limits.MaxTextureSize, "maxSamples", limits.MaxSamples)

	width, height := window.GetFramebufferSize()
	r, err := renderer.New(ctx, width, height, config.Renderer)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Delete()

	aspect := float32(width) / float32(max(height, 1))
	s := scene.NewDemoScene(aspect)
	orbit := scene.NewOrbitCamera(math.Vec3{Y: 0.5}, 7.5, s.Camera.FOV, aspect)
	s.Camera = &orbit.Camera
	if config.Model != "" {
		nodes, err := loadModel(config.Model)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			s.AddNode(n)
		}
		logger.Info("loaded model", "path", config.Model, "nodes", len(nodes))
	}

	controls := newOrbitControls(window, orbit, r)
	dayNight := NewDayNight()
	dayNight.Speed = config.DayLength
	dayNight.Active = config.DayLength > 0
	var frames frameCounter
	selected := "nothing selected"

	last := core.Time()
	for !window.ShouldClose() {
		now := core.Time()
		dt := float32(now - last)
		last = now

		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			window.SetShouldClose(true)
		}
		if controls.update(dt) {
			dayNight.Active = !dayNight.Active && config.DayLength > 0
		}
		if n, ok := controls.pick(s); ok {
			selected = n.Name
			logger.Debug("picked", "node", n.Name)
		}
		dayNight.Update(dt)
		dayNight.Apply(s)

		width, height = window.GetFramebufferSize()
		if err := r.Resize(width, height); err != nil {
			return err
		}
		orbit.SetViewport(width, height)
		if err := r.Render(s); err != nil {
			return err
		}
		window.SwapBuffers()

		if line, ok := frames.tick(now, r.Stats()); ok {
			window.SetTitle(fmt.Sprintf("%s | %s | %s | %s", config.Window.Title, line, dayNight.TimeOfDayStr(), selected))
		}
	}
	return nil
}

// orbitControls turn mouse and keyboard input into camera motion. A right
// drag or the arrow keys orbit, the wheel and W/S zoom, Q/E change the
// exposure and space pauses the day/night clock. A left click selects the
// object under the cursor.
type orbitControls struct {
	window   *core.Window
	camera   *scene.OrbitCamera
	renderer *renderer.Renderer

	lastX, lastY float64
	dragging     bool
	spaceDown    bool
	clickDown    bool
	clicked      bool
}

func newOrbitControls(w *core.Window, cam *scene.OrbitCamera, r *renderer.Renderer) *orbitControls {
	c := &orbitControls{window: w, camera: cam, renderer: r}
	w.SetScrollCallback(func(_, yoff float64) {
		cam.Zoom(-float32(yoff) * 0.5)
	})
	return c
}

// update applies one frame of input. It reports whether space was pressed.
func (c *orbitControls) update(dt float32) bool {
	const (
		mouseSpeed = 0.005
		keySpeed   = 1.5
		zoomSpeed  = 4
	)
	w := c.window
	x, y := w.GetCursorPos()
	if w.IsMouseButtonPressed(core.MouseButtonRight) {
		if c.dragging {
			c.camera.Orbit(-float32(x-c.lastX)*mouseSpeed, float32(y-c.lastY)*mouseSpeed)
		}
		c.dragging = true
	} else {
		c.dragging = false
	}
	c.lastX, c.lastY = x, y

	click := w.IsMouseButtonPressed(core.MouseButtonLeft)
	c.clicked = click && !c.clickDown
	c.clickDown = click

	var yaw, pitch, zoom float32
	if w.IsKeyPressed(core.KeyLeft) {
		yaw -= keySpeed * dt
	}
	if w.IsKeyPressed(core.KeyRight) {
		yaw += keySpeed * dt
	}
	if w.IsKeyPressed(core.KeyUp) {
		pitch += keySpeed * dt
	}
	if w.IsKeyPressed(core.KeyDown) {
		pitch -= keySpeed * dt
	}
	if w.IsKeyPressed(core.KeyW) {
		zoom -= zoomSpeed * dt
	}
	if w.IsKeyPressed(core.KeyS) {
		zoom += zoomSpeed * dt
	}
	if yaw != 0 || pitch != 0 {
		c.camera.Orbit(yaw, pitch)
	}
	if zoom != 0 {
		c.camera.Zoom(zoom)
	}

	exposure := c.renderer.Settings().Exposure
	if w.IsKeyPressed(core.KeyE) {
		c.renderer.SetExposure(exposure * (1 + dt))
	}
	if w.IsKeyPressed(core.KeyQ) {
		c.renderer.SetExposure(max(exposure*(1-dt), 0.05))
	}

	space := w.IsKeyPressed(core.KeySpace)
	pressed := space && !c.spaceDown
	c.spaceDown = space
	return pressed
}

// pick returns the node under the cursor if the left button went down this
// frame.
func (c *orbitControls) pick(s *scene.Scene) (*scene.Node, bool) {
	if !c.clicked {
		return nil, false
	}
	width, height := c.window.GetSize()
	if width <= 0 || height <= 0 {
		return nil, false
	}
	hit, ok := s.Pick(c.camera.ScreenRay(float32(c.lastX), float32(c.lastY), width, height))
	return hit.Node, ok
}
