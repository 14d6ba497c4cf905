// Package renderer draws the building preview with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/assets"
	"github.com/Faultbox/towerview/internal/engine/mesh"
	"github.com/Faultbox/towerview/internal/engine/shader"
	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Camera is the per-frame camera state handed to Draw.
type Camera struct {
	View       math.Mat4
	Projection math.Mat4
}

// buffer is an uploaded vertex buffer.
type buffer struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	building buffer
	ground   buffer
	top      float32

	lightDir math.Vec3
}

// New creates a renderer for a building spanning minB..maxB in model space.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, minB, maxB math.Vec3) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		top:      maxB.Y,
		lightDir: math.Vec3{X: -0.4, Y: -1, Z: -0.3},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.62, 0.72, 0.82, 1.0)

	var err error
	r.program, err = shader.Load(assets.BuildingVertexShader, assets.BuildingFragmentShader,
		"uModel", "uView", "uProjection", "uLightDir", "uBaseColor", "uTopHeight")
	if err != nil {
		return nil, fmt.Errorf("failed to create building shader: %w", err)
	}

	r.SetBuilding(minB, maxB)
	r.ground = upload(mesh.Ground(200))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// SetBuilding replaces the building volume, e.g. after a scene reload.
func (r *Renderer) SetBuilding(minB, maxB math.Vec3) {
	r.building.release()
	r.building = upload(mesh.Box(minB, maxB))
	r.top = maxB.Y
	logger.Debug("building mesh uploaded",
		zap.Uint32("vao", r.building.vao),
		zap.Float32("height", maxB.Y-minB.Y),
	)
}

// SetLight sets the direction sunlight travels in.
func (r *Renderer) SetLight(dir math.Vec3) {
	r.lightDir = dir
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.building.release()
	r.ground.release()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the ground and the building at its model transform.
func (r *Renderer) Draw(cam Camera, model math.Mat4) {
	r.program.Use()
	r.program.SetMat4("uView", cam.View)
	r.program.SetMat4("uProjection", cam.Projection)
	r.program.SetVec3("uLightDir", r.lightDir)
	r.program.SetFloat("uTopHeight", r.top)

	r.program.SetMat4("uModel", math.Identity())
	r.program.SetVec3("uBaseColor", math.Vec3{X: 0.35, Y: 0.42, Z: 0.36})
	r.ground.draw()

	r.program.SetMat4("uModel", model)
	r.program.SetVec3("uBaseColor", math.Vec3{X: 0.72, Y: 0.76, Z: 0.82})
	r.building.draw()
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	buf := make([]byte, w*h*4)
	if len(buf) == 0 {
		return buf, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&buf[0]))
	return buf, w, h
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func upload(vertices []float32) buffer {
	var m buffer
	m.count = int32(len(vertices) / mesh.FloatsPerVertex)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *buffer) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

func (m *buffer) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}
