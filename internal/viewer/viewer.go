package viewer

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/internal/engine/sound"
	"github.com/Faultbox/bve-viewer/internal/messages"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

//go:embed demo.yaml
var demoScene []byte

// SoundLoader decodes the sound file at path.
type SoundLoader func(path string) (sound.Buffer, error)

// Texture is an uploaded texture.
type Texture struct {
	Name uint32
	// Alpha is set when the texture has partially transparent pixels.
	Alpha bool
}

// TextureStore loads the textures used by materials. key, when set, is made
// fully transparent.
type TextureStore interface {
	Load(path string, key *color.RGBA) (Texture, error)
	// Release frees every texture loaded so far.
	Release()
}

// Placer receives the objects of a scene.
type Placer interface {
	CreateObject(proto scene.UnifiedObject, position math.Vector3, base, aux math.Transformation) []int
	Reset()
}

// Viewer keeps track of the open scene files and what they placed.
type Viewer struct {
	placer    Placer
	msgs      scene.MessageSink
	log       *zap.Logger
	host      sound.Host
	loadSound SoundLoader
	store     TextureStore

	files    []string
	demo     bool
	buffers  map[string]sound.Buffer
	textures map[textureKey]Texture
	sounds   []*sound.WorldSound
	objects  int
}

// New creates a viewer placing objects with placer. host and loadSound may be
// nil, in which case sounds declared by scene files are ignored.
func New(placer Placer, msgs scene.MessageSink, log *zap.Logger, host sound.Host, loadSound SoundLoader) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	if msgs == nil {
		msgs = messages.NewLog(log)
	}
	return &Viewer{
		placer:    placer,
		msgs:      msgs,
		log:       log,
		host:      host,
		loadSound: loadSound,
		buffers:   make(map[string]sound.Buffer),
		textures:  make(map[textureKey]Texture),
	}
}

// SetTextures sets where material textures are loaded. Without a store,
// textured materials are drawn untextured.
func (v *Viewer) SetTextures(store TextureStore) {
	v.store = store
}

// Files returns the open scene files.
func (v *Viewer) Files() []string {
	return v.files
}

// Objects returns the number of placed object instances.
func (v *Viewer) Objects() int {
	return v.objects
}

// Sounds returns the world sounds of the open scenes.
func (v *Viewer) Sounds() []*sound.WorldSound {
	return v.sounds
}

// Open adds scene files and loads them.
func (v *Viewer) Open(paths ...string) {
	for _, p := range paths {
		v.files = append(v.files, p)
		v.loadPath(p)
	}
}

// OpenDemo adds the built-in demonstration scene.
func (v *Viewer) OpenDemo() {
	v.demo = true
	v.loadDemo()
}

// Reload clears the world and loads every open file again. Sound buffers are
// decoded again too, so edited files are picked up.
func (v *Viewer) Reload() {
	v.reset()
	v.buffers = make(map[string]sound.Buffer)
	if v.demo {
		v.loadDemo()
	}
	for _, p := range v.files {
		v.loadPath(p)
	}
	v.log.Info("scene reloaded", zap.Int("files", len(v.files)), zap.Int("objects", v.objects))
}

// Clear closes every file and removes all objects and sounds.
func (v *Viewer) Clear() {
	v.reset()
	v.files = nil
	v.demo = false
	v.log.Info("scene cleared")
}

func (v *Viewer) reset() {
	for _, s := range v.sounds {
		s.Stop()
	}
	v.sounds = nil
	v.objects = 0
	v.placer.Reset()
	if v.store != nil && len(v.textures) > 0 {
		v.store.Release()
	}
	v.textures = make(map[textureKey]Texture)
}

func (v *Viewer) loadDemo() {
	f, err := Parse(bytes.NewReader(demoScene))
	if err != nil {
		v.msgs.AddMessage(messages.Critical, false, fmt.Sprintf("demo scene: %v", err))
		return
	}
	v.place(f)
}

func (v *Viewer) loadPath(path string) {
	f, err := LoadFile(path)
	if err != nil {
		v.msgs.AddMessage(messages.Error, errors.Is(err, fs.ErrNotExist), err.Error())
		return
	}
	v.place(f)
}

// place adds the objects and sounds of f to the world.
func (v *Viewer) place(f *File) {
	for i := range f.Objects {
		o := &f.Objects[i]
		v.resolve(f.Path, &o.Material)
		for j := range o.Parts {
			v.resolve(f.Path, &o.Parts[j].Material)
		}
		ids := v.placer.CreateObject(o.Prototype(), o.Position.vector(), o.Base.transformation(), o.Aux.transformation())
		v.objects += len(ids)
	}
	for _, s := range f.Sounds {
		buffer := v.buffer(f.Path, s.File)
		if buffer == nil {
			continue
		}
		w := sound.New(v.host, buffer)
		s.configure(w)
		v.sounds = append(v.sounds, w)
	}
	v.log.Debug("scene placed",
		zap.String("path", f.Path),
		zap.Int("objects", len(f.Objects)),
		zap.Int("sounds", len(f.Sounds)),
	)
}

type textureKey struct {
	path string
	key  color.RGBA
}

// resolve loads the texture of m.
func (v *Viewer) resolve(scenePath string, m *MaterialSpec) {
	if m.Texture == "" || v.store == nil {
		return
	}
	path := relativeTo(scenePath, m.Texture)
	key := m.transparentColor()
	k := textureKey{path: path}
	if key != nil {
		k.key = *key
	}
	if t, ok := v.textures[k]; ok {
		m.texture = t
		return
	}
	t, err := v.store.Load(path, key)
	if err != nil {
		v.msgs.AddMessage(messages.Error, errors.Is(err, fs.ErrNotExist), fmt.Sprintf("texture %s: %v", path, err))
	}
	v.textures[k] = t
	m.texture = t
}

// relativeTo resolves file against the directory of the scene file.
func relativeTo(scenePath, file string) string {
	if filepath.IsAbs(file) || scenePath == "" {
		return file
	}
	return filepath.Join(filepath.Dir(scenePath), file)
}

// buffer returns the decoded sound file, resolved relative to the scene file.
func (v *Viewer) buffer(scenePath, file string) sound.Buffer {
	if v.host == nil || v.loadSound == nil {
		return nil
	}
	path := relativeTo(scenePath, file)
	if b, ok := v.buffers[path]; ok {
		return b
	}
	b, err := v.loadSound(path)
	if err != nil {
		v.msgs.AddMessage(messages.Error, errors.Is(err, fs.ErrNotExist), fmt.Sprintf("sound %s: %v", path, err))
		v.buffers[path] = nil
		return nil
	}
	v.buffers[path] = b
	return b
}

// Update advances every world sound. Sounds further from camera than their
// radius are stopped.
func (v *Viewer) Update(elapsed float64, camera math.Vector3) {
	for _, s := range v.sounds {
		s.Update(elapsed, s.Visible(camera))
	}
}
