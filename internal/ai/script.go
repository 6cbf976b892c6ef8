package ai

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kinemotion/internal/locomotion"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed brains/*.tengo
var brainsFS embed.FS

// ScriptTimeout bounds one Think call of a script brain.
const ScriptTimeout = 10 * time.Millisecond

// Scripts define think(ai, memory); this line calls it each frame.
const thinkDispatch = "\nthink(__ai, __memory)\n"

// Library holds compiled brain scripts by name.
type Library struct {
	Dir      string // empty when loaded from the embedded scripts
	compiled map[string]*tengo.Compiled
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{compiled: make(map[string]*tengo.Compiled)}
}

// LoadLibrary compiles every script in dir, or the embedded scripts when
// dir is empty or missing.
func LoadLibrary(dir string) (*Library, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			l, err := loadFS(os.DirFS(dir), ".")
			if err != nil {
				return nil, err
			}
			l.Dir = dir
			return l, nil
		}
		log.Printf("AI: %s not found, using embedded brains", dir)
	}
	return loadFS(brainsFS, "brains")
}

func loadFS(fsys fs.FS, root string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("ai: read %s: %w", root, err)
	}
	l := NewLibrary()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".tengo" {
			continue
		}
		path := filepath.ToSlash(filepath.Join(root, e.Name()))
		src, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("ai: load %s: %w", path, err)
		}
		if err := l.Compile(scriptName(path), src); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Compile adds or replaces the script called name.
func (l *Library) Compile(name string, src []byte) error {
	script := tengo.NewScript(append(append([]byte{}, src...), thinkDispatch...))
	_ = script.Add("__ai", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("ai: compile %s: %w", name, err)
	}
	l.compiled[name] = compiled
	return nil
}

// Reload recompiles the script at path. A script that fails to compile
// leaves the previous version in place.
func (l *Library) Reload(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("ai: load %s: %w", path, err)
	}
	name := scriptName(path)
	return name, l.Compile(name, src)
}

// Names lists the compiled scripts in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.compiled))
	for name := range l.compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Script creates a brain running the named script with fresh memory.
func (l *Library) Script(name string) (*ScriptBrain, error) {
	c, ok := l.compiled[name]
	if !ok {
		return nil, fmt.Errorf("ai: script %q: %w", name, ErrUnknownBrain)
	}
	return &ScriptBrain{
		Name:     name,
		compiled: c.Clone(),
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		Timeout:  ScriptTimeout,
	}, nil
}

// Brain builds a brain from a component's kind and script fields.
func (l *Library) Brain(kind, script string) (Brain, error) {
	switch kind {
	case "", "idle":
		return IdleBrain{}, nil
	case "chase":
		return NewChaseBrain(), nil
	case "chase_sight":
		c := NewChaseBrain()
		c.NeedsSight = true
		return c, nil
	case "script":
		return l.Script(script)
	}
	return nil, fmt.Errorf("ai: kind %q: %w", kind, ErrUnknownBrain)
}

func scriptName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ScriptBrain runs a tengo script. Each brain owns a clone of the compiled
// script and a memory map that survives between frames.
type ScriptBrain struct {
	Name    string
	Timeout time.Duration

	compiled *tengo.Compiled
	memory   *tengo.Map
	pending  []locomotion.Intent
	failed   bool
}

func (b *ScriptBrain) Think(p Perception) []locomotion.Intent {
	b.pending = b.pending[:0]
	if err := b.compiled.Set("__ai", b.bindings(p)); err != nil {
		b.report(err)
		return nil
	}
	if err := b.compiled.Set("__memory", b.memory); err != nil {
		b.report(err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()
	if err := b.compiled.RunContext(ctx); err != nil {
		b.report(err)
		return nil
	}
	b.failed = false
	if len(b.pending) == 0 {
		return nil
	}
	return append([]locomotion.Intent(nil), b.pending...)
}

// report logs the first failure of a run of failures.
func (b *ScriptBrain) report(err error) {
	if b.failed {
		return
	}
	b.failed = true
	if errors.Is(err, context.DeadlineExceeded) {
		log.Printf("AI: brain %s exceeded %s", b.Name, b.Timeout)
		return
	}
	log.Printf("AI: brain %s: %v", b.Name, err)
}

func (b *ScriptBrain) bindings(p Perception) *tengo.ImmutableMap {
	to := p.ToTarget()
	flat := to
	flat.Y = 0
	local := p.Local(flat)

	values := map[string]tengo.Object{
		"position":        vec3(p.Position),
		"yaw":             &tengo.Float{Value: float64(p.Yaw)},
		"grounded":        boolObject(p.Grounded),
		"can_dash":        boolObject(p.CanDash),
		"dt":              &tengo.Float{Value: float64(p.DT)},
		"has_target":      boolObject(p.HasTarget),
		"target_visible":  boolObject(p.TargetVisible),
		"target":          vec3(p.Target),
		"target_distance": &tengo.Float{Value: float64(rl.Vector3Length(flat))},
		"target_height":   &tengo.Float{Value: float64(to.Y)},
		"target_local": &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: float64(local.X)},
			&tengo.Float{Value: float64(local.Y)},
		}},
	}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		speed := 1.0
		if len(args) > 2 {
			speed = toFloat(args[2])
		}
		b.pending = append(b.pending, locomotion.Move{
			Direction:       rl.Vector2{X: float32(toFloat(args[0])), Y: float32(toFloat(args[1]))},
			SpeedMultiplier: float32(speed),
		})
		return tengo.TrueValue, nil
	}}
	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		b.pending = append(b.pending, locomotion.Jump{})
		return tengo.TrueValue, nil
	}}
	values["dash"] = &tengo.UserFunction{Name: "dash", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		b.pending = append(b.pending, locomotion.Dash{
			Direction: rl.Vector2{X: float32(toFloat(args[0])), Y: float32(toFloat(args[1]))},
		})
		return tengo.TrueValue, nil
	}}
	values["attack"] = &tengo.UserFunction{Name: "attack", Value: func(args ...tengo.Object) (tengo.Object, error) {
		dir := rl.Vector3{}
		if p.HasTarget {
			dir = rl.Vector3Normalize(to)
		}
		b.pending = append(b.pending, locomotion.Attack{Direction: dir})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vec3(v rl.Vector3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: float64(v.X)},
		&tengo.Float{Value: float64(v.Y)},
		&tengo.Float{Value: float64(v.Z)},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func toFloat(o tengo.Object) float64 {
	f, _ := tengo.ToFloat64(o)
	return f
}
