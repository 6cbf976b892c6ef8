package tuning

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"kinemotion/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a profile name is not in the set.
var ErrUnknownProfile = errors.New("unknown tuning profile")

// Profile is one movement bundle as written in a YAML file. Angles are in
// degrees. Zero fields fall back to the stock defaults.
type Profile struct {
	Name            string     `yaml:"name"`
	Acceleration    float32    `yaml:"acceleration"`
	Damping         float32    `yaml:"damping"`
	JumpImpulse     float32    `yaml:"jump_impulse"`
	MaxSlopeDeg     float32    `yaml:"max_slope_deg"`
	NoSlopeLimit    bool       `yaml:"no_slope_limit"`
	GravityScale    float32    `yaml:"gravity_scale"`
	Dash            DashSpec   `yaml:"dash"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
	StepCueInterval float32    `yaml:"step_cue_interval"`
	GroundCast      CasterSpec `yaml:"ground_cast"`
}

type DashSpec struct {
	UpBoost      float32 `yaml:"up_boost"`
	ImpulseScale float32 `yaml:"impulse_scale"`
	Cooldown     float32 `yaml:"cooldown"`
}

type CasterSpec struct {
	Scale       float32    `yaml:"scale"`
	Offset      [3]float32 `yaml:"offset"`
	MaxDistance float32    `yaml:"max_distance"`
	MaxHits     int        `yaml:"max_hits"`
}

// Parse decodes one profile. name is used when the document has none.
func Parse(data []byte, name string) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("tuning: unmarshal %s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("tuning: %s: %w", p.Name, err)
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.Damping < 0 || p.Damping >= 1 {
		return fmt.Errorf("damping %.3f outside [0, 1)", p.Damping)
	}
	if p.MaxSlopeDeg < 0 || p.MaxSlopeDeg > 90 {
		return fmt.Errorf("max_slope_deg %.1f outside [0, 90]", p.MaxSlopeDeg)
	}
	if p.GroundCast.MaxHits < 0 {
		return fmt.Errorf("ground_cast.max_hits %d is negative", p.GroundCast.MaxHits)
	}
	return nil
}

// Tuning converts the profile into locomotion parameters.
func (p Profile) Tuning() locomotion.Tuning {
	t := locomotion.DefaultTuning()
	set(&t.Acceleration, p.Acceleration)
	set(&t.Damping, p.Damping)
	set(&t.JumpImpulse, p.JumpImpulse)
	set(&t.GravityScale, p.GravityScale)
	set(&t.DashUpBoost, p.Dash.UpBoost)
	set(&t.DashImpulseScale, p.Dash.ImpulseScale)
	set(&t.DashCooldown, p.Dash.Cooldown)
	set(&t.LookSensitivity, p.LookSensitivity)
	set(&t.StepCueInterval, p.StepCueInterval)

	switch {
	case p.NoSlopeLimit:
		t = t.WithoutSlopeLimit()
	case p.MaxSlopeDeg > 0:
		t = t.WithSlopeLimit(p.MaxSlopeDeg * rl.Deg2rad)
	}
	return t
}

// Caster converts the ground_cast section.
func (p Profile) Caster() locomotion.GroundCaster {
	c := locomotion.DefaultGroundCaster()
	set(&c.Scale, p.GroundCast.Scale)
	set(&c.MaxDistance, p.GroundCast.MaxDistance)
	if p.GroundCast.MaxHits > 0 {
		c.MaxHits = p.GroundCast.MaxHits
	}
	o := p.GroundCast.Offset
	c.Offset = rl.Vector3{X: o[0], Y: o[1], Z: o[2]}
	return c
}

func set(dst *float32, v float32) {
	if v != 0 {
		*dst = v
	}
}

// IsProfileFile reports whether path looks like a tuning profile.
func IsProfileFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func profileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
