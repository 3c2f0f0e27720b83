package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game     GameConfig     `toml:"game"`
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Loop     LoopConfig     `toml:"loop"`
	Logging  LoggingConfig  `toml:"logging"`
}

// GameConfig holds every simulation constant. Distances are world units,
// times are seconds of simulation time.
type GameConfig struct {
	Seed int64 `toml:"seed"` // 0 = seed from the wall clock

	MapWidth      float64 `toml:"map_width"`
	GroundLevel   float64 `toml:"ground_level"`
	CameraFOV     float64 `toml:"camera_fov"` // vertical field of view
	StripHeight   float64 `toml:"strip_height"`
	MineralRadius float64 `toml:"mineral_radius"`
	MineralAmount int64   `toml:"mineral_amount"`

	GraphWidth  float64 `toml:"graph_width"`
	GraphHeight float64 `toml:"graph_height"`

	DrillSize          float64    `toml:"drill_size"`
	DrillSpeed         float64    `toml:"drill_speed"`
	DrillSpeedTiers    [3]float64 `toml:"drill_speed_tiers"` // speed levels 1, 2, 3+
	DrillAcceleration  float64    `toml:"drill_acceleration"`
	DrillRotationSpeed float64    `toml:"drill_rotation_speed"` // radians per second
	BounceSpeed        float64    `toml:"bounce_speed"`

	Vision      float64    `toml:"vision"`
	VisionTiers [3]float64 `toml:"vision_tiers"` // vision levels 1, 2, 3+

	SprintBoost    float64 `toml:"sprint_boost"`
	SprintDuration float64 `toml:"sprint_duration"`
	SprintCooldown float64 `toml:"sprint_cooldown"`

	FuelSmallAmount  float64 `toml:"fuel_small_amount"`
	FuelNormalAmount float64 `toml:"fuel_normal_amount"`
	CoalFuelValue    float64 `toml:"coal_fuel_value"` // fuel restored per coal collected

	StartingMoney        int64   `toml:"starting_money"`
	FloatingTextLifetime float64 `toml:"floating_text_lifetime"`
	UnpoweredDim         float64 `toml:"unpowered_dim"` // renderer only
}

type DataConfig struct {
	MineralList string `toml:"mineral_list"`
	ShopList    string `toml:"shop_list"`
	ScriptsDir  string `toml:"scripts_dir"`
}

// DatabaseConfig configures run history. An empty DSN disables it.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type LoopConfig struct {
	TickRate  time.Duration `toml:"tick_rate"`
	Autopilot bool          `toml:"autopilot"` // relaunch and buy automatically
	MaxRuns   int           `toml:"max_runs"`  // 0 = run until interrupted
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	return c.Loop.Validate()
}

func (l LoopConfig) Validate() error {
	switch {
	case l.TickRate <= 0:
		return fmt.Errorf("loop.tick_rate must be positive")
	case l.MaxRuns < 0:
		return fmt.Errorf("loop.max_runs must not be negative")
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (g GameConfig) Validate() error {
	switch {
	case g.MapWidth <= 0:
		return fmt.Errorf("game.map_width must be positive")
	case g.StripHeight <= 0:
		return fmt.Errorf("game.strip_height must be positive")
	case g.CameraFOV <= 0:
		return fmt.Errorf("game.camera_fov must be positive")
	case g.GraphWidth < 1 || g.GraphHeight < 1:
		return fmt.Errorf("game.graph_width/graph_height must fit a node")
	case g.DrillAcceleration < 0:
		return fmt.Errorf("game.drill_acceleration must not be negative")
	}
	return nil
}

// Defaults returns the built-in configuration. Tests start from it.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			MapWidth:      10,
			GroundLevel:   0,
			CameraFOV:     15,
			StripHeight:   0.5,
			MineralRadius: 0.15,
			MineralAmount: 1,

			GraphWidth:  8,
			GraphHeight: 6,

			DrillSize:          0.3,
			DrillSpeed:         1.5,
			DrillSpeedTiers:    [3]float64{2, 2.5, 3},
			DrillAcceleration:  1,
			DrillRotationSpeed: 1.5,
			BounceSpeed:        0.5,

			Vision:      2,
			VisionTiers: [3]float64{3, 4, 5},

			SprintBoost:    2,
			SprintDuration: 1,
			SprintCooldown: 5,

			FuelSmallAmount:  5,
			FuelNormalAmount: 10,
			CoalFuelValue:    1,

			StartingMoney:        10,
			FloatingTextLifetime: 1,
			UnpoweredDim:         0.5,
		},
		Data: DataConfig{
			MineralList: "data/yaml/mineral_list.yaml",
			ShopList:    "data/yaml/shop_list.yaml",
			ScriptsDir:  "scripts",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Loop: LoopConfig{
			TickRate:  20 * time.Millisecond,
			Autopilot: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
