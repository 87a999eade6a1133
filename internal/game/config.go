package game

import (
	"fmt"

	"github.com/spf13/viper"
)

// BoardConfig holds the tile grid constants.
type BoardConfig struct {
	Width         int     `json:"width" mapstructure:"width"`
	Height        int     `json:"height" mapstructure:"height"`
	TileSize      float64 `json:"tileSize" mapstructure:"tileSize"`
	TileSpace     float64 `json:"tileSpace" mapstructure:"tileSpace"`
	FallMin       float64 `json:"fallMin" mapstructure:"fallMin"`
	FallMax       float64 `json:"fallMax" mapstructure:"fallMax"`
	FallRate      float64 `json:"fallRate" mapstructure:"fallRate"`
	PowerInterval int     `json:"powerInterval" mapstructure:"powerInterval"`
}

// ShipConfig holds the constants shared by every ship, plus the fleet
// composition.
type ShipConfig struct {
	Size           float64 `json:"size" mapstructure:"size"`
	MoveSpeed      float64 `json:"moveSpeed" mapstructure:"moveSpeed"`
	TurnSpeed      float64 `json:"turnSpeed" mapstructure:"turnSpeed"`
	Cooldown       int     `json:"cooldown" mapstructure:"cooldown"`
	FallRate       float64 `json:"fallRate" mapstructure:"fallRate"`
	FallMin        float64 `json:"fallMin" mapstructure:"fallMin"`
	FallMax        float64 `json:"fallMax" mapstructure:"fallMax"`
	RandFactor     float64 `json:"randFactor" mapstructure:"randFactor"`
	DriftTolerance float64 `json:"driftTolerance" mapstructure:"driftTolerance"`
	DriftSpeed     float64 `json:"driftSpeed" mapstructure:"driftSpeed"`
	SpeedDamping   float64 `json:"speedDamping" mapstructure:"speedDamping"`
	Epsilon        float64 `json:"epsilon" mapstructure:"epsilon"`
	NumCompanions  int     `json:"numCompanions" mapstructure:"numCompanions"`
	NumEnemies     int     `json:"numEnemies" mapstructure:"numEnemies"`
}

// PhotonConfig holds the projectile pool constants.
type PhotonConfig struct {
	Capacity  int     `json:"capacity" mapstructure:"capacity"`
	Speed     float64 `json:"speed" mapstructure:"speed"`
	Lifespan  int     `json:"lifespan" mapstructure:"lifespan"`
	Knockback float64 `json:"knockback" mapstructure:"knockback"`
}

// PlayerConfig holds the companion chain constants.
type PlayerConfig struct {
	FollowDelay   int `json:"followDelay" mapstructure:"followDelay"`
	MaxCompanions int `json:"maxCompanions" mapstructure:"maxCompanions"`
	DesyncTiles   int `json:"desyncTiles" mapstructure:"desyncTiles"`
	CompanionCost int `json:"companionCost" mapstructure:"companionCost"`
}

// GameConfig holds the rules that belong to no single model: collision
// nudging and AI replan decimation.
type GameConfig struct {
	NudgeAmount  float64 `json:"nudgeAmount" mapstructure:"nudgeAmount"`
	NudgeLimit   int     `json:"nudgeLimit" mapstructure:"nudgeLimit"`
	PlanInterval int     `json:"planInterval" mapstructure:"planInterval"`
}

// Config is the full constant set for one session. It is immutable after
// Load: components copy the sections they need at construction.
type Config struct {
	Board  BoardConfig  `json:"board" mapstructure:"board"`
	Ship   ShipConfig   `json:"ship" mapstructure:"ship"`
	Photon PhotonConfig `json:"photon" mapstructure:"photon"`
	Player PlayerConfig `json:"player" mapstructure:"player"`
	Game   GameConfig   `json:"game" mapstructure:"game"`
}

// requiredKeys lists every key the JSON file must define. There is no
// defaulting: a missing key fails Load.
var requiredKeys = []string{
	"board.width", "board.height",
	"board.tileSize", "board.tileSpace",
	"board.fallMin", "board.fallMax", "board.fallRate",
	"board.powerInterval",
	"ship.size", "ship.moveSpeed", "ship.turnSpeed", "ship.cooldown",
	"ship.fallRate", "ship.fallMin", "ship.fallMax",
	"ship.randFactor", "ship.driftTolerance", "ship.driftSpeed",
	"ship.speedDamping", "ship.epsilon",
	"ship.numCompanions", "ship.numEnemies",
	"photon.capacity", "photon.speed", "photon.lifespan", "photon.knockback",
	"player.followDelay", "player.maxCompanions",
	"player.desyncTiles", "player.companionCost",
	"game.nudgeAmount", "game.nudgeLimit", "game.planInterval",
}

// Load reads the constants from a JSON file. Every required key must be
// present; construction is the only place a configuration problem can
// surface, so it fails hard here.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return Config{}, fmt.Errorf("config %s: missing required key %q", path, key)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Board.Width <= 0 || c.Board.Height <= 0:
		return fmt.Errorf("board size %dx%d: dimensions must be positive", c.Board.Width, c.Board.Height)
	case c.Board.TileSize <= 0:
		return fmt.Errorf("tile size %v: must be positive", c.Board.TileSize)
	case c.Board.PowerInterval <= 0:
		return fmt.Errorf("power interval %d: must be positive", c.Board.PowerInterval)
	case c.Photon.Capacity <= 0:
		return fmt.Errorf("photon capacity %d: must be positive", c.Photon.Capacity)
	case c.Player.FollowDelay <= 0:
		return fmt.Errorf("follow delay %d: must be positive", c.Player.FollowDelay)
	case c.Player.MaxCompanions < c.Ship.NumCompanions+1:
		return fmt.Errorf("maxCompanions %d cannot hold the lead plus %d waiting companions", c.Player.MaxCompanions, c.Ship.NumCompanions)
	case c.Ship.NumCompanions < 0 || c.Ship.NumEnemies < 0:
		return fmt.Errorf("fleet counts %d companions / %d enemies: must not be negative", c.Ship.NumCompanions, c.Ship.NumEnemies)
	case 1+c.Ship.NumCompanions+c.Ship.NumEnemies > c.Board.Width*c.Board.Height:
		// Placement puts one ship per tile, so the fleet can never exceed
		// the cell count.
		return fmt.Errorf("fleet of %d ships does not fit a %dx%d board",
			1+c.Ship.NumCompanions+c.Ship.NumEnemies, c.Board.Width, c.Board.Height)
	case c.Game.PlanInterval <= 0:
		return fmt.Errorf("plan interval %d: must be positive", c.Game.PlanInterval)
	}
	return nil
}
