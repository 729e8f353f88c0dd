package config

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	FPS    int
	Title  string
}

// PhysicsConfig contains all player movement constants
type PhysicsConfig struct {
	Gravity float64

	// Horizontal movement
	MoveSpeed float64 // |vx| while a direction is held

	// Jumping
	JumpSpeed    float64 // initial upward impulse (applied as -JumpSpeed)
	JumpBoost    float64 // extra impulse per held tick
	MaxJumpSpeed float64 // boosting stops once vy reaches -MaxJumpSpeed

	// Collision response
	CeilingNudge float64 // vy after bumping a ceiling

	// Floating (Jet power-up)
	FloatPull     float64 // per-tick pull while floating
	FloatMaxRise  float64 // pull stops once vy reaches -FloatMaxRise
	FloatDamping  float64 // factor applied to upward vy on activation
	FloatDuration int     // ticks, measured on the world clock

	// SpringBoard
	SpringGain float64 // bounce factor below SpringCap
	SpringCap  float64 // landing speed at which the bounce stops gaining
}

// RotationConfig contains world rotation constants
type RotationConfig struct {
	Step        float64 // degrees per tick
	QuarterTurn float64 // degrees at which a turn completes
}

// CrossbowConfig contains projectile timing and geometry
type CrossbowConfig struct {
	BaseTiming   int     // ticks before the first crossbow in a level fires
	TimingStep   int     // per-index timing offset
	StaggerEvery int     // every n-th crossbow gets a positive offset
	ArrowSpeed   float64 // units per tick along the facing
	ArrowInset   float64 // hit rectangle inset at each end of the long axis
}

// BodiesConfig contains default body extents
type BodiesConfig struct {
	PlayerSize        float64
	DoorWidth         float64
	DoorHeight        float64
	SpringBoardWidth  float64
	SpringBoardHeight float64
	PowerUpSize       float64
	CrossbowLength    float64
	CrossbowDepth     float64
	ArrowLength       float64
	ArrowThickness    float64

	// Broad phase grid cell size
	SpaceCellSize int
}

// ServerConfig contains relay server options
type ServerConfig struct {
	Address           string
	Name              string
	Version           string
	Region            string
	RelayRate         int // relay cycles per second per seat
	MaxRelayErrors    int // consecutive read failures before a seat is dropped
	DefaultDifficulty string
	ResultsPath       string
	MasterURL         string
	HeartbeatSeconds  int
	GreetSeconds      int // time a new connection has to acknowledge its color
	LogFile           string
}

// ClientConfig contains client runtime options
type ClientConfig struct {
	Address    string
	Difficulty string // answer to DIFF when nothing is persisted
	AppName    string // gdata application name
	LogFile    string
}

// MonitorConfig contains the spectator HTTP surface options
type MonitorConfig struct {
	Addr          string
	BroadcastRate int // frames per second pushed to websocket spectators
}

// MasterConfig contains directory service options
type MasterConfig struct {
	Port           int
	TTLSeconds     int
	CleanupSeconds int
	LogFile        string
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	GodMode  bool // player cannot die
	LogLevel string
}

// Global configuration instances
var C *Config
var Physics PhysicsConfig
var Rotation RotationConfig
var Crossbow CrossbowConfig
var Bodies BodiesConfig
var Server ServerConfig
var Client ClientConfig
var Monitor MonitorConfig
var Master MasterConfig
var Debug DebugConfig

// Direction constants shared by movement, rotation and spikes
const (
	Left  = -1
	Right = 1
	Up    = -1
	Down  = 1
)

func init() {
	C = &Config{
		Width:  600,
		Height: 600,
		FPS:    60,
		Title:  "Box Ninja",
	}

	Physics = PhysicsConfig{
		Gravity: 0.3,

		MoveSpeed: 3,

		JumpSpeed:    5,
		JumpBoost:    1,
		MaxJumpSpeed: 8.5,

		CeilingNudge: 0.5,

		FloatPull:     0.02,
		FloatMaxRise:  1,
		FloatDamping:  0.2,
		FloatDuration: 240,

		SpringGain: 1.1,
		SpringCap:  15,
	}

	Rotation = RotationConfig{
		Step:        1.5,
		QuarterTurn: 90,
	}

	Crossbow = CrossbowConfig{
		BaseTiming:   40,
		TimingStep:   5,
		StaggerEvery: 3,
		ArrowSpeed:   10,
		ArrowInset:   3,
	}

	Bodies = BodiesConfig{
		PlayerSize:        40,
		DoorWidth:         10,
		DoorHeight:        100,
		SpringBoardWidth:  80,
		SpringBoardHeight: 10,
		PowerUpSize:       20,
		CrossbowLength:    40,
		CrossbowDepth:     30,
		ArrowLength:       30,
		ArrowThickness:    9,
		SpaceCellSize:     20,
	}

	Server = ServerConfig{
		Address:           "0.0.0.0:1234",
		Name:              "Box Ninja Relay",
		RelayRate:         60,
		MaxRelayErrors:    5,
		DefaultDifficulty: "3",
		ResultsPath:       "boxninja.db",
		HeartbeatSeconds:  30,
		GreetSeconds:      10,
	}

	Client = ClientConfig{
		Address:    "127.0.0.1:1234",
		Difficulty: "3",
		AppName:    "boxninja",
	}

	Monitor = MonitorConfig{
		Addr:          ":8081",
		BroadcastRate: 10,
	}

	Master = MasterConfig{
		Port:           8080,
		TTLSeconds:     90,
		CleanupSeconds: 30,
	}

	Debug = DebugConfig{
		LogLevel: "info",
	}
}
