package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"bprime/model"

	"gopkg.in/ini.v1"
)

// 默认配置文件路径
const DefaultPath = "conf/config.ini"

type Config struct {
	Grid       GridConfig
	Solver     SolverConfig
	Calculator CalculatorConfig
	Output     OutputConfig
	Server     ServerConfig
	Log        LogConfig
}

// 网格范围，温度 K，压力 Pa（step 为比值）
type GridConfig struct {
	Temperature model.Range `json:"temperature"`
	Pressure    model.Range `json:"pressure"`
	BlowingRate model.Range `json:"blowing_rate"`
}

type SolverConfig struct {
	Binary        string
	Mixture       string
	BoundaryLayer string
	Pyrolysis     string
	WorkDir       string
	KeepLogs      bool
}

type CalculatorConfig struct {
	Workers              int
	TemperatureTolerance float64 // 绝对容差，K
	PressureTolerance    float64 // 相对容差
}

type OutputConfig struct {
	TableFile string
	Manifest  bool
}

type ServerConfig struct {
	Addr string
}

type LogConfig struct {
	Level  string
	Format string
}

// 读取配置文件；path 为空时使用默认值
func Load(path string) (*Config, error) {
	if path == "" {
		return loadCfg(ini.Empty()), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadCfg(file), nil
}

// 读取默认路径的配置文件，文件不存在时使用默认值
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return loadCfg(ini.Empty()), nil
	}
	return Load(path)
}

// 未配置的键使用默认值
func loadCfg(file *ini.File) *Config {
	grid := file.Section("grid")
	solver := file.Section("solver")
	calc := file.Section("calculator")
	output := file.Section("output")
	return &Config{
		Grid: GridConfig{
			Temperature: model.Range{
				Start: grid.Key("TStart").MustFloat64(250),
				Step:  grid.Key("TStep").MustFloat64(25),
				End:   grid.Key("TEnd").MustFloat64(4000),
			},
			Pressure: model.Range{
				Start: grid.Key("PStart").MustFloat64(101.325),
				Step:  grid.Key("PRatio").MustFloat64(10),
				End:   grid.Key("PEnd").MustFloat64(101325),
			},
			BlowingRate: model.Range{
				Start: grid.Key("BStart").MustFloat64(-10),
				Step:  grid.Key("BStep").MustFloat64(0.1),
				End:   grid.Key("BEnd").MustFloat64(10),
			},
		},
		Solver: SolverConfig{
			Binary:        solver.Key("Binary").MustString("./generate_bprime_table"),
			Mixture:       solver.Key("Mixture").MustString("tacot26.xml"),
			BoundaryLayer: solver.Key("BoundaryLayer").MustString("edge"),
			Pyrolysis:     solver.Key("Pyrolysis").MustString("pyro"),
			WorkDir:       solver.Key("WorkDir").MustString("."),
			KeepLogs:      solver.Key("KeepLogs").MustBool(false),
		},
		Calculator: CalculatorConfig{
			Workers:              calc.Key("Workers").MustInt(4),
			TemperatureTolerance: calc.Key("TemperatureTolerance").MustFloat64(1e-10),
			PressureTolerance:    calc.Key("PressureTolerance").MustFloat64(1e-4),
		},
		Output: OutputConfig{
			TableFile: output.Key("TableFile").MustString("Bprime_table.bpt"),
			Manifest:  output.Key("Manifest").MustBool(true),
		},
		Server: ServerConfig{
			Addr: file.Section("server").Key("Addr").MustString(":9000"),
		},
		Log: LogConfig{
			Level:  file.Section("log").Key("Level").MustString("info"),
			Format: file.Section("log").Key("Format").MustString("text"),
		},
	}
}
