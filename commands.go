package main

import (
	"net/http"

	"bprime/calculator"
	"bprime/config"
	"bprime/grid"
	"bprime/pipeline"
	"bprime/server"
	"bprime/solver"
	"bprime/writer"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	output       string
	positiveLog  string
	negativeLog  string
	keepLogs     bool
	solverBinary string
	listenAddr   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the solver for both branches and write the B' table",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlags(cmd)
		runner := solver.NewRunner(cfg.Solver.Binary, cfg.Solver.WorkDir, cfg.Solver.KeepLogs)
		return build(cmd, runner)
	},
}

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the B' table from two saved solver logs",
	Example: `  bprime assemble --positive bprime_positive.log --negative bprime_negative.log`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlags(cmd)
		return build(cmd, pipeline.LogReader{Positive: positiveLog, Negative: negativeLog})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve table builds over a websocket at /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlags(cmd)
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		runner := solver.NewRunner(cfg.Solver.Binary, cfg.Solver.WorkDir, cfg.Solver.KeepLogs)
		p := pipeline.New(runner, calculator.NewAssembler(calculatorOptions(cfg.Calculator)))
		s := server.NewServer(cfg.Server.Addr, upgrader, p, mixture(cfg.Solver), cfg.Grid)
		return s.Serve(cmd.Context())
	},
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, assembleCmd} {
		c.Flags().StringVarP(&output, "output", "o", "", "table file (default from config)")
	}
	generateCmd.Flags().StringVar(&solverBinary, "solver", "", "solver binary (default from config)")
	generateCmd.Flags().BoolVar(&keepLogs, "keep-logs", false, "keep raw solver output in the work dir")

	assembleCmd.Flags().StringVar(&positiveLog, "positive", "", "solver output of the Bg >= 0 branch")
	assembleCmd.Flags().StringVar(&negativeLog, "negative", "", "solver output of the Bg <= 0 branch")
	_ = assembleCmd.MarkFlagRequired("positive")
	_ = assembleCmd.MarkFlagRequired("negative")

	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from config)")
}

// 命令行参数覆盖配置
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.TableFile = output
	}
	if flags.Changed("solver") {
		cfg.Solver.Binary = solverBinary
	}
	if flags.Changed("keep-logs") {
		cfg.Solver.KeepLogs = keepLogs
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = listenAddr
	}
}

func mixture(c config.SolverConfig) solver.Mixture {
	return *solver.NewMixture(c.Mixture, c.BoundaryLayer, c.Pyrolysis)
}

func calculatorOptions(c config.CalculatorConfig) calculator.Options {
	return calculator.Options{
		Workers:              c.Workers,
		TemperatureTolerance: c.TemperatureTolerance,
		PressureTolerance:    c.PressureTolerance,
	}
}

// 两阶段建表，成功后写出表格与清单
func build(cmd *cobra.Command, invoker pipeline.Invoker) error {
	g, err := grid.FromRanges(cfg.Grid.Temperature, cfg.Grid.Pressure, cfg.Grid.BlowingRate)
	if err != nil {
		return err
	}
	p := pipeline.New(invoker, calculator.NewAssembler(calculatorOptions(cfg.Calculator)))
	job := pipeline.NewJob(g, mixture(cfg.Solver))
	res, err := p.Run(cmd.Context(), job)
	if err != nil {
		return err
	}
	res.Diagnostics.Log()

	if err := writer.WriteFile(cfg.Output.TableFile, res.Table); err != nil {
		return err
	}
	if !cfg.Output.Manifest {
		return nil
	}
	path := writer.ManifestPath(cfg.Output.TableFile)
	m := writer.NewManifest(job.ID, cfg.Output.TableFile, job.Mixture, job.Grid, res.Diagnostics)
	if err := writer.WriteManifest(path, m); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"run":      job.ID,
		"manifest": path,
		"warnings": len(m.Warnings),
	}).Info("运行记录已保存")
	return nil
}
