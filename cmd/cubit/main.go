// Command cubit probes and exercises the dense linear-algebra dispatch
// layer: it reports which device runtimes are usable on this machine and
// runs a small end-to-end check through the engine.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/cubit-ml/cubit/config"
	"github.com/cubit-ml/cubit/device"
	"github.com/cubit-ml/cubit/device/hostdev"
	"github.com/cubit-ml/cubit/device/webgpudev"
	"github.com/cubit-ml/cubit/engine"
)

const version = "v0.1.0-dev"

var (
	cfgPath     string
	runtimeName string
	precision   string
)

func main() {
	root := &cobra.Command{
		Use:           "cubit",
		Short:         "Dense linear algebra dispatch over vendor BLAS and custom kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&runtimeName, "runtime", "", "device runtime: host or webgpu")
	root.PersistentFlags().StringVar(&precision, "precision", "", "element width: float32 or float64")

	root.AddCommand(versionCmd(), infoCmd(), selftestCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cubit:", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return cfg, err
		}
	}
	if runtimeName != "" {
		cfg.Runtime = runtimeName
	}
	if precision != "" {
		cfg.Precision = precision
	}
	return cfg, cfg.Validate()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cubit %s\n", version)
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report available device runtimes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("host: available (float32, float64)")
			if !webgpudev.IsAvailable() {
				fmt.Println("webgpu: unavailable (no adapter)")
				return
			}
			rt, err := webgpudev.New()
			if err != nil {
				fmt.Printf("webgpu: unavailable (%v)\n", err)
				return
			}
			defer rt.Close()
			fmt.Printf("webgpu: available (float32) on %s\n", rt.AdapterName())
		},
	}
}

func selftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run a scal-then-asum round trip through the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			switch cfg.Runtime {
			case config.RuntimeWebGPU:
				rt, err := webgpudev.New()
				if err != nil {
					return err
				}
				defer rt.Close()
				return selftest[float32](cfg, rt, rt.Blas32())
			default:
				rt := hostdev.New()
				defer rt.Close()
				if cfg.Precision == config.PrecisionFloat64 {
					return selftest[float64](cfg, rt, rt.Blas64())
				}
				return selftest[float32](cfg, rt, rt.Blas32())
			}
		},
	}
}

// selftest scales [1 2 3 4] by 2 and checks that the absolute sum comes
// back as 20 through the blocking read-back path.
func selftest[T device.Elem](cfg config.Config, rt device.Runtime, bl device.Blas[T]) error {
	eng, err := engine.New[T](rt, bl)
	if err != nil {
		return err
	}
	defer eng.Close()

	src := []T{1, 2, 3, 4}
	buf, err := rt.Alloc(uint64(len(src)) * uint64(engine.DTypeOf[T]().Size()))
	if err != nil {
		return err
	}
	defer buf.Release()
	if err := writeElems(rt.Queue(), buf, src); err != nil {
		return err
	}

	x := engine.NewVector[T](len(src), buf)
	if err := eng.Vector.Scal(2, x); err != nil {
		return err
	}
	sum, err := eng.Vector.Asum(x)
	if err != nil {
		return err
	}
	if sum != 20 {
		return fmt.Errorf("selftest: asum after scal returned %v, want 20", sum)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "runtime=%s precision=%s\n", cfg.Runtime, cfg.Precision)
	}
	fmt.Printf("selftest ok: asum = %v\n", sum)
	return nil
}

func writeElems[T device.Elem](q device.Queue, buf device.Buffer, src []T) error {
	size := engine.DTypeOf[T]().Size()
	raw := make([]byte, len(src)*size)
	for i, v := range src {
		switch size {
		case 8:
			binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(float64(v)))
		default:
			binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(float32(v)))
		}
	}
	return q.Write(buf, 0, raw)
}
