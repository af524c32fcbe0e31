package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/michaelquigley/scarlettd"
	"github.com/spf13/cobra"
)

var (
	vendorFlag  string
	productFlag string
)

var rootCmd = &cobra.Command{
	Use:   "scarlettd",
	Short: "Control Focusrite Scarlett Gen 2/3 audio interfaces",
	Long: `scarlettd talks directly to the vendor-specific USB control interface
of Focusrite Scarlett 2nd/3rd Generation audio interfaces: mixer gain,
routing, preamp switches, and gain halo colors, without going through
ALSA's mixer abstraction.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vendorFlag, "vendor", "1235", "USB vendor ID, hex")
	rootCmd.PersistentFlags().StringVar(&productFlag, "product", "", "USB product ID, hex (required)")

	rootCmd.AddCommand(listCmd, controlsCmd, getCmd, setCmd, routeCmd, mixerCmd, metersCmd, watchCmd)
	controlsCmd.Flags().BoolP("verbose", "v", false, "show control values")
}

func parseHexID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 16, 16)
	return uint16(v), err
}

func attach() (*scarlettd.Card, error) {
	if productFlag == "" {
		return nil, fmt.Errorf("--product is required")
	}
	vendor, err := parseHexID(vendorFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --vendor: %w", err)
	}
	product, err := parseHexID(productFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --product: %w", err)
	}
	return scarlettd.Attach(vendor, product)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the USB product IDs this build recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for ids, d := range scarlettd.Devices {
			fmt.Printf("  %04x:%04x  %s\n", ids[0], ids[1], d.Name)
		}
		return nil
	},
}

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "List all controls on the attached card",
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		controls, err := card.GetControls()
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Printf("controls for %s (%s):\n\n", card.Device().Name, card.State())
		for _, ctl := range controls {
			if verbose {
				fmt.Println(ctl.DetailedString())
			} else {
				fmt.Println(ctl.String())
			}
		}
		fmt.Printf("\ntotal: %d controls\n", len(controls))
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <control-name>",
	Short: "Get the value of a control",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		ctl, err := card.FindControl(args[0])
		if err != nil {
			return err
		}
		value, err := ctl.GetValueString()
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", ctl.Name, value)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <control-name> <value>",
	Short: "Set the value of a control",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		ctl, err := card.FindControl(args[0])
		if err != nil {
			return err
		}
		if err := ctl.SetValueByString(args[1]); err != nil {
			return err
		}
		value, _ := ctl.GetValueString()
		fmt.Printf("%s = %s\n", ctl.Name, value)
		return nil
	},
}

var routeCmd = &cobra.Command{
	Use:   "route <band> <dst-index> <src-wire-hex>",
	Short: "Assign a source wire ID to one output port (written to all three sample-rate bands)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		band, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid band: %s", args[0])
		}
		dst, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid destination index: %s", args[1])
		}
		src, err := strconv.ParseUint(args[2], 16, 16)
		if err != nil {
			return fmt.Errorf("invalid source wire id: %s", args[2])
		}

		if err := card.SetRoute(scarlettd.PortDirection(band), dst, scarlettd.WireID(src)); err != nil {
			return err
		}
		fmt.Printf("routed band %d dst %d <- wire 0x%03x\n", band, dst, src)
		return nil
	},
}

var mixerCmd = &cobra.Command{
	Use:   "mixer <out> <in> <half-db-level>",
	Short: "Set one mixer matrix cell",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		out, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid output: %s", args[0])
		}
		in, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid input: %s", args[1])
		}
		level, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid level: %s", args[2])
		}

		if err := card.SetMixerLevel(out, in, level); err != nil {
			return err
		}
		fmt.Printf("mixer[%d][%d] = %d\n", out, in, level)
		return nil
	},
}

var metersCmd = &cobra.Command{
	Use:   "meters",
	Short: "Show a single level-meter snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		meters, err := card.RefreshMeters()
		if err != nil {
			return err
		}
		for i, v := range meters.Values {
			fmt.Printf("  %2d: %5d\n", i, v)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print unsolicited device notifications until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := attach()
		if err != nil {
			return err
		}
		defer card.Close()

		fmt.Printf("watching %s, ctrl-c to stop\n", card.Device().Name)

		card.SetNotify(func(kind scarlettd.EventKind) {
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), kind)
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		fmt.Println("\nstopping")
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
