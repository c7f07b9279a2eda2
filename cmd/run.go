package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mbarrington/chip8vm/internal/chip8"
	"github.com/mbarrington/chip8vm/internal/config"
	"github.com/mbarrington/chip8vm/internal/hostui"
	"github.com/mbarrington/chip8vm/internal/logging"
	"github.com/spf13/cobra"
)

// oneSixtiethSecond matches the Scheduler's own frame pacing; duplicated
// here because Closed() has to be polled from this same main-thread loop,
// outside what chip8.Scheduler.Run can drive on its own.
const oneSixtiethSecond = time.Second / 60

// runCmd runs the chip8vm virtual machine against a ROM file until the
// window is closed.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run the chip8vm emulator against a ROM file",
	Args:  cobra.ExactArgs(1),
	RunE:  runChip8vm,
}

func runChip8vm(cmd *cobra.Command, args []string) error {
	romPath := args[0]

	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return err
	}
	env := config.EnvironmentFromEnv()

	cfg, err := config.Load(env, configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no config found at %s for environment %s, using defaults: %v\n", configDir, env, err)
		cfg = config.Default()
	}

	if override, _ := cmd.Flags().GetInt("cycles-per-frame"); override > 0 {
		cfg.Chip8.CyclesPerFrame = uint32(override)
	}

	log, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	quirks := chip8.Quirks{
		ShiftUsesVY:        cfg.Chip8.ShiftUsesVY,
		LoadStoreAdvancesI: cfg.Chip8.LoadStoreAdvancesI,
	}

	assetPath := filepath.Join("assets", "beep.mp3")
	host, err := hostui.NewWindow(cfg.Chip8, assetPath, log)
	if err != nil {
		return err
	}

	vm := chip8.NewVM(quirks, host.Seed())
	if err := vm.LoadROM(rom); err != nil {
		return err
	}

	sched := chip8.NewScheduler(vm, host, int(cfg.Chip8.CyclesPerFrame), log)

	// Window polling has to happen on this goroutine (pixelgl.Run put us on
	// the main thread), so the frame loop lives here rather than going
	// through Scheduler.Run's stop-channel shutdown, which is for hosts
	// that don't have a "closed" concept of their own.
	frameDuration := oneSixtiethSecond
	next := host.Now().Add(frameDuration)
	for !host.Closed() {
		if !sched.RunFrame() {
			log.Errorw("session ended on fault", "error", vm.LastFault())
			return vm.LastFault()
		}
		host.SleepUntil(next)
		next = next.Add(frameDuration)
	}
	return nil
}
