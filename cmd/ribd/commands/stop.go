package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var stopPidFile string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	Long: `Stop a ribd daemon started in background (daemon) mode.

Sends SIGTERM to the process recorded in the PID file and waits briefly
for it to exit.

Examples:
  # Stop the daemon using the default PID file
  ribd stop

  # Stop using a custom PID file
  ribd stop --pid-file /var/run/ribd.pid`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/ribd/ribd.pid)")
}

func runStop(cmd *cobra.Command, args []string) error {
	pidPath := stopPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	pidData, err := os.ReadFile(pidPath)
	if err != nil {
		return fmt.Errorf("PID file not found: %s\nIs ribd running in daemon mode?", pidPath)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(pidData)))
	if err != nil {
		return fmt.Errorf("invalid PID file contents: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}

	fmt.Printf("Sent SIGTERM to ribd (PID %d)\n", pid)

	for i := 0; i < 20; i++ {
		if process.Signal(syscall.Signal(0)) != nil {
			fmt.Println("Daemon stopped")
			_ = os.Remove(pidPath)
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}

	fmt.Println("Daemon did not exit within the timeout; it may still be shutting down")
	return nil
}
