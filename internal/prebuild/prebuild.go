// Package prebuild runs the configured shell commands before analysis, for
// projects that generate headers as part of their build.
package prebuild

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// Run executes the commands sequentially in inputDir, stopping at the first
// failure. Output is passed through so build tools keep their formatting.
func Run(ctx context.Context, inputDir string, commands []string) error {
	for _, command := range commands {
		slog.Info("Running prebuild command", "command", command)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Dir = inputDir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("prebuild command %q: %w", command, err)
		}
		slog.Debug("Prebuild command finished",
			"command", command, "duration", time.Since(start))
	}
	return nil
}
