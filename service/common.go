package service

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"blog/app/config"

	"github.com/urfave/cli/v2"
)

// loadConfig reads the config file named by --config and applies the
// command-line overrides that are set.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("db-path") {
		cfg.DBPath = c.String("db-path")
		cfg.InMemory = false
	}
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	return cfg, cfg.Validate()
}

// diskPath returns the on-disk database path for lifecycle commands.
func diskPath(cfg config.Config) (string, error) {
	if cfg.InMemory {
		return "", errors.New("this command needs an on-disk database; unset inMemory")
	}
	return cfg.DBPath, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// confirm asks a yes/no question on the app's reader and writer.
func confirm(c *cli.Context, question string) bool {
	fmt.Fprintf(c.App.Writer, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
