package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snowswarm/snowswarm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("User config:    %s\n", config.GetUserConfigPath())
		if project := config.FindProjectConfig(); project != "" {
			fmt.Printf("Project config: %s\n", project)
		}
		fmt.Println()
		fmt.Printf("instance.url:               %s\n", valueOr(cfg.Instance.URL, "(unset)"))
		fmt.Printf("defaults.max_agents:        %d\n", cfg.Defaults.MaxAgents)
		fmt.Printf("defaults.mode:              %s\n", cfg.Defaults.Mode)
		fmt.Printf("defaults.heartbeat_interval: %s\n", cfg.Defaults.HeartbeatInterval)
		fmt.Printf("defaults.launch_timeout:    %s\n", cfg.Defaults.LaunchTimeout)
		fmt.Printf("anthropic.api_key:          %s\n", maskKey(cfg.Anthropic.APIKey))
		fmt.Printf("anthropic.use_bedrock:      %v\n", cfg.Anthropic.UseBedrock)
		fmt.Printf("debug.log_path:             %s\n", valueOr(cfg.Debug.LogPath, "(disabled)"))
		return nil
	},
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
