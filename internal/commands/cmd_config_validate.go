package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/Yamikowu/studdy/internal/core/config"
	"github.com/Yamikowu/studdy/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "studdy config validate [options]",
				Description: "Validates the configuration file, checking the theme, focus durations, lunch settings and data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func validate(cfg *config.Config, configPath string) validationResult {
	result := validationResult{Valid: true, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		return result
	}

	result.Valid = false
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return result
	}

	result.Errors = append(result.Errors, validationError{Message: err.Error()})
	return result
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validate(cmd.flags.Config, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		if err := writeJSON(c.Root().Writer, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, result validationResult) {
	w := c.Root().Writer

	for _, e := range result.Errors {
		label := e.Message
		if e.Field != "" {
			label = fmt.Sprintf("%s: %s", e.Field, e.Message)
		}
		printStyled(w, styles.ErrorStyle.Render(styles.IconCross+" "+label))
	}

	for _, warn := range result.Warnings {
		label := warn.Category
		if warn.Item != "" {
			label = fmt.Sprintf("%s (%s)", warn.Category, warn.Item)
		}
		printStyled(w, fmt.Sprintf("%s %s: %s", styles.WarningStyle.Render("●"), label, warn.Message))
	}

	if result.Valid {
		printStyled(w, styles.SuccessStyle.Render(styles.IconCheck+" configuration is valid"))
	}
}
