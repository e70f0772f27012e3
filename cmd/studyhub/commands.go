package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpn/studyhub/internal/dispatch"
	"github.com/hpn/studyhub/internal/study"
	"github.com/hpn/studyhub/internal/ui"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configured credentials, models and retry policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				pool := a.cfg.CredentialPool()
				labels := make([]string, 0, pool.Len())
				for _, cred := range pool.Available() {
					labels = append(labels, cred.String())
				}
				info := ui.StartupInfo{
					Backend:     string(a.cfg.Generator.Backend),
					Credentials: labels,
					Models:      a.cfg.ModelRoster().Models(),
					MaxAttempts: a.dispatcher.Settings().MaxAttempts,
				}

				if ctx.flags.jsonOutput {
					return writeJSON(cmd, info)
				}
				if !ctx.flags.quiet {
					ui.PrintBanner(cmd.OutOrStdout())
				}
				ui.PrintStartupInfo(cmd.OutOrStdout(), info)
				return nil
			})
		},
	}
}

func newAskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <prompt...>",
		Short: "Send a raw prompt through the dispatcher",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				text := a.dispatcher.Text(commandCtx(cmd), strings.Join(args, " "))

				if dispatch.IsFailureText(text) {
					ui.PrintFailure(cmd.ErrOrStderr(), text)
					return errReported
				}
				if ctx.flags.jsonOutput {
					return writeJSON(cmd, map[string]string{"text": text})
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize the document with glossary, formulas and citations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ctx.requireDocument(cmd)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				ov, err := a.service.Overview(commandCtx(cmd), doc)
				if err != nil {
					return err
				}

				if ctx.flags.jsonOutput {
					return writeJSON(cmd, ov)
				}
				out := cmd.OutOrStdout()
				if ov.SummaryFallback {
					ctx.notice(cmd, "summary")
				}
				ui.PrintSection(out, "Summary", ov.Summary)
				if len(ov.Glossary) > 0 {
					fmt.Fprintln(out, ui.RenderGlossary(ov.Glossary))
				}
				fmt.Fprintln(out, ui.RenderAnalysis(ov.Analysis))
				return nil
			})
		},
	}
}

func newChatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <question...>",
		Short: "Ask the tutor a question about the document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ctx.loadDocument(cmd)
			if err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				reply, err := a.service.Chat(commandCtx(cmd), doc, strings.Join(args, " "))
				if err != nil {
					ui.PrintFailure(cmd.ErrOrStderr(), dispatch.FailureText(err))
					return errReported
				}

				if ctx.flags.jsonOutput {
					return writeJSON(cmd, reply)
				}
				fmt.Fprintln(cmd.OutOrStdout(), reply.Answer)
				return nil
			})
		},
	}
}

func newQuizCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Generate a multiple-choice quiz from the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTool(cmd, "quiz", func(a *app, doc study.Document) (any, bool, string, error) {
				q, err := a.service.Quiz(commandCtx(cmd), doc)
				return q, q.Fallback, ui.RenderQuiz(q), err
			})
		},
	}
}

func newFlashcardsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "flashcards",
		Short: "Generate flashcards from the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTool(cmd, "flashcards", func(a *app, doc study.Document) (any, bool, string, error) {
				f, err := a.service.Flashcards(commandCtx(cmd), doc)
				return f, f.Fallback, ui.RenderFlashcards(f), err
			})
		},
	}
}

func newGlossaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "glossary",
		Short: "Extract key terms with definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTool(cmd, "glossary", func(a *app, doc study.Document) (any, bool, string, error) {
				g, err := a.service.Glossary(commandCtx(cmd), doc)
				return g, g.Fallback, ui.RenderGlossary(g.Entries), err
			})
		},
	}
}

func newScriptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "script",
		Short: "Write a narrated teaching script for the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTool(cmd, "script", func(a *app, doc study.Document) (any, bool, string, error) {
				s, err := a.service.VideoScript(commandCtx(cmd), doc)
				rendered := fmt.Sprintf("%s\n\nRecommended duration: %ds | Narration: %.0fs",
					s.Script, s.Duration, s.NarrationSeconds)
				return s, s.Fallback, rendered, err
			})
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Readability, pacing, formulas and citations (no generation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := ctx.requireDocument(cmd)
			if err != nil {
				return err
			}

			analysis := study.Analyze(doc.Text)
			if ctx.flags.jsonOutput {
				return writeJSON(cmd, analysis)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderAnalysis(analysis))
			return nil
		},
	}
}

// toolFunc runs one study tool and returns its result, fallback flag and
// terminal rendering.
type toolFunc func(a *app, doc study.Document) (result any, fallback bool, rendered string, err error)

func (c *commandContext) runTool(cmd *cobra.Command, name string, fn toolFunc) error {
	doc, err := c.requireDocument(cmd)
	if err != nil {
		return err
	}

	return c.withApp(cmd, func(a *app) error {
		result, fallback, rendered, err := fn(a, doc)
		if err != nil {
			return err
		}

		if fallback {
			c.notice(cmd, name)
		}
		if c.flags.jsonOutput {
			return writeJSON(cmd, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		if !c.flags.quiet && !fallback {
			ui.PrintSuccess(cmd.ErrOrStderr(), name+" ready")
		}
		return nil
	})
}

// notice reports a fallback result on stderr so stdout stays parseable.
func (c *commandContext) notice(cmd *cobra.Command, tool string) {
	if c.flags.quiet {
		return
	}
	ui.PrintFallback(cmd.ErrOrStderr(), tool)
}
