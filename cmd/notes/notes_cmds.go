package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gonotepad/internal/notes"
)

const (
	flagTitle       = "title"
	flagDescription = "description"
	flagYes         = "yes"
)

func (r *runner) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.session(cmd.Context(), true, nil)
		},
	}
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.session(cmd.Context(), true, func(ctx context.Context, svc *notes.Service) error {
				_, err := svc.Controller.Show(ctx, id)
				return err
			})
		},
	}
}

func (r *runner) addCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.session(cmd.Context(), true, func(ctx context.Context, svc *notes.Service) error {
				_, err := svc.Controller.Create(ctx, title, description)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&title, flagTitle, "t", "", "note title (single line)")
	cmd.Flags().StringVarP(&description, flagDescription, "d", "", "note description")
	_ = cmd.MarkFlagRequired(flagTitle)
	_ = cmd.MarkFlagRequired(flagDescription)

	return cmd
}

func (r *runner) editCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the title and description of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.session(cmd.Context(), true, func(ctx context.Context, svc *notes.Service) error {
				_, err := svc.Controller.Update(ctx, id, title, description)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&title, flagTitle, "t", "", "new title (single line)")
	cmd.Flags().StringVarP(&description, flagDescription, "d", "", "new description")
	_ = cmd.MarkFlagRequired(flagTitle)
	_ = cmd.MarkFlagRequired(flagDescription)

	return cmd
}

func (r *runner) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.session(cmd.Context(), true, func(ctx context.Context, svc *notes.Service) error {
				if !yes {
					if note, err := svc.Store.Get(id); err == nil && !r.confirm(fmt.Sprintf("Delete note %d %q?", note.ID, note.Title)) {
						fmt.Fprintln(r.errOut, "Aborted.")
						return nil
					}
				}
				return svc.Controller.Delete(ctx, id)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, flagYes, "y", false, "delete without asking for confirmation")

	return cmd
}

// confirm задает вопрос в stderr и читает ответ из stdin; согласием считаются только y и yes.
func (r *runner) confirm(question string) bool {
	fmt.Fprintf(r.errOut, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(r.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
