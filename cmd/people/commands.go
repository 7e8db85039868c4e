package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vortex-fintech/people/cpf"
	"github.com/vortex-fintech/people/form"
	"github.com/vortex-fintech/people/person"
	"github.com/vortex-fintech/people/validator"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, list)
		},
	}
}

func newLatestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the most recently created record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.Latest(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, list)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>...",
		Short: "Show records by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			list, err := c.GetMany(cmd.Context(), args)
			if err != nil {
				return err
			}
			return a.print(cmd, list)
		},
	}
}

type personFlags struct {
	name      string
	birthDate string
	cpf       string
}

func (f *personFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.cpf, "cpf", "", "CPF, with or without punctuation")
}

func newCreateCmd(a *app) *cobra.Command {
	var f personFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.save(cmd, person.Person{Name: f.name, BirthDate: f.birthDate, CPF: f.cpf})
		},
	}
	f.bind(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f personFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a person's data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.save(cmd, person.Person{ID: args[0], Name: f.name, BirthDate: f.birthDate, CPF: f.cpf})
		},
	}
	f.bind(cmd)
	return cmd
}

// save fills the form with p and submits it, so the CLI reports the same
// messages as the form.
func (a *app) save(cmd *cobra.Command, p person.Person) error {
	c, err := a.client(cmd.Context())
	if err != nil {
		return err
	}
	ctrl := form.NewController(c, a.log)
	if p.ID != "" {
		ctrl.Dispatch(cmd.Context(), form.EditRequested{Person: p})
	} else {
		ctrl.Dispatch(cmd.Context(), form.NameChanged{Value: p.Name})
		ctrl.Dispatch(cmd.Context(), form.BirthDateChanged{Value: p.BirthDate})
		ctrl.Dispatch(cmd.Context(), form.CPFChanged{Value: p.CPF})
	}

	msg := "Registro salvo."
	if ctrl.State().Editing() {
		msg = "Registro atualizado."
	}
	s := ctrl.Dispatch(cmd.Context(), form.SubmitRequested{})
	if s.Error != "" {
		return errors.New(s.Error)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return a.print(cmd, []person.Person{s.Saved})
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client(cmd.Context())
			if err != nil {
				return err
			}
			s := form.NewController(c, a.log).Dispatch(cmd.Context(), form.DeleteRequested{ID: args[0]})
			if s.Error != "" {
				return errors.New(s.Error)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registro excluído.")
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <input>",
		Short: "Print the input with the CPF mask applied",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), cpf.Format(args[0]))
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Check a CPF; exits with status 1 when it is invalid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validator.Var(args[0], "cpf") {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errReported
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
