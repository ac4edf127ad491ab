package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Administración de empleados",
	}
	cmd.AddCommand(newStaffCreateCmd(), newStaffPasswordCmd())
	return cmd
}

func newStaffCreateCmd() *cobra.Command {
	var in dto.CreateStaffRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un empleado (útil para el primer Manager)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			out, err := e.staff.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Empleado creado: %s (%s) id=%s\n", out.Username, out.Role, out.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "usuario de acceso")
	f.StringVar(&in.Password, "password", "", "contraseña (8 a 72 caracteres)")
	f.StringVar(&in.Role, "role", entity.RoleStaff, "Staff o Manager")
	f.StringVar(&in.FirstName, "first-name", "", "nombre")
	f.StringVar(&in.LastName, "last-name", "", "apellido")
	f.StringVar(&in.Email, "email", "", "correo")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newStaffPasswordCmd() *cobra.Command {
	var username string
	var in dto.UpdatePasswordRequest
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reemplaza la contraseña de un empleado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.staff.SetPasswordByUsername(cmd.Context(), username, in); err != nil {
				return fmt.Errorf("empleado %q: %w", username, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contraseña actualizada para %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "usuario")
	cmd.Flags().StringVar(&in.Password, "password", "", "nueva contraseña")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
