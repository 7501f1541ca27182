package commands

import (
	"fmt"

	"codama/internal/models"
	"codama/internal/repositories"
	"codama/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

// CreateAdminCmd creates an admin account.
func (h *CommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	req, err := adminRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	stores, err := h.open(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer h.close()

	users := services.NewUserService(
		repositories.NewUserRepository(stores.Pool),
		repositories.NewSessionRepository(stores.Gorm),
	)
	user, err := users.Create(cmd.Context(), services.SystemActor, req)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}

// adminRequestFromFlags reads and validates the account flags with the same
// rules the HTTP API applies.
func adminRequestFromFlags(cmd *cobra.Command) (services.CreateUserRequest, error) {
	var req services.CreateUserRequest
	var err error
	if req.Name, err = cmd.Flags().GetString("name"); err != nil {
		return req, fmt.Errorf("invalid name flag: %w", err)
	}
	if req.Email, err = cmd.Flags().GetString("email"); err != nil {
		return req, fmt.Errorf("invalid email flag: %w", err)
	}
	if req.Password, err = cmd.Flags().GetString("password"); err != nil {
		return req, fmt.Errorf("invalid password flag: %w", err)
	}
	req.Role = models.RoleAdmin

	validate := validator.New()
	validate.SetTagName("binding")
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("invalid admin account: %w", err)
	}
	return req, nil
}

func InitUserCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user",
		RunE:  handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().String("name", "", "Display name of the admin")
	createAdminCmd.Flags().String("email", "", "Login email of the admin")
	createAdminCmd.Flags().String("password", "", "Password (at least 8 characters)")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
