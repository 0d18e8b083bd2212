package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	profileName  string
	profilePhone string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update your profile (name, phone)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		current, err := a.requireAuth(cmd.Context())
		if err != nil {
			return err
		}

		name := profileName
		if name == "" {
			name = current.Name
		}
		phone := profilePhone
		if !cmd.Flags().Changed("phone") {
			phone = current.Phone
		}
		if name == current.Name && phone == current.Phone {
			fmt.Println("Nothing to update. Use --name and/or --phone.")
			return nil
		}

		user, err := a.session.UpdateProfile(cmd.Context(), name, phone)
		if err != nil {
			return fmt.Errorf("profile update failed: %w", err)
		}
		successOut.Printf("Profile updated: %s", user.Name)
		if user.Phone != "" {
			successOut.Printf(" (%s)", user.Phone)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "new display name")
	profileCmd.Flags().StringVar(&profilePhone, "phone", "", "new phone number (empty to clear)")
}
