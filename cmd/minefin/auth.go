package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var creds struct {
			Email    string
			Password string
		}
		qs := []*survey.Question{
			{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
			{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.Required},
		}
		if err := survey.Ask(qs, &creds); err != nil {
			return err
		}

		if err := a.session.Login(cmd.Context(), creds.Email, creds.Password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		user, _ := a.session.CurrentUser()
		successOut.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

var signupAdminCode string

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var form struct {
			Name     string
			Email    string
			Phone    string
			Password string
		}
		qs := []*survey.Question{
			{Name: "name", Prompt: &survey.Input{Message: "Name:"}, Validate: survey.Required},
			{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
			{Name: "phone", Prompt: &survey.Input{Message: "Phone (optional):"}},
			{Name: "password", Prompt: &survey.Password{Message: "Password:"}, Validate: survey.MinLength(6)},
		}
		if err := survey.Ask(qs, &form); err != nil {
			return err
		}
		var confirm string
		if err := survey.AskOne(&survey.Password{Message: "Confirm password:"}, &confirm); err != nil {
			return err
		}
		if confirm != form.Password {
			return fmt.Errorf("passwords do not match")
		}

		err = a.session.Signup(cmd.Context(), form.Email, form.Password, form.Name, form.Phone, signupAdminCode)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}
		user, _ := a.session.CurrentUser()
		successOut.Printf("Account created. Logged in as %s (role: %s)\n", user.Email, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		user, err := a.requireAuth(cmd.Context())
		if err != nil {
			return err
		}
		heading.Println("Current session")
		fmt.Printf("  Name:   %s\n", user.Name)
		fmt.Printf("  Email:  %s\n", user.Email)
		if user.Phone != "" {
			fmt.Printf("  Phone:  %s\n", user.Phone)
		}
		fmt.Printf("  Role:   %s\n", user.Role)
		fmt.Printf("  Since:  %s\n", day(user.CreatedAt))
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupAdminCode, "admin-code", "", "admin signup code (validated by the server)")
}
