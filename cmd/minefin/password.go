package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Request a password reset code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		email := ""
		if len(args) == 1 {
			email = args[0]
		} else {
			if err := survey.AskOne(&survey.Input{Message: "Email:"}, &email, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}
		if err := a.session.SendPasswordResetOTP(cmd.Context(), email); err != nil {
			return fmt.Errorf("could not request reset code: %w", err)
		}
		fmt.Println("If the account exists, a reset code has been sent.")
		fmt.Println("Run `minefin reset-password` once you have it.")
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password using a reset code",
	Long: `Consumes the one-time code from forgot-password and sets a new
password. This does not log you in; run ` + "`minefin login`" + ` afterward.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var form struct {
			Email    string
			OTP      string
			Password string
		}
		qs := []*survey.Question{
			{Name: "email", Prompt: &survey.Input{Message: "Email:"}, Validate: survey.Required},
			{Name: "otp", Prompt: &survey.Input{Message: "Reset code:"}, Validate: survey.Required},
			{Name: "password", Prompt: &survey.Password{Message: "New password:"}, Validate: survey.MinLength(6)},
		}
		if err := survey.Ask(qs, &form); err != nil {
			return err
		}

		if err := a.session.VerifyOTPAndResetPassword(cmd.Context(), form.Email, form.OTP, form.Password); err != nil {
			return fmt.Errorf("password reset failed: %w", err)
		}
		successOut.Println("Password reset. Log in with the new password.")
		return nil
	},
}
