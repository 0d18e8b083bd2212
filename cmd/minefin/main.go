// minefin is the terminal front end for the mining finance dashboard:
// record income and expenses, track inventory, and review analytics against
// the backend API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minefin",
		Short: "Financial record keeping for a small mining operation",
		Long: `minefin keeps the books for a small mining operation: income from
mineral sales, operating expenses, inventory levels, and the aggregate
analytics derived from them. All data lives on the backend API; log in
once and the session token is reused until you log out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("server", "", "backend base URL (default http://localhost:9006/api/v1)")
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	initConfig()

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(analyticsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initConfig wires the optional config file (<user config dir>/minefin/
// config.yaml) and MINEFIN_* env vars under the flag values.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(dir + "/minefin")
	}
	viper.SetEnvPrefix("minefin")
	viper.AutomaticEnv()
	// Config file is optional.
	_ = viper.ReadInConfig()
}
