package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Issue an authenticated GET against the backend",
	Long: `Issue an authenticated GET request against the backend and print the
response body. Useful for poking at resource endpoints, e.g.:

  erpcli get /orders
  erpcli get /customers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := application.client.Get(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		var pretty bytes.Buffer
		if json.Indent(&pretty, resp.Body, "", "  ") == nil {
			fmt.Println(pretty.String())
			return nil
		}
		fmt.Printf("%s\n", resp.Body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
