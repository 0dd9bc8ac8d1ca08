package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var askServer string

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Send a query to a running esgrag server",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askServer, "server", "http://localhost:8000", "base URL of the esgrag server")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	body, err := json.Marshal(map[string]string{"query": args[0]})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Post(askServer+"/rag", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("calling %s: %w", askServer, err)
	}
	defer resp.Body.Close()

	var result struct {
		Answer   string `json:"answer"`
		Context  string `json:"context"`
		Metadata string `json:"metadata"`
		Error    string `json:"error"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if result.Error != "" {
		return fmt.Errorf("server error (%s): %s", result.Code, result.Error)
	}

	cmd.Println("Answer:")
	cmd.Println(result.Answer)
	cmd.Println()
	cmd.Println("Context used:")
	cmd.Println(result.Context)
	cmd.Println()
	cmd.Println("Metadata:")
	cmd.Println(result.Metadata)
	return nil
}
