package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finplan-cli",
		Short: "FinPlan CLI tool",
		Long:  `A command line interface for interacting with the FinPlan API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinPlan API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(processCmd(), notifyCmd(), forecastCmd(), netWorthCmd(), billsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Materialize due recurring obligations",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodPost, "/api/v1/recurring/process", nil)
		},
	}
}

func notifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Run the notification generators",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodPost, "/api/v1/notifications/generate", nil)
		},
	}
}

func forecastCmd() *cobra.Command {
	var months int
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project future cash flow",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, fmt.Sprintf("/api/v1/forecast/?months=%d", months), nil)
		},
	}
	cmd.Flags().IntVar(&months, "months", 6, "Number of months to project")
	return cmd
}

func netWorthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networth",
		Short: "Show the trailing net worth history",
		Run: func(cmd *cobra.Command, args []string) {
			request(http.MethodGet, "/api/v1/reports/net-worth", nil)
		},
	}
}

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Bill reminders",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "upcoming",
			Short: "Bills due within the next week",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodGet, "/api/v1/recurring/upcoming", nil)
			},
		},
		&cobra.Command{
			Use:   "overdue",
			Short: "Bills past their due date",
			Run: func(cmd *cobra.Command, args []string) {
				request(http.MethodGet, "/api/v1/recurring/overdue", nil)
			},
		},
	)
	return cmd
}

func request(method, path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(raw))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		fmt.Printf("%s\n", string(raw))
		return
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
