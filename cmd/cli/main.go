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
	userID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fechamento-cli",
		Short: "Fechamento CLI tool",
		Long:  `A command line interface for the route operations closing API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the fechamento API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "cli", "Acting user recorded on mutations")

	// Closing commands
	closingCmd := &cobra.Command{
		Use:   "closing",
		Short: "Monthly closing operations",
	}

	var month, year int
	var retained, expected string

	statusCmd := &cobra.Command{
		Use:   "status <location-id>",
		Short: "Check whether a location period is open or closed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("%s/api/v1/locations/%s/closings/status?month=%d&year=%d",
				baseURL, args[0], month, year))
		},
	}
	statusCmd.Flags().IntVar(&month, "month", 0, "Period month (1-12)")
	statusCmd.Flags().IntVar(&year, "year", 0, "Period year")

	runCmd := &cobra.Command{
		Use:   "run <location-id>",
		Short: "Close a location's month and distribute the profit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"month":           month,
				"year":            year,
				"retained_amount": retained,
			}
			if expected != "" {
				payload["expected_net_profit"] = expected
			}

			postJSON(fmt.Sprintf("%s/api/v1/locations/%s/closings", baseURL, args[0]), payload)
		},
	}
	runCmd.Flags().IntVar(&month, "month", 0, "Period month (1-12)")
	runCmd.Flags().IntVar(&year, "year", 0, "Period year")
	runCmd.Flags().StringVar(&retained, "retained", "0", "Amount retained as working capital")
	runCmd.Flags().StringVar(&expected, "expected-net-profit", "", "Reviewed net profit; the closing fails if the period changed")

	listCmd := &cobra.Command{
		Use:   "list <location-id>",
		Short: "List a location's closings, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("%s/api/v1/locations/%s/closings", baseURL, args[0]))
		},
	}

	closingCmd.AddCommand(statusCmd, runCmd, listCmd)
	rootCmd.AddCommand(closingCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:   "summary <location-id>",
		Short: "Show a location's period totals and net profit",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("%s/api/v1/locations/%s/summary?month=%d&year=%d",
				baseURL, args[0], month, year))
		},
	}
	summaryCmd.Flags().IntVar(&month, "month", 0, "Period month (1-12)")
	summaryCmd.Flags().IntVar(&year, "year", 0, "Period year")
	rootCmd.AddCommand(summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(url string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func postJSON(url string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding payload: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
