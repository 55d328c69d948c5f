package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// adminClient talks to a running instance's admin API.
type adminClient struct {
	httpClient *http.Client
	baseURL    string
}

func newAdminClient(baseURL string) *adminClient {
	return &adminClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *adminClient) postJSON(ctx context.Context, path string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *adminClient) getJSON(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req)
}

func (c *adminClient) do(req *http.Request) (map[string]any, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed (is the server running?): %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("unexpected response %q: %w", string(raw), err)
	}
	if resp.StatusCode != http.StatusOK {
		if msg, ok := decoded["error"].(string); ok {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return decoded, nil
}

func addAddrFlag(cmd *cobra.Command) {
	cmd.Flags().String("addr", "http://localhost:3000", "base URL of the running instance's admin API")
}

func clientFromFlags(cmd *cobra.Command) *adminClient {
	addr, _ := cmd.Flags().GetString("addr")
	return newAdminClient(addr)
}

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <phone> <message>",
		Short: "Send a message to one user through a running instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			_, err := client.postJSON(cmd.Context(), "/api/send", map[string]string{
				"phone":   args[0],
				"message": args[1],
			})
			if err != nil {
				return err
			}
			fmt.Println("Message sent")
			return nil
		},
	}
	addAddrFlag(cmd)
	return cmd
}

func broadcastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "broadcast <message>",
		Short: "Broadcast a message to every active user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFromFlags(cmd)
			resp, err := client.postJSON(cmd.Context(), "/api/broadcast", map[string]string{
				"message": args[0],
			})
			if err != nil {
				return err
			}
			fmt.Printf("Broadcast finished: %v sent, %v failed\n", resp["sent"], resp["failed"])
			return nil
		},
	}
	addAddrFlag(cmd)
	return cmd
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the running instance's connection and job status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := clientFromFlags(cmd)
			resp, err := client.getJSON(cmd.Context(), "/status")
			if err != nil {
				return err
			}
			pretty, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(pretty))
			return nil
		},
	}
	addAddrFlag(cmd)
	return cmd
}
