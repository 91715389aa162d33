package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is a thin PostgREST RPC client. Only the rpc surface is exposed:
// the rest of the Supabase project (auth, realtime, storage) is owned by
// the frontend and never called from here.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
	}
}

// NewClientFromEnv builds a client from SUPABASE_URL / SUPABASE_ANON_KEY.
func NewClientFromEnv() (*Client, error) {
	baseURL := os.Getenv("SUPABASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL not set")
	}

	apiKey := os.Getenv("SUPABASE_ANON_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY not set")
	}

	return NewClient(baseURL, apiKey), nil
}

// RPCError is the PostgREST error body for a failed rpc call. Code carries
// either a PostgREST code (e.g. PGRST202 when the function is missing from
// the schema cache) or a Postgres SQLSTATE (e.g. 42883).
type RPCError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Status  int    `json:"-"`
}

func (e *RPCError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("rpc failed with status %d", e.Status)
}

// CallRPC invokes POST /rest/v1/rpc/{fn} with a JSON argument object and
// returns the raw response body (a single row object or an array of rows,
// depending on how the function is declared).
func (c *Client) CallRPC(
	ctx context.Context,
	fn string,
	args map[string]any,
) (json.RawMessage, error) {

	body, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc args: %w", err)
	}

	endpoint := c.BaseURL + "/rest/v1/rpc/" + url.PathEscape(fn)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rpcErr RPCError
		if json.Unmarshal(data, &rpcErr) == nil && (rpcErr.Code != "" || rpcErr.Message != "") {
			rpcErr.Status = resp.StatusCode
			return nil, &rpcErr
		}
		return nil, fmt.Errorf("rpc %s: %s: %s", fn, resp.Status, strings.TrimSpace(string(data)))
	}

	return json.RawMessage(data), nil
}
