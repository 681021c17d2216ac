package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Smoke-tests a running register terminal against a live backend: looks up
// a handful of codes, bumps a quantity, checks the cart total, purchases.

type smokeConfig struct {
	BaseURL string
	Codes   []string
}

type apiResponse struct {
	Data json.RawMessage `json:"data"`
}

type cartResponse struct {
	Lines []struct {
		Code     string `json:"code"`
		Quantity int    `json:"quantity"`
		Subtotal int64  `json:"subtotal"`
	} `json:"lines"`
	Total int64 `json:"total"`
}

type purchaseResponse struct {
	TotalAmount  int64 `json:"total_amount"`
	TotalWithTax int64 `json:"total_with_tax"`
	PostedUnits  int   `json:"posted_units"`
	FailedUnits  int   `json:"failed_units"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "Terminal API base URL")
	codes := flag.String("codes", "4901234567894,4901234567895", "Comma-separated product codes to scan")
	flag.Parse()

	cfg := smokeConfig{
		BaseURL: strings.TrimRight(*baseURL, "/"),
		Codes:   strings.Split(*codes, ","),
	}

	client := &http.Client{Timeout: 10 * time.Second}

	fmt.Printf("Smoke test against %s\n", cfg.BaseURL)

	for _, code := range cfg.Codes {
		code = strings.TrimSpace(code)
		status, body := post(client, fmt.Sprintf("%s/lookup?code=%s", cfg.BaseURL, code))
		fmt.Printf("  lookup %-16s -> %d %s\n", code, status, body)
	}

	first := strings.TrimSpace(cfg.Codes[0])
	status, body := post(client, fmt.Sprintf("%s/cart/items/%s/quantity?value=3", cfg.BaseURL, first))
	fmt.Printf("  quantity %s=3      -> %d %s\n", first, status, body)

	var cart cartResponse
	if err := get(client, cfg.BaseURL+"/cart", &cart); err != nil {
		fmt.Printf("  cart fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  cart: %d lines, total %d\n", len(cart.Lines), cart.Total)

	var result purchaseResponse
	start := time.Now()
	status, raw := postRaw(client, cfg.BaseURL+"/purchase")
	if status != http.StatusOK {
		fmt.Printf("  purchase failed: %d %s\n", status, raw)
		os.Exit(1)
	}
	var envelope apiResponse
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil {
		_ = json.Unmarshal(envelope.Data, &result)
	}
	fmt.Printf("  purchase in %s: total %d, with tax %d, posted %d, failed %d\n",
		time.Since(start), result.TotalAmount, result.TotalWithTax, result.PostedUnits, result.FailedUnits)

	if result.FailedUnits > 0 {
		fmt.Println("SMOKE TEST: PARTIAL (some units failed)")
		os.Exit(1)
	}
	fmt.Println("SMOKE TEST: OK")
}

func post(client *http.Client, url string) (int, string) {
	status, body := postRaw(client, url)
	if len(body) > 120 {
		body = body[:120] + "..."
	}
	return status, body
}

func postRaw(client *http.Client, url string) (int, string) {
	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, strings.TrimSpace(string(body))
}

func get(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}
